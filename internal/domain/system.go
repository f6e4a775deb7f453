package domain

import (
	"time"
)

// SysKV holds one key/value pair. The catalog payload lives in a single row.
type SysKV struct {
	Name      string    `gorm:"primaryKey;size:128" json:"name"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (SysKV) TableName() string {
	return "sys_kv"
}
