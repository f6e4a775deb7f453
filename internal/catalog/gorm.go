package catalog

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/talkincode/vitrine/internal/domain"
)

// GormBackend keeps the payload in one row of the sys_kv table.
type GormBackend struct {
	db  *gorm.DB
	key string
}

// NewGormBackend migrates the tables and returns a backend bound to key.
func NewGormBackend(db *gorm.DB, key string) (*GormBackend, error) {
	if err := db.AutoMigrate(domain.Tables...); err != nil {
		return nil, errors.Wrap(err, "migrate tables")
	}
	return &GormBackend{db: db, key: key}, nil
}

func (g *GormBackend) Load(ctx context.Context) ([]byte, bool, error) {
	var rows []domain.SysKV
	err := g.db.WithContext(ctx).Where("name = ?", g.key).Limit(1).Find(&rows).Error
	if err != nil {
		return nil, false, errors.Wrap(err, "read catalog payload")
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	return []byte(rows[0].Value), true, nil
}

func (g *GormBackend) Save(ctx context.Context, payload []byte) error {
	row := domain.SysKV{Name: g.key, Value: string(payload), UpdatedAt: time.Now()}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	return errors.Wrap(err, "write catalog payload")
}

func (g *GormBackend) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
