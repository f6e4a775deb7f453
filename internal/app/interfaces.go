package app

import (
	EventBus "github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"

	"github.com/talkincode/vitrine/config"
	"github.com/talkincode/vitrine/internal/catalog"
)

// StoreProvider provides the product catalog
type StoreProvider interface {
	Store() *catalog.Store
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines all provider interfaces for full application context
type AppContext interface {
	StoreProvider
	ConfigProvider
	SchedulerProvider

	Bus() EventBus.Bus
	// InitDb puts the seed records back in the catalog
	InitDb() error
	// BackupNow writes a CSV snapshot of the catalog and returns its path
	BackupNow() (string, error)
	// RestoreCSV replaces the catalog with the records of a backup file
	RestoreCSV(path string) error
}
