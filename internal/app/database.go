package app

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/talkincode/vitrine/config"
	"github.com/talkincode/vitrine/internal/catalog"
)

// openBackend opens the storage holding the catalog key.
func openBackend(cfg *config.AppConfig) (catalog.Backend, error) {
	switch cfg.Storage.Type {
	case config.StorageBolt:
		return catalog.OpenBolt(cfg.StoragePath(), cfg.Storage.Bucket, cfg.Storage.Key)
	case config.StoragePostgres, config.StorageSqlite:
		db, err := getDatabase(cfg)
		if err != nil {
			return nil, err
		}
		return catalog.NewGormBackend(db, cfg.Storage.Key)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Storage.Type)
	}
}

func getDatabase(cfg *config.AppConfig) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if cfg.Database.Debug {
		gcfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var dialector gorm.Dialector
	if cfg.Storage.Type == config.StorageSqlite {
		dialector = sqlite.Open(cfg.StoragePath())
	} else {
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.User,
			cfg.Database.Passwd,
			cfg.Database.Name,
		)
		dialector = postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true})
	}

	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Storage.Type, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Storage.Type == config.StorageSqlite {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}
	return db, nil
}
