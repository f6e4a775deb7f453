package app

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/talkincode/vitrine/internal/catalog"
)

// InitDb overwrites the catalog with the seed records.
func (a *Application) InitDb() error {
	if err := a.store.Reset(context.Background()); err != nil {
		return err
	}
	zap.L().Warn("catalog reset to seed records", zap.Int("count", a.store.Len()))
	return nil
}

// RestoreCSV replaces the catalog with a file written by BackupNow.
func (a *Application) RestoreCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	products, err := catalog.ReadCSV(f)
	if err != nil {
		return err
	}
	if err := a.store.Replace(context.Background(), products); err != nil {
		return err
	}
	zap.L().Info("catalog restored", zap.String("file", path), zap.Int("count", len(products)))
	return nil
}
