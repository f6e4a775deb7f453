package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/talkincode/vitrine/internal/catalog"
)

const backupPattern = "catalog-*.csv"

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() error {
	a.sched = cron.New(cron.WithLocation(time.Local), cron.WithParser(cronParser))

	if a.appConfig.Backup.Enabled {
		_, err := a.sched.AddFunc(a.appConfig.Backup.Cron, a.SchedBackupTask)
		if err != nil {
			return fmt.Errorf("schedule backup %q: %w", a.appConfig.Backup.Cron, err)
		}
	}

	a.sched.Start()
	return nil
}

// SchedBackupTask is the cron entry for BackupNow.
func (a *Application) SchedBackupTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	if _, err := a.BackupNow(); err != nil {
		zap.L().Error("catalog backup failed", zap.Error(err))
	}
}

// BackupNow writes the catalog as CSV into the backup dir and prunes old files
// beyond backup.keep. Keep 0 keeps everything.
func (a *Application) BackupNow() (string, error) {
	dir := a.appConfig.GetBackupDir()
	name := filepath.Join(dir, fmt.Sprintf("catalog-%s.csv", time.Now().Format("20060102-150405.000")))

	f, err := os.Create(name)
	if err != nil {
		return "", err
	}
	if err := catalog.WriteCSV(f, a.store.List()); err != nil {
		_ = f.Close()
		_ = os.Remove(name)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	zap.L().Info("catalog backup written", zap.String("file", name))

	if err := pruneBackups(dir, a.appConfig.Backup.Keep); err != nil {
		zap.L().Warn("prune backups failed", zap.Error(err))
	}
	return name, nil
}

func pruneBackups(dir string, keep int) error {
	if keep <= 0 {
		return nil
	}
	files, err := filepath.Glob(filepath.Join(dir, backupPattern))
	if err != nil {
		return err
	}
	if len(files) <= keep {
		return nil
	}
	// names embed the timestamp, so lexical order is age order
	sort.Strings(files)
	for _, old := range files[:len(files)-keep] {
		if err := os.Remove(old); err != nil {
			return err
		}
	}
	return nil
}
