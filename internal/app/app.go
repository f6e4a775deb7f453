package app

import (
	"context"
	"os"
	"time"
	_ "time/tzdata"

	EventBus "github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/talkincode/vitrine/config"
	"github.com/talkincode/vitrine/internal/catalog"
)

type Application struct {
	appConfig *config.AppConfig
	bus       EventBus.Bus
	store     *catalog.Store
	sched     *cron.Cron
}

// Ensure Application implements all interfaces
var (
	_ StoreProvider     = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig, bus: EventBus.New()}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Store() *catalog.Store {
	return a.store
}

func (a *Application) Bus() EventBus.Bus {
	return a.bus
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// Init sets up logging, opens the catalog and starts the cron jobs.
func (a *Application) Init(ctx context.Context) error {
	cfg := a.appConfig
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	if err := cfg.InitDirs(); err != nil {
		return err
	}
	if err := initLogger(cfg.Logger); err != nil {
		return err
	}

	backend, err := openBackend(cfg)
	if err != nil {
		return err
	}
	zap.S().Infof("catalog storage ready, type: %s", cfg.Storage.Type)

	if err := a.bus.Subscribe(catalog.TopicChanged, logCatalogChange); err != nil {
		_ = backend.Close()
		return err
	}
	a.store, err = catalog.Open(ctx, backend, catalog.WithBus(a.bus))
	if err != nil {
		_ = backend.Close()
		return err
	}

	return a.initJob()
}

func initLogger(cfg config.LogConfig) error {
	var zapConfig zap.Config
	if cfg.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			return err
		}
	}

	zap.ReplaceGlobals(logger)
	return nil
}

func logCatalogChange(change catalog.Change) {
	zap.L().Info("catalog changed",
		zap.String("namespace", "catalog"),
		zap.String("action", change.Action),
		zap.String("id", change.ID),
		zap.Int("size", change.Size))
}

// Server is the part of the web server Run drives.
type Server interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// Run serves until ctx is cancelled or the server fails, then shuts it down.
func (a *Application) Run(ctx context.Context, srv Server) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		zap.L().Info("shutting down web server")
		return srv.Shutdown(context.Background())
	})
	return g.Wait()
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		<-a.sched.Stop().Done()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			zap.L().Error("close catalog storage", zap.Error(err))
		}
	}
	_ = zap.L().Sync()
}
