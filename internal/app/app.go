package app

import (
	"os"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"

	"github.com/CharlissonFagundes/app-gereciamento-estoque/config"
	"github.com/CharlissonFagundes/app-gereciamento-estoque/internal/store"
)

type Application struct {
	appConfig *config.AppConfig
	store     *store.Store
	sched     *cron.Cron
}

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.store.DB()
}

func (a *Application) Store() *store.Store {
	return a.store
}

// OverrideStore replaces the application's store handle (used in tests).
func (a *Application) OverrideStore(s *store.Store) {
	a.store = s
}

func (a *Application) Init(cfg *config.AppConfig) error {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	a.initLogger(cfg)

	if err := cfg.InitDirs(); err != nil {
		return err
	}

	a.store, err = store.Open(cfg.Database, cfg.GetDataDir())
	if err != nil {
		return err
	}

	if cfg.Database.Seed {
		a.checkDemoProducts()
	}

	a.initJob()
	return nil
}

func (a *Application) initLogger(cfg *config.AppConfig) {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
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
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.store != nil {
		_ = a.store.Close()
	}
	_ = zap.L().Sync()
}
