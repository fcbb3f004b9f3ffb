package main

import (
	"context"
	"fmt"
	"time"

	catalogcache "dungeoncore/internal/adapter/catalog/cache"
	mongocatalog "dungeoncore/internal/adapter/catalog/mongo"
	staticcatalog "dungeoncore/internal/adapter/catalog/static"
	httpadapter "dungeoncore/internal/adapter/http"
	metricsinmem "dungeoncore/internal/adapter/metrics/inmemory"
	gormrepo "dungeoncore/internal/adapter/repo/gorm"
	"dungeoncore/internal/adapter/repo/memory"
	"dungeoncore/internal/app/bestiary"
	"dungeoncore/internal/app/catalogdata"
	"dungeoncore/internal/app/clock"
	"dungeoncore/internal/app/dungeonstatus"
	"dungeoncore/internal/app/experience"
	"dungeoncore/internal/app/gamestate"
	"dungeoncore/internal/app/planner"
	"dungeoncore/internal/app/ports"
	"dungeoncore/internal/app/reset"
	"dungeoncore/internal/app/species"
	"dungeoncore/internal/config"
	"dungeoncore/internal/logs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type application struct {
	handler httpadapter.Handler
	catalog *catalogcache.Source
	closers []func() error
}

func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logs.Warn("close resource", zap.Error(err))
		}
	}
}

func buildApp(ctx context.Context, cfg config.Config) (*application, error) {
	a := &application{}
	games, tx, db, err := buildRepos(ctx, cfg, a)
	if err != nil {
		a.Close()
		return nil, err
	}
	provider, err := buildCatalogProvider(cfg, db, a)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.catalog = catalogcache.NewSource(provider)

	kpi := metricsinmem.NewRecorder()
	now := time.Now
	a.handler = httpadapter.Handler{
		GameStateUC:  gamestate.UseCase{Games: games, Catalog: a.catalog, Metrics: kpi},
		SpeciesUC:    species.UseCase{TxManager: tx, Games: games, Catalog: a.catalog, Metrics: kpi, Now: now},
		ExperienceUC: experience.UseCase{TxManager: tx, Games: games, Catalog: a.catalog, Metrics: kpi, Now: now},
		BestiaryUC:   bestiary.UseCase{Games: games, Catalog: a.catalog},
		StatusUC:     dungeonstatus.UseCase{TxManager: tx, Games: games, Metrics: kpi, Now: now},
		ResetUC:      reset.UseCase{TxManager: tx, Games: games, Catalog: a.catalog, Metrics: kpi, Now: now},
		ClockUC:      clock.UseCase{TxManager: tx, Games: games, Metrics: kpi, Now: now},
		PlannerUC:    planner.UseCase{Games: games, Catalog: a.catalog},
		CatalogUC:    catalogdata.UseCase{Catalog: a.catalog},
		Auth: httpadapter.Authenticator{
			Secret:   []byte(cfg.Auth.JWTSecret),
			Required: cfg.Auth.Required,
			Leeway:   cfg.Auth.Leeway,
			LoginURL: cfg.Auth.LoginURL,
		},
		KPI: kpi,
	}
	return a, nil
}

func buildRepos(ctx context.Context, cfg config.Config, a *application) (ports.GameRepository, ports.TxManager, *gorm.DB, error) {
	if cfg.Database.Driver == config.DriverMemory {
		store := memory.NewStore()
		logs.Warn("using in-memory game store; progress is lost on restart")
		return memory.NewGameRepo(store), memory.NewTxManager(store), nil, nil
	}

	db, err := gormrepo.Open(cfg.Database.Driver, cfg.Database.DSN, gormrepo.Options{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		Logger:       logs.NewGormLogger(logs.GormLevel(cfg.Log.Level), cfg.Database.SlowQuery),
	})
	if err != nil {
		return nil, nil, nil, err
	}
	a.closers = append(a.closers, func() error { return gormrepo.Close(db) })

	if cfg.Database.Migrate {
		applied, err := gormrepo.ApplyMigrations(ctx, db, cfg.Database.MigrationsDir)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("apply migrations: %w", err)
		}
		logs.Info("migrations applied", zap.Strings("versions", applied))
	}
	return gormrepo.NewGameRepo(db), gormrepo.NewTxManager(db), db, nil
}

func buildCatalogProvider(cfg config.Config, db *gorm.DB, a *application) (ports.CatalogProvider, error) {
	switch cfg.Catalog.Source {
	case config.CatalogSQL:
		if db == nil {
			return nil, fmt.Errorf("catalog source sql needs a sql database")
		}
		return gormrepo.NewCatalogRepo(db), nil
	case config.CatalogMongo:
		client, err := mongocatalog.Open(cfg.Catalog.MongoURI, 0, logs.L())
		if err != nil {
			return nil, fmt.Errorf("open mongo catalog: %w", err)
		}
		a.closers = append(a.closers, func() error { return client.Disconnect(context.Background()) })
		return mongocatalog.NewProvider(client.Database(cfg.Catalog.MongoDatabase)), nil
	default:
		return staticcatalog.Provider{Path: cfg.Catalog.File}, nil
	}
}

func logConfig(c config.LogConfig) logs.Config {
	return logs.Config{
		Level:      c.Level,
		File:       c.File,
		MaxSize:    c.MaxSize,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAge,
		Compress:   c.Compress,
		Dev:        c.Dev,
	}
}

// onConfigChange applies the settings that can change without a restart.
func (a *application) onConfigChange(cfg config.Config) {
	if err := logs.SetLevel(cfg.Log.Level); err != nil {
		logs.Warn("ignore log level from reloaded config", zap.String("level", cfg.Log.Level), zap.Error(err))
	}
	a.catalog.Invalidate()
	logs.Info("config reloaded", zap.String("log_level", cfg.Log.Level))
}
