package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	mongocatalog "dungeoncore/internal/adapter/catalog/mongo"
	staticcatalog "dungeoncore/internal/adapter/catalog/static"
	httpadapter "dungeoncore/internal/adapter/http"
	gormrepo "dungeoncore/internal/adapter/repo/gorm"
	"dungeoncore/internal/app/ports"
	"dungeoncore/internal/config"
	"dungeoncore/internal/domain/progression"
	"dungeoncore/internal/logs"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const commandTimeout = 30 * time.Second

func loadConfig(path string) (config.Config, error) {
	return config.Load(config.ResolvePath(path))
}

func openDB(cfg config.Config) (*gorm.DB, error) {
	if cfg.Database.Driver == config.DriverMemory {
		return nil, errors.New("this command needs database.driver postgres or mysql")
	}
	return gormrepo.Open(cfg.Database.Driver, cfg.Database.DSN, gormrepo.Options{
		Logger: logs.NewGormLogger(logs.GormLevel(cfg.Log.Level), cfg.Database.SlowQuery),
	})
}

func newMigrateCmd(configPath *string) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = gormrepo.Close(db) }()

			if dir == "" {
				dir = cfg.Database.MigrationsDir
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			applied, err := gormrepo.ApplyMigrations(ctx, db, dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				printWarn(out, "No pending migrations.")
				return nil
			}
			for _, v := range applied {
				printSuccess(out, "applied %s", v)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "migration directory (default: built-in migrations)")
	return cmd
}

func newCatalogCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect or seed the monster catalog",
	}
	cmd.AddCommand(newCatalogShowCmd(configPath), newCatalogSeedCmd(configPath))
	return cmd
}

func newCatalogShowCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the catalog served by the configured source",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			provider, closeFn, err := catalogProvider(cfg, cfg.Catalog.Source)
			if err != nil {
				return err
			}
			defer closeFn()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			monsters, err := provider.MonsterTypes(ctx)
			if err != nil {
				return err
			}
			constants, err := provider.GameConstants(ctx)
			if err != nil {
				return err
			}
			c := progression.NewCatalog(monsters, constants)
			renderCatalog(cmd.OutOrStdout(), c)
			return nil
		},
	}
}

func newCatalogSeedCmd(configPath *string) *cobra.Command {
	var from, target string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Copy a JSON catalog into the sql or mongo catalog store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if target == "" {
				target = cfg.Catalog.Source
			}
			if target != config.CatalogSQL && target != config.CatalogMongo {
				return fmt.Errorf("seed target must be sql or mongo, got %q", target)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			src := staticcatalog.Provider{Path: from}
			monsters, err := src.MonsterTypes(ctx)
			if err != nil {
				return err
			}
			constants, err := src.GameConstants(ctx)
			if err != nil {
				return err
			}

			provider, closeFn, err := catalogProvider(cfg, target)
			if err != nil {
				return err
			}
			defer closeFn()
			seeder, ok := provider.(catalogSeeder)
			if !ok {
				return fmt.Errorf("catalog source %s cannot be seeded", target)
			}
			if err := seeder.Seed(ctx, monsters, constants); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "seeded %d monsters and %d constants into %s", len(monsters), len(constants), target)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "catalog JSON file (default: built-in catalog)")
	cmd.Flags().StringVar(&target, "target", "", "sql or mongo (default: catalog.source)")
	return cmd
}

type catalogSeeder interface {
	Seed(ctx context.Context, monsters map[string]progression.MonsterDefinition, constants map[string]int) error
}

func catalogProvider(cfg config.Config, source string) (ports.CatalogProvider, func(), error) {
	switch source {
	case config.CatalogSQL:
		db, err := openDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		return gormrepo.NewCatalogRepo(db), func() { _ = gormrepo.Close(db) }, nil
	case config.CatalogMongo:
		client, err := mongocatalog.Open(cfg.Catalog.MongoURI, 0, logs.L())
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		return mongocatalog.NewProvider(client.Database(cfg.Catalog.MongoDatabase)), closeFn, nil
	default:
		return staticcatalog.Provider{Path: cfg.Catalog.File}, func() {}, nil
	}
}

func newResetCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <session-id>",
		Short: "Restore a stored game's resources, clock and status to their defaults",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = gormrepo.Close(db) }()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			repo := gormrepo.NewGameRepo(db)
			sid := strings.TrimSpace(args[0])
			game, err := repo.FindBySessionID(ctx, sid)
			if errors.Is(err, ports.ErrNotFound) {
				return fmt.Errorf("no game for session %q", sid)
			}
			if err != nil {
				return err
			}
			if err := repo.ResetGame(ctx, game.ID); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "reset game %d (session %s); species and experience kept", game.ID, sid)
			return nil
		},
	}
}

func newTokenCmd(configPath *string) *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Mint an HS256 token accepted by the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			token, err := httpadapter.SignToken([]byte(cfg.Auth.JWTSecret), strings.TrimSpace(args[0]), ttl, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
