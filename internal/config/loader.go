package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const envPrefix = "DUNGEON"

// DefaultPath is read when no explicit path is given and the file exists.
const DefaultPath = "configs/dungeon.yml"

// ResolvePath picks the config file: an explicit path, then DUNGEON_CONFIG,
// then DefaultPath. It returns "" when none of them exists.
func ResolvePath(explicit string) string {
	for _, p := range []string{explicit, os.Getenv(envPrefix + "_CONFIG"), DefaultPath} {
		if strings.TrimSpace(p) != "" && fileExist(p) {
			return p
		}
	}
	return ""
}

func Load(path string) (Config, error) {
	v, err := newViper(path)
	if err != nil {
		return Config{}, err
	}
	return decode(v)
}

// Watch reloads the file on every change and hands the result to fn.
// Decode failures are reported through onErr and keep the previous config.
func Watch(path string, fn func(Config), onErr func(error)) error {
	if path == "" {
		return fmt.Errorf("watch config: no config file")
	}
	v, err := newViper(path)
	if err != nil {
		return err
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		reload(v, fn, onErr)
	})
	v.WatchConfig()
	return nil
}

func reload(v *viper.Viper, fn func(Config), onErr func(error)) {
	cfg, err := decode(v)
	if err != nil {
		if onErr != nil {
			onErr(err)
		}
		return
	}
	fn(cfg)
}

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		if !fileExist(path) {
			return nil, fmt.Errorf("config file not exist, path=%s", path)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return v, nil
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	cfg.Catalog.Source = strings.ToLower(strings.TrimSpace(cfg.Catalog.Source))
	return cfg, validate(cfg)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.driver", DriverMemory)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.migrate", false)
	v.SetDefault("database.migrations_dir", "")
	v.SetDefault("database.slow_query", "200ms")
	v.SetDefault("catalog.source", CatalogStatic)
	v.SetDefault("catalog.file", "")
	v.SetDefault("catalog.mongo_uri", "")
	v.SetDefault("catalog.mongo_database", "dungeon")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.required", false)
	v.SetDefault("auth.leeway", "1h")
	v.SetDefault("auth.login_url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("log.compress", false)
	v.SetDefault("log.dev", false)
}

func validate(cfg Config) error {
	switch cfg.Database.Driver {
	case DriverMemory:
	case DriverPostgres, DriverMySQL:
		if cfg.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for driver %s", cfg.Database.Driver)
		}
	default:
		return fmt.Errorf("unsupported database.driver %q", cfg.Database.Driver)
	}
	switch cfg.Catalog.Source {
	case CatalogStatic:
	case CatalogSQL:
		if cfg.Database.Driver == DriverMemory {
			return fmt.Errorf("catalog.source sql needs a sql database driver")
		}
	case CatalogMongo:
		if cfg.Catalog.MongoURI == "" {
			return fmt.Errorf("catalog.mongo_uri is required for catalog.source mongo")
		}
	default:
		return fmt.Errorf("unsupported catalog.source %q", cfg.Catalog.Source)
	}
	if cfg.Auth.Required && cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required when auth.required is set")
	}
	return nil
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
