package config

import "time"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	// Driver is one of memory, postgres or mysql.
	Driver        string        `mapstructure:"driver"`
	DSN           string        `mapstructure:"dsn"`
	MaxOpenConns  int           `mapstructure:"max_open_conns"`
	MaxIdleConns  int           `mapstructure:"max_idle_conns"`
	Migrate       bool          `mapstructure:"migrate"`
	MigrationsDir string        `mapstructure:"migrations_dir"`
	SlowQuery     time.Duration `mapstructure:"slow_query"`
}

type CatalogConfig struct {
	// Source is one of static, sql or mongo.
	Source        string `mapstructure:"source"`
	File          string `mapstructure:"file"`
	MongoURI      string `mapstructure:"mongo_uri"`
	MongoDatabase string `mapstructure:"mongo_database"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	Required  bool          `mapstructure:"required"`
	Leeway    time.Duration `mapstructure:"leeway"`
	LoginURL  string        `mapstructure:"login_url"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
	Dev        bool   `mapstructure:"dev"`
}

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"

	CatalogStatic = "static"
	CatalogSQL    = "sql"
	CatalogMongo  = "mongo"
)
