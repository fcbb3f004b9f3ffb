package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8080" || cfg.Database.Driver != DriverMemory || cfg.Catalog.Source != CatalogStatic {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Auth.Leeway != time.Hour || cfg.Database.SlowQuery != 200*time.Millisecond {
		t.Fatalf("unexpected durations: leeway=%v slow=%v", cfg.Auth.Leeway, cfg.Database.SlowQuery)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dungeon.yml")
	body := []byte(`
server:
  addr: ":9090"
database:
  driver: Postgres
  dsn: "host=db user=dungeon"
log:
  level: debug
`)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DUNGEON_SERVER_ADDR", ":7070")
	t.Setenv("DUNGEON_AUTH_JWT_SECRET", "s3cret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Fatalf("expected env override, got %q", cfg.Server.Addr)
	}
	if cfg.Database.Driver != DriverPostgres || cfg.Database.DSN != "host=db user=dungeon" {
		t.Fatalf("unexpected database config: %+v", cfg.Database)
	}
	if cfg.Auth.JWTSecret != "s3cret" || cfg.Log.Level != "debug" {
		t.Fatalf("unexpected auth/log config: %+v %+v", cfg.Auth, cfg.Log)
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := map[string]map[string]string{
		"sql driver without dsn":  {"DUNGEON_DATABASE_DRIVER": "mysql"},
		"unknown driver":          {"DUNGEON_DATABASE_DRIVER": "sqlite"},
		"sql catalog on memory":   {"DUNGEON_CATALOG_SOURCE": "sql"},
		"mongo catalog no uri":    {"DUNGEON_CATALOG_SOURCE": "mongo"},
		"required auth no secret": {"DUNGEON_AUTH_REQUIRED": "true"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(""); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")
	if err := os.WriteFile(path, []byte("server:\n  addr: \":1\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := ResolvePath(path); got != path {
		t.Fatalf("expected explicit path, got %q", got)
	}
	t.Setenv("DUNGEON_CONFIG", path)
	if got := ResolvePath(filepath.Join(dir, "missing.yml")); got != path {
		t.Fatalf("expected env path, got %q", got)
	}
}

func TestReload_ReportsDecodeErrors(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("database.driver", "oracle")

	called := false
	var gotErr error
	reload(v, func(Config) { called = true }, func(err error) { gotErr = err })
	if called || gotErr == nil {
		t.Fatalf("expected error callback only, called=%v err=%v", called, gotErr)
	}

	v.Set("database.driver", "memory")
	var got Config
	reload(v, func(c Config) { got = c }, func(err error) { t.Fatalf("unexpected error: %v", err) })
	if got.Database.Driver != DriverMemory {
		t.Fatalf("expected reloaded config, got %+v", got)
	}
}
