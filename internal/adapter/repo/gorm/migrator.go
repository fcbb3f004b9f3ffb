package gormrepo

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

//go:embed migrations/postgres/*.sql migrations/mysql/*.sql
var embeddedMigrations embed.FS

var metaTableSQL = map[string]string{
	"postgres": `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version VARCHAR(255) PRIMARY KEY,
  applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	"mysql": `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version VARCHAR(255) PRIMARY KEY,
  applied_at DATETIME(6) NOT NULL
)`,
}

// ApplyMigrations runs every pending .sql file in name order. An empty dir
// selects the migrations built into the binary for the db's dialect.
func ApplyMigrations(ctx context.Context, db *gorm.DB, dir string) ([]string, error) {
	dialect := db.Dialector.Name()
	createMeta, ok := metaTableSQL[dialect]
	if !ok {
		return nil, fmt.Errorf("migrations: unsupported dialect %q", dialect)
	}
	if err := db.WithContext(ctx).Exec(createMeta).Error; err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	src, err := migrationSource(dialect, dir)
	if err != nil {
		return nil, err
	}
	files, err := migrationFiles(src)
	if err != nil {
		return nil, err
	}

	applied := make([]string, 0)
	for _, name := range files {
		version := strings.TrimSuffix(name, ".sql")
		var count int64
		if err := db.WithContext(ctx).Table("schema_migrations").Where("version = ?", version).Count(&count).Error; err != nil {
			return applied, fmt.Errorf("check migration %s: %w", version, err)
		}
		if count > 0 {
			continue
		}

		content, err := fs.ReadFile(src, name)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", name, err)
		}

		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, stmt := range splitStatements(string(content)) {
				if err := tx.Exec(stmt).Error; err != nil {
					return fmt.Errorf("apply migration %s: %w", name, err)
				}
			}
			if err := tx.Exec(`INSERT INTO schema_migrations(version, applied_at) VALUES (?, ?)`, version, time.Now().UTC()).Error; err != nil {
				return fmt.Errorf("record migration %s: %w", version, err)
			}
			return nil
		})
		if err != nil {
			return applied, err
		}
		applied = append(applied, version)
	}
	return applied, nil
}

func migrationSource(dialect, dir string) (fs.FS, error) {
	if dir != "" {
		return os.DirFS(dir), nil
	}
	sub, err := fs.Sub(embeddedMigrations, path.Join("migrations", dialect))
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	return sub, nil
}

func migrationFiles(src fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(src, ".")
	if err != nil {
		return nil, fmt.Errorf("read migration dir: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// splitStatements breaks a migration into single statements; the mysql
// driver rejects multi-statement Exec unless the DSN opts in.
func splitStatements(content string) []string {
	var out []string
	for _, part := range strings.Split(content, ";") {
		lines := make([]string, 0)
		for _, line := range strings.Split(part, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			lines = append(lines, line)
		}
		stmt := strings.TrimSpace(strings.Join(lines, "\n"))
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
