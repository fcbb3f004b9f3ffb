package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"dungeoncore/internal/app/gamestate"
	"dungeoncore/internal/config"
)

func TestBuildApp_MemoryAndStaticCatalog(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	a, err := buildApp(context.Background(), cfg)
	if err != nil {
		t.Fatalf("buildApp: %v", err)
	}
	defer a.Close()

	resp, err := a.handler.GameStateUC.Execute(context.Background(), gamestate.Request{SessionID: "boot", CreateIfMissing: true})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if !resp.Success || !resp.Created {
		t.Fatalf("expected created game, got %+v", resp)
	}
	catalog, err := a.catalog.Catalog(context.Background())
	if err != nil || catalog.Len() == 0 {
		t.Fatalf("expected built-in catalog, got len=%d err=%v", catalog.Len(), err)
	}
}

func TestBuildApp_CatalogFileAndReload(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(catalogPath, []byte(`{"monsters":{"Bat":{"tier":1,"species":"Beast"}},"constants":{}}`), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Catalog.File = catalogPath

	a, err := buildApp(context.Background(), cfg)
	if err != nil {
		t.Fatalf("buildApp: %v", err)
	}
	defer a.Close()

	c, err := a.catalog.Catalog(context.Background())
	if err != nil || c.Len() != 1 {
		t.Fatalf("expected one monster, got len=%d err=%v", c.Len(), err)
	}

	if err := os.WriteFile(catalogPath, []byte(`{"monsters":{"Bat":{},"Rat":{}},"constants":{}}`), 0o644); err != nil {
		t.Fatalf("rewrite catalog: %v", err)
	}
	a.onConfigChange(cfg)
	c, err = a.catalog.Catalog(context.Background())
	if err != nil || c.Len() != 2 {
		t.Fatalf("expected reloaded catalog with two monsters, got len=%d err=%v", c.Len(), err)
	}
}

func TestBuildApp_SQLCatalogNeedsDatabase(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Catalog.Source = config.CatalogSQL
	if _, err := buildApp(context.Background(), cfg); err == nil {
		t.Fatalf("expected error for sql catalog without database")
	}
}
