package logs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

func observe(t *testing.T, lv zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(lv)
	restore := Replace(zap.New(core))
	t.Cleanup(restore)
	return logs
}

func TestInit_RejectsUnknownLevel(t *testing.T) {
	if err := Init("dungeon", Config{Level: "loud"}); err == nil {
		t.Fatalf("expected invalid level error")
	}
}

func TestInit_WithFileAndSetLevel(t *testing.T) {
	restore := Replace(zap.NewNop())
	t.Cleanup(restore)
	t.Cleanup(func() { _ = SetLevel("info") })

	cfg := Config{Level: "warn", File: filepath.Join(t.TempDir(), "dungeon.log"), MaxSize: 1}
	if err := Init("dungeon", cfg); err != nil {
		t.Fatalf("init: %v", err)
	}
	if Level() != zapcore.WarnLevel {
		t.Fatalf("expected warn level, got %v", Level())
	}
	if err := SetLevel("debug"); err != nil {
		t.Fatalf("set level: %v", err)
	}
	if Level() != zapcore.DebugLevel {
		t.Fatalf("expected debug level, got %v", Level())
	}
	if err := SetLevel("nope"); err == nil {
		t.Fatalf("expected invalid level error")
	}
}

func TestHelpers_WriteToGlobalLogger(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel)
	Info("hello", zap.String("k", "v"))
	Warn("careful")
	if logs.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", logs.Len())
	}
	if got := logs.All()[0]; got.Message != "hello" || got.ContextMap()["k"] != "v" {
		t.Fatalf("unexpected entry: %+v", got)
	}
}

func TestGormLogger_Trace(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel)
	gl := NewGormLogger(glogger.Warn, 10*time.Millisecond)
	sql := func() (string, int64) { return "SELECT 1", 1 }

	gl.Trace(context.Background(), time.Now(), sql, errors.New("boom"))
	gl.Trace(context.Background(), time.Now(), sql, gorm.ErrRecordNotFound)
	gl.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)
	gl.Trace(context.Background(), time.Now(), sql, nil)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected error and slow entries, got %d", len(entries))
	}
	if entries[0].Message != "gorm query failed" || entries[1].Message != "gorm slow query" {
		t.Fatalf("unexpected messages: %q %q", entries[0].Message, entries[1].Message)
	}

	silent := gl.LogMode(glogger.Silent)
	silent.Trace(context.Background(), time.Now(), sql, errors.New("boom"))
	if logs.Len() != 2 {
		t.Fatalf("silent logger must not log")
	}
}

func TestGormLevel(t *testing.T) {
	if GormLevel("debug") != glogger.Info || GormLevel("error") != glogger.Error || GormLevel("off") != glogger.Silent {
		t.Fatalf("unexpected gorm level mapping")
	}
}
