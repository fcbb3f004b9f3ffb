package logs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

type GormLogger struct {
	level         glogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger routes gorm's own logging through the global zap logger.
func NewGormLogger(level glogger.LogLevel, slowThreshold time.Duration) glogger.Interface {
	return &GormLogger{level: level, slowThreshold: slowThreshold}
}

// GormLevel maps a zap level name onto the closest gorm level.
func GormLevel(text string) glogger.LogLevel {
	switch text {
	case "debug":
		return glogger.Info
	case "info", "warn":
		return glogger.Warn
	case "error":
		return glogger.Error
	default:
		return glogger.Silent
	}
}

func (l *GormLogger) LogMode(level glogger.LogLevel) glogger.Interface {
	n := *l
	n.level = level
	return &n
}

func (l *GormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= glogger.Info {
		Info(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= glogger.Warn {
		Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= glogger.Error {
		Error(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= glogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}
	switch {
	case err != nil && l.level >= glogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		Error("gorm query failed", append(fields, zap.Error(err))...)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= glogger.Warn:
		Warn("gorm slow query", append(fields, zap.Duration("threshold", l.slowThreshold))...)
	case l.level >= glogger.Info:
		Debug("gorm trace", fields...)
	}
}
