package main

import (
	"context"
	"flag"
	"log"

	"dungeoncore/internal/config"
	"dungeoncore/internal/logs"

	"github.com/cloudwego/hertz/pkg/app/server"
	"go.uber.org/zap"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to the YAML config file")
	flag.Parse()

	path := config.ResolvePath(configPath)
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logs.Init("dungeon-server", logConfig(cfg.Log)); err != nil {
		log.Fatalf("init logs: %v", err)
	}
	defer func() { _ = logs.Sync() }()

	a, err := buildApp(context.Background(), cfg)
	if err != nil {
		logs.Error("build application", zap.Error(err))
		return
	}
	defer a.Close()

	if path != "" {
		if err := config.Watch(path, a.onConfigChange, func(err error) {
			logs.Warn("reload config", zap.Error(err))
		}); err != nil {
			logs.Warn("watch config", zap.String("path", path), zap.Error(err))
		}
	}

	s := server.Default(server.WithHostPorts(cfg.Server.Addr))
	a.handler.RegisterRoutes(s)

	logs.Info("dungeon server listening",
		zap.String("addr", cfg.Server.Addr),
		zap.String("database", cfg.Database.Driver),
		zap.String("catalog", cfg.Catalog.Source),
		zap.Bool("auth_required", cfg.Auth.Required),
	)
	s.Spin()
}
