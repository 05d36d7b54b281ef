package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"

	"lunch_oracle/internal/app/config"
	"lunch_oracle/internal/app/server"
	"lunch_oracle/internal/platform/logging"
)

func main() {
	// 設定（configs/oracle.yamlと環境変数）
	cfg, err := config.Load(viper.New(), os.Getenv("ORACLE_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}

	// ロガー
	_, cleanup := logging.New(cfg.Log, os.Stderr)
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
