// Package logging はslogのJSONロガーを構成します。
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/natefinch/lumberjack"
)

// Config はログ出力の設定です。
type Config struct {
	Level      string `mapstructure:"level" yaml:"level"`
	File       string `mapstructure:"file" yaml:"file"`               // 空の場合は標準エラー出力のみ
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"` // ローテーションするファイルサイズ
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
}

// New はJSON形式のロガーを生成し、slogのデフォルトに設定します。
// Fileが指定されている場合はlumberjackでローテーションしながらファイルにも書き出します。
// 戻り値のcleanupは呼び出し元がdeferすること。
func New(cfg Config, stderr io.Writer) (*slog.Logger, func()) {
	if stderr == nil {
		stderr = os.Stderr
	}
	writers := []io.Writer{stderr}
	cleanup := func() {}

	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    orDefault(cfg.MaxSizeMB, 50),
			MaxBackups: orDefault(cfg.MaxBackups, 3),
			MaxAge:     orDefault(cfg.MaxAgeDays, 14),
			Compress:   true,
		}
		writers = append(writers, lj)
		cleanup = func() { _ = lj.Close() }
	}

	handler := slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: ParseLevel(cfg.Level)})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, cleanup
}

// ParseLevel はログレベル名をslog.Levelに変換します。不明な値はinfoです。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
