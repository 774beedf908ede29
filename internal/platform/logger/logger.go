package logger

import (
	"log/slog"
	"os"

	"github.com/NelloGamerz/Meme-Vault/internal/config"
)

func NewLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	var handler slog.Handler
	switch cfg.Logger.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	switch cfg.Logger.Format {
	case "TEXT":
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})
	default:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})
	}
	logger := slog.New(handler).With(
		slog.String("service", cfg.Service.Name),
		slog.String("env", cfg.Service.Env),
		slog.Int("pid", os.Getpid()),
	)
	slog.SetDefault(logger)
	return logger
}
