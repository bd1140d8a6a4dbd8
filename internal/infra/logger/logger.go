package logger

import (
	"log/slog"
	"os"
)

// New возвращает JSON-логгер; в dev — текстовый и с debug-уровнем,
// чтобы апдейты было удобно читать глазами.
func New(env string) *slog.Logger {
	level := slog.LevelInfo
	if env == "dev" {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if env == "dev" {
		h = slog.NewTextHandler(os.Stdout, opts)
	} else {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(h)
}

// Component помечает логгер именем подсистемы.
func Component(log *slog.Logger, name string) *slog.Logger {
	return log.With("component", name)
}
