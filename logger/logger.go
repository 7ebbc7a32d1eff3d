// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Setup builds the logger for the environment. Local runs get the colored
// handler when writing to a terminal and plain text otherwise.
func Setup(env string, out io.Writer) *slog.Logger {
	switch env {
	case EnvLocal:
		opts := &slog.HandlerOptions{Level: slog.LevelDebug}
		if isTerminal(out) {
			return slog.New(PrettyHandlerOptions{SlogOpts: opts}.NewPrettyHandler(out))
		}
		return slog.New(slog.NewTextHandler(out, opts))
	case EnvDev:
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}

// Err wraps an error as a log attribute
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
