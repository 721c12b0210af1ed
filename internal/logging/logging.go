// Structured logging setup shared by all commands
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options controls handler construction.
type Options struct {
	Level  string // debug, info, warn, error
	JSON   bool
	Output io.Writer
}

// New returns a logger configured with a text handler writing to STDOUT.
func New() *slog.Logger {
	return NewWithOptions(Options{})
}

// NewWithOptions returns a logger built from the given options.
func NewWithOptions(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	h := &slog.HandlerOptions{Level: parseLevel(opts.Level)}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(out, h))
	}
	return slog.New(slog.NewTextHandler(out, h))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type ctxKey struct{}

// NewContext returns a copy of ctx with the logger stored.
func NewContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves a logger from ctx or returns slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
