// Package logging defines the structured-logging interface used across the
// client. Implementations wrap log/slog and go.uber.org/zap.
package logging

import (
	"context"
	"fmt"
	"io"
)

// Output formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "request finished", "method", method, "status", status)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

type nopLogger struct{}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) Logger                  { return n }

// New builds the logger for format: FormatText is slog writing to w,
// FormatJSON is zap production output on stderr. The returned func flushes
// buffered entries.
func New(format, level string, w io.Writer) (Logger, func(), error) {
	switch format {
	case FormatText, "":
		l, err := NewSlogText(w, level)
		if err != nil {
			return nil, nil, err
		}
		return l, func() {}, nil
	case FormatJSON:
		l, sync, err := NewZapProduction(level)
		if err != nil {
			return nil, nil, err
		}
		return l, sync, nil
	}
	return nil, nil, fmt.Errorf("unknown log format %q", format)
}
