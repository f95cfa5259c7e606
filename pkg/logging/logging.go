// Package logging provides slog handlers used by the ctl binary:
// single-line records carrying timestamp, level, source, and message,
// with optional context-scoped attribute groups.
package logging

import (
	"context"
	"io"
	"log/slog"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Logger builds a slog.Logger writing single-line records to w.
// When jsonFmt is false a text handler is used. Source location is
// always attached so failures point at the offending call site.
func Logger(w io.Writer, jsonFmt bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	}
	var h slog.Handler
	if jsonFmt {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(&ctxHandler{Handler: h})
}

// Rotating returns a size-capped, self-rotating file sink. The parent
// directory must exist; lumberjack creates the file on first write.
func Rotating(path string) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
		Compress:   false,
	}
}

// Tee duplicates log output to every sink, typically stdout plus the
// persistent log file.
func Tee(sinks ...io.Writer) io.Writer {
	return io.MultiWriter(sinks...)
}

type ctxKey struct{}

// AppendCtx returns a context carrying attrs; every record logged with
// a *Context method through a Logger from this package includes them.
func AppendCtx(ctx context.Context, attrs ...slog.Attr) context.Context {
	existing, _ := ctx.Value(ctxKey{}).([]slog.Attr)
	merged := make([]slog.Attr, 0, len(existing)+len(attrs))
	merged = append(merged, existing...)
	merged = append(merged, attrs...)
	return context.WithValue(ctx, ctxKey{}, merged)
}

// ctxHandler injects attrs appended via AppendCtx into each record
type ctxHandler struct {
	slog.Handler
}

func (h *ctxHandler) Handle(ctx context.Context, rec slog.Record) error {
	if attrs, ok := ctx.Value(ctxKey{}).([]slog.Attr); ok {
		rec.AddAttrs(attrs...)
	}
	return h.Handler.Handle(ctx, rec)
}

func (h *ctxHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ctxHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *ctxHandler) WithGroup(name string) slog.Handler {
	return &ctxHandler{Handler: h.Handler.WithGroup(name)}
}
