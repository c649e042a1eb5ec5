package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/zhouzirui/questme/backend/internal/config"
)

// componentKey is the attribute every package logs its name under.
const componentKey = "component"

// NewLogger creates a *slog.Logger from cfg writing to stderr and sets it as
// the default logger. Format "json" keeps component as a field; the text
// format prints it as a "[component]" message prefix.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(tagHandler{Handler: slog.NewTextHandler(w, opts)})
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// tagHandler lifts the component attribute into the message, so text logs
// read "[journal] session created".
type tagHandler struct {
	slog.Handler
	tag string
}

func (h tagHandler) Handle(ctx context.Context, rec slog.Record) error {
	tag := h.tag
	out := slog.NewRecord(rec.Time, rec.Level, "", rec.PC)
	rec.Attrs(func(a slog.Attr) bool {
		if a.Key == componentKey {
			tag = a.Value.String()
			return true
		}
		out.AddAttrs(a)
		return true
	})

	out.Message = rec.Message
	if tag != "" {
		out.Message = "[" + tag + "] " + rec.Message
	}
	return h.Handler.Handle(ctx, out)
}

func (h tagHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	tag := h.tag
	rest := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		if a.Key == componentKey {
			tag = a.Value.String()
			continue
		}
		rest = append(rest, a)
	}
	return tagHandler{Handler: h.Handler.WithAttrs(rest), tag: tag}
}

func (h tagHandler) WithGroup(name string) slog.Handler {
	return tagHandler{Handler: h.Handler.WithGroup(name), tag: h.tag}
}
