package game

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// CommsHandler is a slog.Handler that writes records into the comms log so
// diagnostics show up in the HUD instead of on stdout.
type CommsHandler struct {
	log   *MessageLog
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewCommsHandler returns a handler that logs at level and above into log.
func NewCommsHandler(log *MessageLog, level slog.Leveler) *CommsHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &CommsHandler{log: log, level: level}
}

func (h *CommsHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *CommsHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	for _, a := range h.attrs {
		writeAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.group, a)
		return true
	})
	h.log.Add(b.String(), levelPriority(r.Level))
	return nil
}

func (h *CommsHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		next.attrs = append(next.attrs, a)
	}
	return &next
}

func (h *CommsHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	if next.group != "" {
		next.group += "." + name
	} else {
		next.group = name
	}
	return &next
}

func writeAttr(b *strings.Builder, group string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	fmt.Fprintf(b, " %s=%v", key, a.Value.Resolve())
}

func levelPriority(l slog.Level) MsgPriority {
	switch {
	case l >= slog.LevelError:
		return MsgCritical
	case l >= slog.LevelWarn:
		return MsgWarning
	case l >= slog.LevelInfo:
		return MsgInfo
	default:
		return MsgDebug
	}
}

// discard returns logger, or a logger that drops everything if it is nil.
func discard(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.DiscardHandler)
}
