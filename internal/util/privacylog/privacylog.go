// Package privacylog wraps an slog.Handler so that sensitive attributes can
// never reach log output, whichever code path emits them. Passphrases, key
// material and message plaintext are redacted by attribute key.
package privacylog

import (
	"context"
	"log/slog"
	"strings"
)

const redactedValue = "[REDACTED]"

var sensitiveKeyParts = []string{
	"passphrase", "password", "secret", "token",
	"plaintext", "key_material", "private", "seed", "mnemonic",
}

// Handler is an slog.Handler that redacts sensitive attributes before
// delegating to the wrapped handler.
type Handler struct {
	next slog.Handler
}

// Wrap returns a redacting handler around next.
func Wrap(next slog.Handler) slog.Handler {
	if next == nil {
		return nil
	}
	return &Handler{next: next}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, rec slog.Record) error {
	out := slog.NewRecord(rec.Time, rec.Level, rec.Message, rec.PC)
	rec.Attrs(func(attr slog.Attr) bool {
		out.AddAttrs(sanitize(attr))
		return true
	})
	return h.next.Handle(ctx, out)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		clean[i] = sanitize(attr)
	}
	return &Handler{next: h.next.WithAttrs(clean)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{next: h.next.WithGroup(name)}
}

func sanitize(attr slog.Attr) slog.Attr {
	key := strings.ToLower(attr.Key)
	for _, part := range sensitiveKeyParts {
		if strings.Contains(key, part) {
			return slog.String(attr.Key, redactedValue)
		}
	}
	if attr.Value.Kind() == slog.KindGroup {
		members := attr.Value.Group()
		clean := make([]any, 0, len(members))
		for _, m := range members {
			clean = append(clean, sanitize(m))
		}
		return slog.Group(attr.Key, clean...)
	}
	return attr
}
