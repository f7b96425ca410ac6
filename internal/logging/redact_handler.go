package logging

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Redacted replaces secret values in log output.
const Redacted = "[REDACTED]"

// minSecretLength guards against masking every "a" when a placeholder key is
// configured.
const minSecretLength = 4

// redactHandler masks configured secrets in messages and attribute values
// before the record reaches the wrapped handler.
type redactHandler struct {
	next     slog.Handler
	replacer *strings.Replacer
}

// NewRedactingHandler wraps next so every occurrence of a secret is replaced
// with [REDACTED]. Secrets shorter than four characters are ignored.
func NewRedactingHandler(next slog.Handler, secrets ...string) slog.Handler {
	replacer := newSecretReplacer(secrets)
	if replacer == nil || next == nil {
		return next
	}
	return &redactHandler{next: next, replacer: replacer}
}

func newSecretReplacer(secrets []string) *strings.Replacer {
	unique := make([]string, 0, len(secrets))
	for _, secret := range secrets {
		secret = strings.TrimSpace(secret)
		if len(secret) < minSecretLength || slices.Contains(unique, secret) {
			continue
		}
		unique = append(unique, secret)
	}
	if len(unique) == 0 {
		return nil
	}
	// Longest first so a key that contains another key is masked whole.
	slices.SortFunc(unique, func(a, b string) int { return cmp.Compare(len(b), len(a)) })
	pairs := make([]string, 0, len(unique)*2)
	for _, secret := range unique {
		pairs = append(pairs, secret, Redacted)
	}
	return strings.NewReplacer(pairs...)
}

func (h *redactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *redactHandler) Handle(ctx context.Context, record slog.Record) error {
	clean := slog.NewRecord(record.Time, record.Level, h.replacer.Replace(record.Message), record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		clean.AddAttrs(h.redactAttr(attr))
		return true
	})
	return h.next.Handle(ctx, clean)
}

func (h *redactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		clean[i] = h.redactAttr(attr)
	}
	return &redactHandler{next: h.next.WithAttrs(clean), replacer: h.replacer}
}

func (h *redactHandler) WithGroup(name string) slog.Handler {
	return &redactHandler{next: h.next.WithGroup(name), replacer: h.replacer}
}

func (h *redactHandler) redactAttr(attr slog.Attr) slog.Attr {
	value := attr.Value.Resolve()
	switch value.Kind() {
	case slog.KindString:
		return slog.String(attr.Key, h.replacer.Replace(value.String()))
	case slog.KindGroup:
		group := value.Group()
		clean := make([]any, len(group))
		for i, member := range group {
			clean[i] = h.redactAttr(member)
		}
		return slog.Group(attr.Key, clean...)
	case slog.KindAny:
		var text string
		switch v := value.Any().(type) {
		case error:
			text = v.Error()
		case fmt.Stringer:
			text = v.String()
		default:
			text = fmt.Sprint(v)
		}
		if masked := h.replacer.Replace(text); masked != text {
			return slog.String(attr.Key, masked)
		}
		return slog.Attr{Key: attr.Key, Value: value}
	default:
		return slog.Attr{Key: attr.Key, Value: value}
	}
}
