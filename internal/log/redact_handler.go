package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// MaskValue is the string used to replace sensitive values.
const MaskValue = "***REDACTED***"

// sensitiveKeys contains attribute keys whose values are always masked,
// regardless of what the value looks like.
var sensitiveKeys = map[string]bool{
	"password":      true,
	"passwd":        true,
	"secret":        true,
	"token":         true,
	"api_key":       true,
	"apikey":        true,
	"api-key":       true,
	"access_token":  true,
	"session":       true,
	"session_id":    true,
	"sessionid":     true,
	"sid":           true,
	"authorization": true,
	"cookie":        true,
	"credential":    true,
	"credentials":   true,
}

// secretParamPattern matches query parameters whose name suggests the value
// is a credential. Applied to string values that contain a query string, so
// URLs logged as attribute values get their secret parameters masked while
// the rest of the URL stays readable.
var secretParamPattern = regexp.MustCompile(
	`(?i)([?&](?:token|key|api_?key|secret|password|passwd|session(?:_?id)?|sid|auth|signature|sig|access_?token)=)[^&\s]+`,
)

// RedactHandler wraps an slog.Handler and masks sensitive attribute values
// before passing records to the underlying handler. It works with any
// underlying handler (text, JSON) and integrates with standard slog APIs.
type RedactHandler struct {
	// handler is the underlying slog handler that receives scrubbed records.
	handler slog.Handler
}

// NewRedactHandler creates a RedactHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewRedactHandler(handler slog.Handler) *RedactHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &RedactHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle scrubs the record's attributes and passes it on.
func (h *RedactHandler) Handle(ctx context.Context, r slog.Record) error {
	scrubbed := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		scrubbed.AddAttrs(h.redactAttr(a))
		return true
	})

	return h.handler.Handle(ctx, scrubbed)
}

// WithAttrs returns a new handler with the given attributes added,
// scrubbed first.
func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = h.redactAttr(a)
	}
	return &RedactHandler{handler: h.handler.WithAttrs(redacted)}
}

// WithGroup returns a new handler with the given group name.
func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{handler: h.handler.WithGroup(name)}
}

// redactAttr scrubs a single attribute, recursively handling groups.
func (h *RedactHandler) redactAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		redacted := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			redacted[i] = h.redactAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(redacted...)}
	}

	// Keys that name a credential mask the whole value.
	if sensitiveKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, MaskValue)
	}

	// URL-shaped values keep their readable part; only secret-bearing
	// query parameter values are masked.
	if a.Value.Kind() == slog.KindString {
		val := a.Value.String()
		if masked := MaskURLSecrets(val); masked != val {
			return slog.String(a.Key, masked)
		}
	}

	return a
}

// MaskURLSecrets masks the values of secret-bearing query parameters in a
// string. Non-URL strings and URLs without such parameters are returned
// unchanged.
func MaskURLSecrets(s string) string {
	if !strings.ContainsAny(s, "?&") {
		return s
	}
	return secretParamPattern.ReplaceAllString(s, "${1}"+MaskValue)
}

// NewRedactLogger creates an slog.Logger writing text records to w with
// redaction applied. Warn level by default, Debug when verbose is true.
func NewRedactLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewRedactHandler(handler))
}
