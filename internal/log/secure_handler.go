package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"
)

// sensitiveKeys contains attribute keys that should always be sanitized.
// Passwords under audit and the personal tokens used to build wordlists
// must never reach log output.
var sensitiveKeys = map[string]bool{
	// Passwords under evaluation
	"password":  true,
	"passwd":    true,
	"pass":      true,
	"pw":        true,
	"candidate": true,
	"guess":     true,
	"secret":    true,

	// Personal metadata
	"token":    true,
	"tokens":   true,
	"meta":     true,
	"metadata": true,
	"word":     true,
	"words":    true,
	"name":     true,
	"dob":      true,
	"birthday": true,
	"email":    true,
	"phone":    true,
}

// sensitivePatterns contains regex patterns that indicate sensitive values.
// Values matching these patterns will be sanitized regardless of key name.
var sensitivePatterns = []*regexp.Regexp{
	// crypt(3)-style hashes ($2b$, $6$, $argon2id$ ...)
	regexp.MustCompile(`^\$[0-9a-z]+\$[^\s]+$`),

	// Raw hex digests (MD5, SHA-1, SHA-256, NTLM)
	regexp.MustCompile(`^(?i)[0-9a-f]{32}([0-9a-f]{8}|[0-9a-f]{32})?$`),

	// Private key markers
	regexp.MustCompile(`(?i)-----BEGIN.*(PRIVATE|SECRET).*KEY-----`),
}

// MaskValue is the string used to replace sensitive values.
const MaskValue = "***REDACTED***"

// Secrets is a concurrency-safe set of literal values that must be masked
// wherever they appear in a log attribute, whatever its key.
type Secrets struct {
	mu     sync.RWMutex
	values map[string]struct{}
}

// minSecretLength is the shortest value, in runes, that Secrets registers.
// Shorter values occur in almost every log line and carry no identifying
// information on their own.
const minSecretLength = 3

// NewSecrets returns a set seeded with values. Values shorter than
// minSecretLength are ignored.
func NewSecrets(values ...string) *Secrets {
	s := &Secrets{values: make(map[string]struct{}, len(values))}
	s.Add(values...)
	return s
}

// Add registers more values to mask. Values shorter than minSecretLength
// are ignored.
func (s *Secrets) Add(values ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]struct{}, len(values))
	}
	for _, v := range values {
		if utf8.RuneCountInString(v) >= minSecretLength {
			s.values[v] = struct{}{}
		}
	}
}

// Contains reports whether str contains any registered value.
func (s *Secrets) Contains(str string) bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for v := range s.values {
		if strings.Contains(str, v) {
			return true
		}
	}
	return false
}

// SecureHandler wraps an slog.Handler to sanitize sensitive information.
// It intercepts log records and sanitizes attribute values that match
// sensitive key names, value patterns or registered secrets before passing
// them to the underlying handler. The record message is checked against
// registered secrets too.
type SecureHandler struct {
	// handler is the underlying slog handler that receives sanitized records.
	handler slog.Handler

	// secrets holds literal passwords and tokens of the current run.
	secrets *Secrets
}

// NewSecureHandler creates a new SecureHandler wrapping the given handler.
// If handler is nil, the returned SecureHandler will use slog.Default().Handler().
// secrets may be nil.
func NewSecureHandler(handler slog.Handler, secrets *Secrets) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SecureHandler{handler: handler, secrets: secrets}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle sanitizes the record's attributes and passes it to the underlying handler.
func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	msg := r.Message
	if h.secrets.Contains(msg) {
		msg = MaskValue
	}
	sanitized := slog.NewRecord(r.Time, r.Level, msg, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		sanitized.AddAttrs(h.sanitizeAttr(a))
		return true
	})

	return h.handler.Handle(ctx, sanitized)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are sanitized before being added.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sanitizedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		sanitizedAttrs[i] = h.sanitizeAttr(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(sanitizedAttrs), secrets: h.secrets}
}

// WithGroup returns a new handler with the given group name.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name), secrets: h.secrets}
}

// sanitizeAttr sanitizes a single attribute, recursively handling groups.
func (h *SecureHandler) sanitizeAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		sanitizedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			sanitizedAttrs[i] = h.sanitizeAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(sanitizedAttrs...)}
	}

	keyLower := strings.ToLower(a.Key)
	if sensitiveKeys[keyLower] || containsSensitiveKeyword(keyLower) {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString || a.Value.Kind() == slog.KindAny {
		strVal := a.Value.String()
		if isSensitiveValue(strVal) || h.secrets.Contains(strVal) {
			return slog.String(a.Key, MaskValue)
		}
	}

	return a
}

// containsSensitiveKeyword checks if the key contains sensitive keywords.
// Note: "word" alone is excluded because it matches "wordlist" keys such
// as wordlist_size, which carry counts rather than content.
func containsSensitiveKeyword(key string) bool {
	sensitiveKeywords := []string{
		"password", "passwd", "secret", "token", "candidate", "credential",
	}

	for _, keyword := range sensitiveKeywords {
		if strings.Contains(key, keyword) {
			return true
		}
	}
	return false
}

// isSensitiveValue checks if a value matches sensitive patterns.
func isSensitiveValue(value string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// levelFor maps the verbose flag to a minimum log level.
func levelFor(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// NewSecureLogger creates a new slog.Logger with secure handling.
// The logger sanitizes sensitive information in all log output.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//   - secrets: Optional set of passwords and tokens to mask anywhere
func NewSecureLogger(w io.Writer, verbose bool, secrets *Secrets) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: levelFor(verbose),
	}
	return slog.New(NewSecureHandler(slog.NewTextHandler(w, opts), secrets))
}

// NewSecureJSONLogger creates a new slog.Logger with secure handling
// that outputs JSON format. Useful for structured log aggregation.
func NewSecureJSONLogger(w io.Writer, verbose bool, secrets *Secrets) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: levelFor(verbose),
	}
	return slog.New(NewSecureHandler(slog.NewJSONHandler(w, opts), secrets))
}
