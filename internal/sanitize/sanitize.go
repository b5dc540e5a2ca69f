// Package sanitize redacts credentials and secret-looking values from text and
// structured context before they reach storage, logs or outbound alerts.
package sanitize

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync/atomic"
	"unicode/utf8"
)

const (
	// Mask replaces redacted values
	Mask = "[REDACTED]"

	// DefaultMaxLength is the default cap for sanitized messages
	DefaultMaxLength = 1000

	truncatedSuffix = "…"
)

// DefaultPatterns are the free-text patterns redacted when no configuration is given.
// A pattern with a capture group keeps the first group and masks the rest of the match.
var DefaultPatterns = []string{
	`(?i)(bearer\s+)[A-Za-z0-9\-._~+/]+=*`,
	`(?i)((?:access_token|refresh_token|token|password|passwd|secret|api[_-]?key|authorization|credential)["']?\s*[:=]\s*["']?)[^"'\s,&;}]+`,
	`(eyJ)[A-Za-z0-9_\-]+\.[A-Za-z0-9_\-]+\.[A-Za-z0-9_\-]+`,
	`(bot)[0-9]{6,}:[A-Za-z0-9_\-]{20,}`,
}

// DefaultSecretKeys are substrings that mark a context key as secret
var DefaultSecretKeys = []string{
	"token",
	"password",
	"passwd",
	"secret",
	"credential",
	"authorization",
	"api_key",
	"apikey",
	"cookie",
	"refresh",
}

// Config holds sanitizer configuration
type Config struct {
	Patterns   []string
	SecretKeys []string
	MaxLength  int
}

// Sanitizer redacts secrets from messages and context maps
type Sanitizer struct {
	patterns   []*regexp.Regexp
	secretKeys []string
	maxLength  int
}

var defaultSanitizer atomic.Pointer[Sanitizer]

func init() {
	s, err := New(Config{})
	if err != nil {
		panic(err)
	}
	defaultSanitizer.Store(s)
}

// New compiles a sanitizer from the configuration, falling back to defaults for empty fields
func New(cfg Config) (*Sanitizer, error) {
	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	secretKeys := cfg.SecretKeys
	if len(secretKeys) == 0 {
		secretKeys = DefaultSecretKeys
	}
	maxLength := cfg.MaxLength
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redaction pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}

	keys := make([]string, 0, len(secretKeys))
	for _, k := range secretKeys {
		keys = append(keys, strings.ToLower(k))
	}

	return &Sanitizer{patterns: compiled, secretKeys: keys, maxLength: maxLength}, nil
}

// SetDefault replaces the process-wide sanitizer
func SetDefault(s *Sanitizer) {
	if s != nil {
		defaultSanitizer.Store(s)
	}
}

// Default returns the process-wide sanitizer
func Default() *Sanitizer {
	return defaultSanitizer.Load()
}

// Redact masks every secret-looking substring of text
func (s *Sanitizer) Redact(text string) string {
	for _, re := range s.patterns {
		if re.NumSubexp() > 0 {
			text = re.ReplaceAllString(text, "${1}"+Mask)
		} else {
			text = re.ReplaceAllString(text, Mask)
		}
	}
	return text
}

// Message redacts text and caps it at the configured length
func (s *Sanitizer) Message(text string) string {
	return Truncate(s.Redact(text), s.maxLength)
}

// MessageN redacts text and caps it at n runes
func (s *Sanitizer) MessageN(text string, n int) string {
	return Truncate(s.Redact(text), n)
}

// IsSecretKey reports whether a context key looks like it holds a secret
func (s *Sanitizer) IsSecretKey(key string) bool {
	lower := strings.ToLower(key)
	for _, k := range s.secretKeys {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// MaskContext returns a copy of ctx with secret keys masked and string values redacted
func (s *Sanitizer) MaskContext(ctx map[string]any) map[string]any {
	return s.walk(ctx, true)
}

// DropSecrets returns a copy of ctx without secret keys and with string values redacted
func (s *Sanitizer) DropSecrets(ctx map[string]any) map[string]any {
	return s.walk(ctx, false)
}

func (s *Sanitizer) walk(ctx map[string]any, mask bool) map[string]any {
	if ctx == nil {
		return nil
	}

	out := make(map[string]any, len(ctx))
	for k, v := range ctx {
		if s.IsSecretKey(k) {
			if mask {
				out[k] = Mask
			}
			continue
		}
		out[k] = s.value(v, mask)
	}
	return out
}

func (s *Sanitizer) value(v any, mask bool) any {
	switch val := v.(type) {
	case string:
		return s.Message(val)
	case error:
		return s.Message(val.Error())
	case map[string]any:
		return s.walk(val, mask)
	case []any:
		items := make([]any, len(val))
		for i, item := range val {
			items[i] = s.value(item, mask)
		}
		return items
	case []string:
		items := make([]string, len(val))
		for i, item := range val {
			items[i] = s.Message(item)
		}
		return items
	default:
		return v
	}
}

// Truncate caps text at n runes; when cut, the trailing ellipsis counts toward n
func Truncate(text string, n int) string {
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	keep := n - utf8.RuneCountInString(truncatedSuffix)
	if keep <= 0 {
		return string(runes[:n])
	}
	return string(runes[:keep]) + truncatedSuffix
}

// SortedKeys returns the keys of m in lexicographic order
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Redact masks secrets in text using the default sanitizer
func Redact(text string) string {
	return Default().Redact(text)
}

// Message redacts and caps text using the default sanitizer
func Message(text string) string {
	return Default().Message(text)
}

// MaskContext masks secret keys using the default sanitizer
func MaskContext(ctx map[string]any) map[string]any {
	return Default().MaskContext(ctx)
}

// DropSecrets drops secret keys using the default sanitizer
func DropSecrets(ctx map[string]any) map[string]any {
	return Default().DropSecrets(ctx)
}
