// Package alert turns failure conditions into outbound notifications,
// deduplicated by fingerprint and held back during quiet hours.
package alert

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/realtysync/provider-sync/internal/adapter"
	"github.com/realtysync/provider-sync/internal/cache"
	"github.com/realtysync/provider-sync/internal/logger"
	"github.com/realtysync/provider-sync/internal/sanitize"
)

const (
	dedupeKeyPrefix = "alert:dedupe:"
	suppressedKey   = "alert:quiet:suppressed"

	topReasons = 5
)

// Config holds dispatcher configuration
type Config struct {
	DedupeTTL        time.Duration
	SuppressionTTL   time.Duration
	QuietHours       string
	Timezone         string
	MaxMessageLength int
}

// Alert is one evaluated alert condition
type Alert struct {
	// Type identifies the condition, e.g. "sync_failures"
	Type string
	// Fingerprint summarizes the condition's current inputs
	Fingerprint string
	Message     string
	Fields      map[string]any
}

// Suppressed accumulates alerts held back during quiet hours
type Suppressed struct {
	Count   int            `json:"count"`
	Reasons map[string]int `json:"reasons"`
}

// Dispatcher sends alerts through a notifier
type Dispatcher struct {
	cfg       Config
	notifier  Notifier
	cache     cache.Cache
	clock     adapter.Clock
	sanitizer *sanitize.Sanitizer
	quiet     *QuietHours
}

// NewDispatcher creates a dispatcher. It fails when the quiet hours or timezone are malformed.
func NewDispatcher(cfg Config, notifier Notifier, c cache.Cache, clock adapter.Clock, sanitizer *sanitize.Sanitizer) (*Dispatcher, error) {
	quiet, err := ParseQuietHours(cfg.QuietHours, cfg.Timezone)
	if err != nil {
		return nil, err
	}
	if cfg.DedupeTTL <= 0 {
		cfg.DedupeTTL = 30 * time.Minute
	}
	if cfg.SuppressionTTL <= 0 {
		cfg.SuppressionTTL = 12 * time.Hour
	}
	if cfg.MaxMessageLength <= 0 {
		cfg.MaxMessageLength = 3500
	}
	if sanitizer == nil {
		sanitizer = sanitize.Default()
	}

	return &Dispatcher{
		cfg:       cfg,
		notifier:  notifier,
		cache:     c,
		clock:     clock,
		sanitizer: sanitizer,
		quiet:     quiet,
	}, nil
}

// InQuietHours reports whether now falls inside the quiet window
func (d *Dispatcher) InQuietHours() bool {
	return d.quiet.Contains(d.clock.Now())
}

// Send delivers message with its fields. Returns false when the channel is not
// configured or delivery fails; it never returns an error.
func (d *Dispatcher) Send(ctx context.Context, message string, fields map[string]any) bool {
	if !d.notifier.Configured() {
		logger.DebugCtx(ctx, "Alert channel not configured, skipping send")
		return false
	}

	text := d.format(message, fields)
	if err := d.notifier.Notify(ctx, text); err != nil {
		logger.WarnCtx(ctx, "Failed to send alert",
			zap.String("error", d.sanitizer.Message(err.Error())),
			zap.String("message", text))
		return false
	}

	logger.InfoCtx(ctx, "Alert sent", zap.Int("length", len(text)))
	return true
}

func (d *Dispatcher) format(message string, fields map[string]any) string {
	var b strings.Builder
	b.WriteString(message)

	masked := d.sanitizer.MaskContext(fields)
	for _, k := range sanitize.SortedKeys(masked) {
		fmt.Fprintf(&b, "\n%s: %v", k, masked[k])
	}

	return d.sanitizer.MessageN(b.String(), d.cfg.MaxMessageLength)
}

// Notify sends a deduplicated alert. An alert whose fingerprint matches the last
// sent one for its type is dropped; during quiet hours it is counted instead.
func (d *Dispatcher) Notify(ctx context.Context, a Alert) bool {
	key := dedupeKeyPrefix + a.Type

	last, ok, err := d.cache.Get(ctx, key)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to read alert fingerprint", zap.String("type", a.Type), zap.Error(err))
	} else if ok && last == a.Fingerprint {
		logger.DebugCtx(ctx, "Alert unchanged, skipping", zap.String("type", a.Type))
		return false
	}

	if d.InQuietHours() {
		d.recordSuppressed(ctx, a.Type)
		return false
	}

	if !d.Send(ctx, a.Message, a.Fields) {
		return false
	}

	if err := d.cache.Set(ctx, key, a.Fingerprint, d.cfg.DedupeTTL); err != nil {
		logger.WarnCtx(ctx, "Failed to store alert fingerprint", zap.String("type", a.Type), zap.Error(err))
	}
	return true
}

// Clear forgets the last fingerprint of alertType so a recurrence is sent again
func (d *Dispatcher) Clear(ctx context.Context, alertType string) {
	if err := d.cache.Delete(ctx, dedupeKeyPrefix+alertType); err != nil {
		logger.WarnCtx(ctx, "Failed to clear alert fingerprint", zap.String("type", alertType), zap.Error(err))
	}
}

func (d *Dispatcher) recordSuppressed(ctx context.Context, reason string) {
	// A failed read must not overwrite the stored counter
	s, err := cache.GetJSON[Suppressed](ctx, d.cache, suppressedKey)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to read suppressed alerts", zap.String("reason", reason), zap.Error(err))
		return
	}
	if s == nil {
		s = &Suppressed{}
	}
	if s.Reasons == nil {
		s.Reasons = make(map[string]int)
	}
	s.Count++
	s.Reasons[reason]++

	if err := cache.SetJSON(ctx, d.cache, suppressedKey, s, d.cfg.SuppressionTTL); err != nil {
		logger.WarnCtx(ctx, "Failed to record suppressed alert", zap.String("reason", reason), zap.Error(err))
		return
	}

	logger.InfoCtx(ctx, "Alert suppressed by quiet hours", zap.String("reason", reason), zap.Int("suppressed", s.Count))
}

// FlushSuppressed sends one rollup of the alerts held back during quiet hours
// and clears the counter. It does nothing while quiet hours are still active.
func (d *Dispatcher) FlushSuppressed(ctx context.Context) bool {
	if d.InQuietHours() {
		return false
	}

	s, err := cache.GetJSON[Suppressed](ctx, d.cache, suppressedKey)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to read suppressed alerts", zap.Error(err))
		return false
	}
	if s == nil || s.Count == 0 {
		return false
	}

	if !d.Send(ctx, RollupMessage(*s), nil) {
		return false
	}

	if err := d.cache.Delete(ctx, suppressedKey); err != nil {
		logger.WarnCtx(ctx, "Failed to clear suppressed alerts", zap.Error(err))
	}
	return true
}

// RollupMessage summarizes suppressed alerts with their most frequent reasons
func RollupMessage(s Suppressed) string {
	reasons := make([]string, 0, len(s.Reasons))
	for r := range s.Reasons {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool {
		if s.Reasons[reasons[i]] != s.Reasons[reasons[j]] {
			return s.Reasons[reasons[i]] > s.Reasons[reasons[j]]
		}
		return reasons[i] < reasons[j]
	})
	if len(reasons) > topReasons {
		reasons = reasons[:topReasons]
	}

	parts := make([]string, len(reasons))
	for i, r := range reasons {
		parts[i] = fmt.Sprintf("%s (%d)", r, s.Reasons[r])
	}

	msg := fmt.Sprintf("Quiet hours ended: suppressed %d alerts", s.Count)
	if len(parts) > 0 {
		msg += "; top reasons: " + strings.Join(parts, ", ")
	}
	return msg
}
