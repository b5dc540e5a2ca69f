package alert

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/realtysync/provider-sync/internal/adapter"
	"github.com/realtysync/provider-sync/internal/canonical"
	"github.com/realtysync/provider-sync/internal/domain"
	"github.com/realtysync/provider-sync/internal/logger"
	"github.com/realtysync/provider-sync/internal/store"
)

// Alert types raised by the checker
const (
	TypeSyncFailures    = "sync_failures"
	TypeQualityFailures = "quality_failures"
	TypeContractDrift   = "contract_drift"
	TypeStaleScopes     = "stale_scopes"
)

// CheckerConfig holds checker configuration
type CheckerConfig struct {
	// Window is the lookback of the failure aggregates
	Window time.Duration
	// StaleAfter flags scopes without a successful run for this long
	StaleAfter time.Duration
	// Scopes are the scopes expected to succeed regularly
	Scopes []domain.Scope
}

// CheckReport is the outcome of one check-and-notify pass
type CheckReport struct {
	ID         string   `json:"id"`
	Flushed    bool     `json:"flushed"`
	Raised     []string `json:"raised"`
	Sent       []string `json:"sent"`
	Suppressed []string `json:"suppressed"`
}

// Checker evaluates run, quality and drift state and notifies through a dispatcher
type Checker struct {
	cfg        CheckerConfig
	store      store.Store
	dispatcher *Dispatcher
	clock      adapter.Clock
}

// NewChecker creates a checker
func NewChecker(cfg CheckerConfig, st store.Store, dispatcher *Dispatcher, clock adapter.Clock) *Checker {
	if cfg.Window <= 0 {
		cfg.Window = time.Hour
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = 6 * time.Hour
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = []domain.Scope{domain.ScopeBlocks, domain.ScopeApartments, domain.ScopeBlockDetail}
	}
	return &Checker{cfg: cfg, store: st, dispatcher: dispatcher, clock: clock}
}

type condition struct {
	alertType string
	evaluate  func(ctx context.Context, now time.Time) (*Alert, error)
}

// CheckAndNotify flushes the quiet-hours rollup, then evaluates every live
// condition. A failing query skips its condition; the errors are joined.
func (c *Checker) CheckAndNotify(ctx context.Context) (*CheckReport, error) {
	now := c.clock.Now()
	report := &CheckReport{
		ID:         ulid.MustNewDefault(now).String(),
		Raised:     []string{},
		Sent:       []string{},
		Suppressed: []string{},
	}

	report.Flushed = c.dispatcher.FlushSuppressed(ctx)

	conditions := []condition{
		{TypeSyncFailures, c.syncFailures},
		{TypeQualityFailures, c.qualityFailures},
		{TypeContractDrift, c.contractDrift},
		{TypeStaleScopes, c.staleScopes},
	}

	var errs []error
	for _, cond := range conditions {
		a, err := cond.evaluate(ctx, now)
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("type", cond.alertType))
			errs = append(errs, fmt.Errorf("%s: %w", cond.alertType, err))
			continue
		}

		if a == nil {
			c.dispatcher.Clear(ctx, cond.alertType)
			continue
		}

		report.Raised = append(report.Raised, a.Type)
		if c.dispatcher.Notify(ctx, *a) {
			report.Sent = append(report.Sent, a.Type)
		} else {
			report.Suppressed = append(report.Suppressed, a.Type)
		}
	}

	logger.InfoCtx(ctx, "Alert check finished",
		zap.String("check_id", report.ID),
		zap.Bool("flushed", report.Flushed),
		zap.Strings("raised", report.Raised),
		zap.Strings("sent", report.Sent))

	return report, errors.Join(errs...)
}

func (c *Checker) syncFailures(ctx context.Context, now time.Time) (*Alert, error) {
	counts, err := c.store.CountFailedRunsByScope(ctx, now.Add(-c.cfg.Window))
	if err != nil {
		return nil, fmt.Errorf("failed to count failed runs: %w", err)
	}
	return countAlert(TypeSyncFailures, "Sync runs failed", c.cfg.Window, scopeCounts(counts))
}

func (c *Checker) qualityFailures(ctx context.Context, now time.Time) (*Alert, error) {
	counts, err := c.store.CountQualityFailuresByScope(ctx, now.Add(-c.cfg.Window))
	if err != nil {
		return nil, fmt.Errorf("failed to count quality failures: %w", err)
	}
	return countAlert(TypeQualityFailures, "Data quality checks failed", c.cfg.Window, scopeCounts(counts))
}

func (c *Checker) contractDrift(ctx context.Context, now time.Time) (*Alert, error) {
	counts, err := c.store.CountContractChangesByEndpoint(ctx, now.Add(-c.cfg.Window))
	if err != nil {
		return nil, fmt.Errorf("failed to count contract changes: %w", err)
	}
	return countAlert(TypeContractDrift, "Provider contract changed", c.cfg.Window, counts)
}

func (c *Checker) staleScopes(ctx context.Context, now time.Time) (*Alert, error) {
	last, err := c.store.GetLastSuccessByScope(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load last successful runs: %w", err)
	}

	var stale []string
	fields := make(map[string]any)
	for _, scope := range c.cfg.Scopes {
		at, ok := last[scope]
		switch {
		case !ok:
			stale = append(stale, string(scope))
			fields[string(scope)] = "never"
		case now.Sub(at) > c.cfg.StaleAfter:
			stale = append(stale, string(scope))
			fields[string(scope)] = at.UTC().Format(time.RFC3339)
		}
	}
	if len(stale) == 0 {
		return nil, nil
	}
	sort.Strings(stale)

	fp, err := fingerprint(stale)
	if err != nil {
		return nil, err
	}

	return &Alert{
		Type:        TypeStaleScopes,
		Fingerprint: fp,
		Message:     fmt.Sprintf("No successful sync within %s: %s", c.cfg.StaleAfter, strings.Join(stale, ", ")),
		Fields:      fields,
	}, nil
}

func scopeCounts(counts map[domain.Scope]int64) map[string]int64 {
	out := make(map[string]int64, len(counts))
	for scope, n := range counts {
		out[string(scope)] = n
	}
	return out
}

// countAlert raises alertType when any group has a positive count
func countAlert(alertType, title string, window time.Duration, counts map[string]int64) (*Alert, error) {
	nonZero := make(map[string]int64)
	for k, n := range counts {
		if n > 0 {
			nonZero[k] = n
		}
	}
	if len(nonZero) == 0 {
		return nil, nil
	}

	fp, err := fingerprint(nonZero)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(nonZero))
	for k := range nonZero {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, nonZero[k])
	}

	return &Alert{
		Type:        alertType,
		Fingerprint: fp,
		Message:     fmt.Sprintf("%s in the last %s: %s", title, window, strings.Join(parts, ", ")),
	}, nil
}

func fingerprint(v any) (string, error) {
	h, err := canonical.Hash(v)
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint alert: %w", err)
	}
	return h[:16], nil
}
