// Package quality evaluates declarative rules over recently stored entities
// and records the outcomes.
package quality

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/realtysync/provider-sync/internal/adapter"
	"github.com/realtysync/provider-sync/internal/domain"
	"github.com/realtysync/provider-sync/internal/logger"
	"github.com/realtysync/provider-sync/internal/sanitize"
	"github.com/realtysync/provider-sync/internal/store"
	"github.com/realtysync/provider-sync/internal/store/schema"
)

const checkAll = "all_rules"

// Runner evaluates the rule battery of a scope
type Runner struct {
	store      store.Store
	json       adapter.JSON
	sanitizer  *sanitize.Sanitizer
	maxMessage int
}

// NewRunner creates a new quality runner
func NewRunner(st store.Store, json adapter.JSON, sanitizer *sanitize.Sanitizer, maxMessage int) *Runner {
	if sanitizer == nil {
		sanitizer = sanitize.Default()
	}
	if maxMessage <= 0 {
		maxMessage = sanitize.DefaultMaxLength
	}
	return &Runner{
		store:      st,
		json:       json,
		sanitizer:  sanitizer,
		maxMessage: maxMessage,
	}
}

// RunScope evaluates the most recently updated limit entities of scope and
// returns the number of records written, never more than writeCap.
func (r *Runner) RunScope(ctx context.Context, scope domain.Scope, limit, writeCap int) (int, error) {
	if limit <= 0 || writeCap <= 0 {
		return 0, nil
	}

	w := &writer{runner: r, scope: scope, cap: writeCap}

	switch scope {
	case domain.ScopeBlocks:
		items, err := r.store.ListRecentBlocks(ctx, limit)
		if err != nil {
			return 0, fmt.Errorf("failed to list blocks: %w", err)
		}
		evaluate(ctx, w, items, BlockRules(r.json), func(b schema.Block) (string, domain.Locale) {
			return b.ExternalID, domain.Locale{City: b.CityID, Lang: b.Lang}
		})
	case domain.ScopeApartments:
		items, err := r.store.ListRecentApartments(ctx, limit)
		if err != nil {
			return 0, fmt.Errorf("failed to list apartments: %w", err)
		}
		evaluate(ctx, w, items, ApartmentRules(r.json), func(a schema.Apartment) (string, domain.Locale) {
			return a.ExternalID, domain.Locale{City: a.CityID, Lang: a.Lang}
		})
	case domain.ScopeBlockDetail:
		items, err := r.store.ListRecentBlockDetails(ctx, limit)
		if err != nil {
			return 0, fmt.Errorf("failed to list block details: %w", err)
		}
		evaluate(ctx, w, items, BlockDetailRules(r.json), func(d schema.BlockDetail) (string, domain.Locale) {
			return d.ExternalID, domain.Locale{City: d.CityID, Lang: d.Lang}
		})
	default:
		return 0, fmt.Errorf("%w: %s", domain.ErrUnknownScope, scope)
	}

	logger.InfoCtx(ctx, "Quality checks finished",
		zap.String("scope", string(scope)),
		zap.Int("written", w.written),
		zap.Bool("capped", w.full()))

	return w.written, nil
}

// evaluate runs rules over items; one pass record per clean entity, one record per finding otherwise
func evaluate[T any](ctx context.Context, w *writer, items []T, rules []Rule[T], key func(T) (string, domain.Locale)) {
	for _, item := range items {
		if w.full() {
			return
		}

		id, locale := key(item)
		clean := true
		for _, rule := range rules {
			finding := rule.Check(item)
			if finding == nil {
				continue
			}
			clean = false
			if w.full() {
				return
			}
			w.write(ctx, id, locale, rule.Name, *finding)
		}

		if clean {
			w.write(ctx, id, locale, checkAll, Finding{Status: domain.CheckStatusPass, Message: "all checks passed"})
		}
	}
}

type writer struct {
	runner  *Runner
	scope   domain.Scope
	cap     int
	written int
}

func (w *writer) full() bool {
	return w.written >= w.cap
}

func (w *writer) write(ctx context.Context, entityID string, locale domain.Locale, check string, f Finding) {
	r := w.runner

	input := store.CreateDataQualityCheckInput{
		Scope:     w.scope,
		EntityID:  entityID,
		Locale:    locale,
		CheckName: check,
		Status:    f.Status,
		Message:   r.sanitizer.MessageN(f.Message, r.maxMessage),
	}
	if clean := r.sanitizer.DropSecrets(f.Context); len(clean) > 0 {
		raw, err := r.json.Marshal(clean)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to encode check context", zap.String("check", check), zap.Error(err))
		} else {
			input.Context = raw
		}
	}

	if err := r.store.CreateDataQualityCheck(ctx, input); err != nil {
		logger.WarnCtx(ctx, "Failed to record quality check",
			zap.String("scope", string(w.scope)),
			zap.String("entityID", entityID),
			zap.String("check", check),
			zap.Error(err))
		return
	}
	w.written++
}
