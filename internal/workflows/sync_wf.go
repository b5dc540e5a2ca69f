package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/realtysync/provider-sync/internal/domain"
	"github.com/realtysync/provider-sync/internal/logger"
	"github.com/realtysync/provider-sync/internal/syncer"
)

var defaultListScopes = []domain.Scope{domain.ScopeBlocks, domain.ScopeApartments}

// SyncList runs one list sync per (scope, locale). Runs are sequential and
// independent: a failed run is counted and the next one still starts.
func (w *workerCore) SyncList(ctx workflow.Context, input SyncListInput) (*SyncListResult, error) {
	scopes := input.Scopes
	if len(scopes) == 0 {
		scopes = defaultListScopes
	}
	locales := w.locales(input.Locales)
	storeRaw := w.storeRaw(input.StoreRaw)

	logger.InfoWf(ctx, "Starting list sync",
		zap.Int("scopes", len(scopes)),
		zap.Int("locales", len(locales)))

	// Provider failures end the run as failed; the schedule's next tick is the retry
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: w.config.ListTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	})

	result := &SyncListResult{Runs: []RunSummary{}}
	for _, locale := range locales {
		for _, scope := range scopes {
			req := syncer.ListRequest{Scope: scope, Locale: locale, StoreRaw: storeRaw}

			var summary RunSummary
			err := workflow.ExecuteActivity(ctx, w.executor.RunListSync, req).Get(ctx, &summary)
			if err != nil {
				logger.ErrorWf(ctx, fmt.Errorf("list sync activity failed: %w", err),
					zap.String("scope", string(scope)),
					zap.String("city", locale.City),
					zap.String("lang", locale.Lang))
				result.Failed++
				continue
			}

			if summary.Failed() {
				logger.WarnWf(ctx, "List sync run failed",
					zap.String("runID", summary.RunID),
					zap.String("scope", string(scope)),
					zap.String("errorCode", summary.ErrorCode))
				result.Failed++
			}
			result.Runs = append(result.Runs, summary)
		}
	}

	total := len(scopes) * len(locales)
	if result.Failed == total {
		return nil, fmt.Errorf("all %d list sync runs failed", total)
	}

	logger.InfoWf(ctx, "List sync finished",
		zap.Int("runs", total),
		zap.Int("failed", result.Failed))

	return result, nil
}

// SyncDetails picks the most recently updated blocks of every locale and runs
// one detail sync per block with at most Concurrency activities in flight.
func (w *workerCore) SyncDetails(ctx workflow.Context, input SyncDetailsInput) (*SyncDetailsResult, error) {
	scope := input.Scope
	if scope == "" {
		scope = domain.ScopeBlockDetail
	}
	limit := input.Limit
	if limit <= 0 {
		limit = w.config.DetailLimit
	}
	concurrency := input.Concurrency
	if concurrency <= 0 {
		concurrency = w.config.DetailConcurrency
	}
	storeRaw := w.storeRaw(input.StoreRaw)

	listCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: time.Second,
			MaximumAttempts: 3,
		},
	})
	detailCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: w.config.DetailTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	})

	result := &SyncDetailsResult{}
	for _, locale := range w.locales(input.Locales) {
		var ids []string
		if err := workflow.ExecuteActivity(listCtx, w.executor.ListRecentBlockIDs, locale, limit).Get(ctx, &ids); err != nil {
			logger.ErrorWf(ctx, fmt.Errorf("failed to list recent blocks: %w", err),
				zap.String("city", locale.City),
				zap.String("lang", locale.Lang))
			return nil, err
		}

		logger.InfoWf(ctx, "Starting detail syncs",
			zap.String("city", locale.City),
			zap.String("lang", locale.Lang),
			zap.Int("entities", len(ids)))

		selector := workflow.NewSelector(ctx)
		pending := 0
		for _, id := range ids {
			if pending >= concurrency {
				selector.Select(ctx)
				pending--
			}

			req := syncer.DetailRequest{Scope: scope, EntityID: id, Locale: locale, StoreRaw: storeRaw}
			future := workflow.ExecuteActivity(detailCtx, w.executor.RunDetailSync, req)
			selector.AddFuture(future, func(f workflow.Future) {
				var summary RunSummary
				if err := f.Get(ctx, &summary); err != nil {
					logger.WarnWf(ctx, "Detail sync activity failed",
						zap.String("entityID", id),
						zap.Error(err))
					result.Failed++
					return
				}
				if summary.Failed() {
					result.Failed++
					return
				}
				result.Succeeded++
			})
			pending++
			result.Entities++
		}

		for ; pending > 0; pending-- {
			selector.Select(ctx)
		}
	}

	logger.InfoWf(ctx, "Detail syncs finished",
		zap.Int("entities", result.Entities),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed))

	return result, nil
}
