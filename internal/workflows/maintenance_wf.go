package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/realtysync/provider-sync/internal/alert"
	"github.com/realtysync/provider-sync/internal/domain"
	"github.com/realtysync/provider-sync/internal/logger"
)

var defaultQualityScopes = []domain.Scope{domain.ScopeBlocks, domain.ScopeApartments, domain.ScopeBlockDetail}

// RunQuality evaluates every scope in turn. The write cap is shared across
// scopes, so a scope is skipped once earlier ones have used it up.
func (w *workerCore) RunQuality(ctx workflow.Context, input QualityInput) (*QualityResult, error) {
	scopes := input.Scopes
	if len(scopes) == 0 {
		scopes = defaultQualityScopes
	}
	limit := input.Limit
	if limit <= 0 {
		limit = w.config.QualityLimit
	}
	remaining := input.Cap
	if remaining <= 0 {
		remaining = w.config.QualityCap
	}

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 2,
		},
	})

	result := &QualityResult{Written: make(map[domain.Scope]int)}
	for _, scope := range scopes {
		if remaining <= 0 {
			logger.WarnWf(ctx, "Quality write cap reached, skipping scope", zap.String("scope", string(scope)))
			continue
		}

		var written int
		if err := workflow.ExecuteActivity(ctx, w.executor.RunQualityChecks, scope, limit, remaining).Get(ctx, &written); err != nil {
			logger.ErrorWf(ctx, fmt.Errorf("quality checks failed: %w", err), zap.String("scope", string(scope)))
			return nil, err
		}

		result.Written[scope] = written
		result.Total += written
		remaining -= written
	}

	logger.InfoWf(ctx, "Quality checks finished", zap.Int("written", result.Total))
	return result, nil
}

// CheckAlerts runs one check-and-notify pass
func (w *workerCore) CheckAlerts(ctx workflow.Context) (*alert.CheckReport, error) {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	})

	var report alert.CheckReport
	if err := workflow.ExecuteActivity(ctx, w.executor.CheckAndNotify).Get(ctx, &report); err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("alert check failed: %w", err))
		return nil, err
	}

	logger.InfoWf(ctx, "Alert check finished",
		zap.String("checkID", report.ID),
		zap.Strings("sent", report.Sent))

	return &report, nil
}
