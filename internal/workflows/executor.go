package workflows

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/sdk/temporal"
	"go.uber.org/zap"

	"github.com/realtysync/provider-sync/internal/adapter"
	"github.com/realtysync/provider-sync/internal/alert"
	"github.com/realtysync/provider-sync/internal/domain"
	"github.com/realtysync/provider-sync/internal/logger"
	"github.com/realtysync/provider-sync/internal/store"
	"github.com/realtysync/provider-sync/internal/store/schema"
	"github.com/realtysync/provider-sync/internal/syncer"
)

// Executor defines the activities run by the worker core
//
//go:generate mockgen -source=executor.go -destination=../mocks/executor_core.go -package=mocks -mock_names=Executor=MockExecutor,Syncer=MockSyncer,QualityRunner=MockQualityRunner,AlertChecker=MockAlertChecker
type Executor interface {
	// RunListSync runs one list sync and returns its terminal run
	RunListSync(ctx context.Context, req syncer.ListRequest) (*RunSummary, error)

	// RunDetailSync runs one detail sync and returns its terminal run
	RunDetailSync(ctx context.Context, req syncer.DetailRequest) (*RunSummary, error)

	// ListRecentBlockIDs returns the ids of the most recently updated blocks of a locale
	ListRecentBlockIDs(ctx context.Context, locale domain.Locale, limit int) ([]string, error)

	// RunQualityChecks evaluates one scope and returns the number of records written
	RunQualityChecks(ctx context.Context, scope domain.Scope, limit int, writeCap int) (int, error)

	// CheckAndNotify evaluates alert conditions and notifies
	CheckAndNotify(ctx context.Context) (*alert.CheckReport, error)
}

// Syncer runs list and detail syncs
type Syncer interface {
	SyncList(ctx context.Context, req syncer.ListRequest) (*schema.SyncRun, error)
	SyncDetail(ctx context.Context, req syncer.DetailRequest) (*schema.SyncRun, error)
}

// QualityRunner evaluates the data quality rules of a scope
type QualityRunner interface {
	RunScope(ctx context.Context, scope domain.Scope, limit, writeCap int) (int, error)
}

// AlertChecker evaluates alert conditions
type AlertChecker interface {
	CheckAndNotify(ctx context.Context) (*alert.CheckReport, error)
}

// RunSummary is the serializable outcome of one sync run
type RunSummary struct {
	RunID        string           `json:"run_id"`
	Scope        domain.Scope     `json:"scope"`
	City         string           `json:"city"`
	Lang         string           `json:"lang"`
	EntityID     string           `json:"entity_id,omitempty"`
	Status       domain.RunStatus `json:"status"`
	ItemsFetched int              `json:"items_fetched"`
	ItemsSaved   int              `json:"items_saved"`
	ErrorCode    string           `json:"error_code,omitempty"`
	ErrorMessage string           `json:"error_message,omitempty"`
}

// Failed reports whether the run ended as failed
func (r RunSummary) Failed() bool {
	return r.Status == domain.RunStatusFailed
}

func summarize(run *schema.SyncRun) *RunSummary {
	s := &RunSummary{
		RunID:        run.RunID,
		Scope:        run.Scope,
		City:         run.CityID,
		Lang:         run.Lang,
		Status:       run.Status,
		ItemsFetched: run.ItemsFetched,
		ItemsSaved:   run.ItemsSaved,
	}
	if run.EntityID != nil {
		s.EntityID = *run.EntityID
	}
	if run.ErrorCode != nil {
		s.ErrorCode = *run.ErrorCode
	}
	if run.ErrorMessage != nil {
		s.ErrorMessage = *run.ErrorMessage
	}
	return s
}

// executor is the concrete implementation of Executor
type executor struct {
	syncer           Syncer
	quality          QualityRunner
	checker          AlertChecker
	store            store.Store
	temporalActivity adapter.Activity
}

// NewExecutor creates a new executor instance
func NewExecutor(syncer Syncer, quality QualityRunner, checker AlertChecker, store store.Store, temporalActivity adapter.Activity) Executor {
	return &executor{
		syncer:           syncer,
		quality:          quality,
		checker:          checker,
		store:            store,
		temporalActivity: temporalActivity,
	}
}

// activityError stops Temporal from retrying errors a retry cannot fix
func activityError(err error) error {
	if errors.Is(err, domain.ErrConfiguration) || errors.Is(err, domain.ErrUnknownScope) {
		return temporal.NewNonRetryableApplicationError(err.Error(), domain.ErrorCode(err), err)
	}
	return err
}

// RunListSync runs one list sync and returns its terminal run
func (e *executor) RunListSync(ctx context.Context, req syncer.ListRequest) (*RunSummary, error) {
	attempt := e.temporalActivity.Meta(ctx).Attempt
	logger.InfoCtx(ctx, "Running list sync",
		zap.String("scope", string(req.Scope)),
		zap.String("city", req.Locale.City),
		zap.String("lang", req.Locale.Lang),
		zap.Int32("attempt", attempt))

	run, err := e.syncer.SyncList(ctx, req)
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("list sync could not be recorded: %w", err),
			zap.String("scope", string(req.Scope)))
		return nil, activityError(err)
	}

	return summarize(run), nil
}

// RunDetailSync runs one detail sync and returns its terminal run
func (e *executor) RunDetailSync(ctx context.Context, req syncer.DetailRequest) (*RunSummary, error) {
	run, err := e.syncer.SyncDetail(ctx, req)
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("detail sync could not be recorded: %w", err),
			zap.String("scope", string(req.Scope)),
			zap.String("entityID", req.EntityID))
		return nil, activityError(err)
	}

	return summarize(run), nil
}

// ListRecentBlockIDs returns the ids of the most recently updated blocks of a locale
func (e *executor) ListRecentBlockIDs(ctx context.Context, locale domain.Locale, limit int) ([]string, error) {
	ids, err := e.store.ListRecentBlockIDs(ctx, locale, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent blocks: %w", err)
	}
	return ids, nil
}

// RunQualityChecks evaluates one scope and returns the number of records written
func (e *executor) RunQualityChecks(ctx context.Context, scope domain.Scope, limit int, writeCap int) (int, error) {
	written, err := e.quality.RunScope(ctx, scope, limit, writeCap)
	if err != nil {
		return 0, activityError(err)
	}

	logger.InfoCtx(ctx, "Quality checks written", zap.String("scope", string(scope)), zap.Int("written", written))
	return written, nil
}

// CheckAndNotify evaluates alert conditions and notifies. Conditions whose
// queries failed are logged; the report of the others is still returned.
func (e *executor) CheckAndNotify(ctx context.Context) (*alert.CheckReport, error) {
	report, err := e.checker.CheckAndNotify(ctx)
	if err != nil {
		if report == nil {
			return nil, err
		}
		logger.ErrorCtx(ctx, fmt.Errorf("alert check incomplete: %w", err), zap.String("checkID", report.ID))
	}
	return report, nil
}
