package workflows_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	"github.com/realtysync/provider-sync/internal/adapter"
	"github.com/realtysync/provider-sync/internal/alert"
	"github.com/realtysync/provider-sync/internal/domain"
	"github.com/realtysync/provider-sync/internal/mocks"
	"github.com/realtysync/provider-sync/internal/store/schema"
	"github.com/realtysync/provider-sync/internal/syncer"
	"github.com/realtysync/provider-sync/internal/workflows"
)

type executorMocks struct {
	syncer   *mocks.MockSyncer
	quality  *mocks.MockQualityRunner
	checker  *mocks.MockAlertChecker
	store    *mocks.MockStore
	activity *mocks.MockActivity
}

func setupTestExecutor(t *testing.T) (workflows.Executor, *executorMocks) {
	ctrl := gomock.NewController(t)
	m := &executorMocks{
		syncer:   mocks.NewMockSyncer(ctrl),
		quality:  mocks.NewMockQualityRunner(ctrl),
		checker:  mocks.NewMockAlertChecker(ctrl),
		store:    mocks.NewMockStore(ctrl),
		activity: mocks.NewMockActivity(ctrl),
	}
	m.activity.EXPECT().Meta(gomock.Any()).Return(adapter.ActivityMeta{Attempt: 1}).AnyTimes()

	return workflows.NewExecutor(m.syncer, m.quality, m.checker, m.store, m.activity), m
}

func TestExecutor_RunListSync(t *testing.T) {
	e, m := setupTestExecutor(t)
	ctx := context.Background()
	req := syncer.ListRequest{Scope: domain.ScopeBlocks, Locale: domain.Locale{City: "C1", Lang: "ru"}}

	code := domain.ErrorCodeTransientProvider
	message := "provider request failed"
	m.syncer.EXPECT().SyncList(ctx, req).Return(&schema.SyncRun{
		RunID:        "01HX",
		Scope:        domain.ScopeBlocks,
		CityID:       "C1",
		Lang:         "ru",
		Status:       domain.RunStatusFailed,
		ItemsFetched: 4,
		ItemsSaved:   2,
		ErrorCode:    &code,
		ErrorMessage: &message,
	}, nil)

	summary, err := e.RunListSync(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, &workflows.RunSummary{
		RunID:        "01HX",
		Scope:        domain.ScopeBlocks,
		City:         "C1",
		Lang:         "ru",
		Status:       domain.RunStatusFailed,
		ItemsFetched: 4,
		ItemsSaved:   2,
		ErrorCode:    code,
		ErrorMessage: message,
	}, summary)
	assert.True(t, summary.Failed())
}

func TestExecutor_RunListSync_ConfigurationErrorIsNonRetryable(t *testing.T) {
	e, m := setupTestExecutor(t)
	ctx := context.Background()

	m.syncer.EXPECT().SyncList(ctx, gomock.Any()).
		Return(nil, fmt.Errorf("%w: city is required", domain.ErrConfiguration))

	_, err := e.RunListSync(ctx, syncer.ListRequest{Scope: domain.ScopeBlocks})
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	assert.True(t, appErr.NonRetryable())
	assert.Equal(t, domain.ErrorCodeConfiguration, appErr.Type())
}

func TestExecutor_RunDetailSync_StorageErrorIsRetryable(t *testing.T) {
	e, m := setupTestExecutor(t)
	ctx := context.Background()
	req := syncer.DetailRequest{EntityID: "b1"}

	m.syncer.EXPECT().SyncDetail(ctx, req).Return(nil, errors.New("connection refused"))

	_, err := e.RunDetailSync(ctx, req)
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	assert.False(t, errors.As(err, &appErr))
}

func TestExecutor_RunDetailSync(t *testing.T) {
	e, m := setupTestExecutor(t)
	ctx := context.Background()
	entityID := "b1"
	req := syncer.DetailRequest{EntityID: entityID}

	m.syncer.EXPECT().SyncDetail(ctx, req).Return(&schema.SyncRun{
		RunID:    "01HY",
		Scope:    domain.ScopeBlockDetail,
		EntityID: &entityID,
		Status:   domain.RunStatusSuccess,
	}, nil)

	summary, err := e.RunDetailSync(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "b1", summary.EntityID)
	assert.False(t, summary.Failed())
}

func TestExecutor_ListRecentBlockIDs(t *testing.T) {
	e, m := setupTestExecutor(t)
	ctx := context.Background()
	locale := domain.Locale{City: "C1", Lang: "ru"}

	m.store.EXPECT().ListRecentBlockIDs(ctx, locale, 20).Return([]string{"b1", "b2"}, nil)

	ids, err := e.ListRecentBlockIDs(ctx, locale, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b2"}, ids)

	m.store.EXPECT().ListRecentBlockIDs(ctx, locale, 20).Return(nil, errors.New("db down"))
	_, err = e.ListRecentBlockIDs(ctx, locale, 20)
	assert.Error(t, err)
}

func TestExecutor_RunQualityChecks(t *testing.T) {
	e, m := setupTestExecutor(t)
	ctx := context.Background()

	m.quality.EXPECT().RunScope(ctx, domain.ScopeApartments, 100, 50).Return(12, nil)

	written, err := e.RunQualityChecks(ctx, domain.ScopeApartments, 100, 50)
	require.NoError(t, err)
	assert.Equal(t, 12, written)

	m.quality.EXPECT().RunScope(ctx, domain.Scope("villas"), 100, 50).
		Return(0, fmt.Errorf("%w: villas", domain.ErrUnknownScope))

	_, err = e.RunQualityChecks(ctx, domain.Scope("villas"), 100, 50)
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	assert.True(t, appErr.NonRetryable())
}

func TestExecutor_CheckAndNotify(t *testing.T) {
	e, m := setupTestExecutor(t)
	ctx := context.Background()

	partial := &alert.CheckReport{ID: "c1", Sent: []string{alert.TypeContractDrift}}
	m.checker.EXPECT().CheckAndNotify(ctx).Return(partial, errors.New("sync_failures: db down"))

	report, err := e.CheckAndNotify(ctx)
	require.NoError(t, err, "a partial report is still returned")
	assert.Equal(t, partial, report)

	m.checker.EXPECT().CheckAndNotify(ctx).Return(nil, errors.New("boom"))
	_, err = e.CheckAndNotify(ctx)
	assert.Error(t, err)
}
