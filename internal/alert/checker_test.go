package alert_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realtysync/provider-sync/internal/alert"
	"github.com/realtysync/provider-sync/internal/cache"
	"github.com/realtysync/provider-sync/internal/domain"
	"github.com/realtysync/provider-sync/internal/mocks"
)

type testChecker struct {
	checker  *alert.Checker
	store    *mocks.MockStore
	notifier *mocks.MockNotifier
	cache    cache.Cache
	time     *fakeTime
}

func setupTestChecker(t *testing.T, quiet string, start time.Time) *testChecker {
	ctrl := gomock.NewController(t)
	ft := &fakeTime{now: start}

	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().DoAndReturn(func() time.Time { return ft.now }).AnyTimes()

	c := cache.NewMemory(clock)
	notifier := mocks.NewMockNotifier(ctrl)
	notifier.EXPECT().Configured().Return(true).AnyTimes()

	d, err := alert.NewDispatcher(alert.Config{QuietHours: quiet}, notifier, c, clock, nil)
	require.NoError(t, err)

	st := mocks.NewMockStore(ctrl)
	checker := alert.NewChecker(alert.CheckerConfig{
		Window:     time.Hour,
		StaleAfter: 6 * time.Hour,
		Scopes:     []domain.Scope{domain.ScopeBlocks, domain.ScopeApartments},
	}, st, d, clock)

	return &testChecker{checker: checker, store: st, notifier: notifier, cache: c, time: ft}
}

// expectState stubs every aggregate for one check
func (tc *testChecker) expectState(failed, quality map[domain.Scope]int64, drift map[string]int64, last map[domain.Scope]time.Time) {
	since := tc.time.now.Add(-time.Hour)
	tc.store.EXPECT().CountFailedRunsByScope(gomock.Any(), since).Return(failed, nil)
	tc.store.EXPECT().CountQualityFailuresByScope(gomock.Any(), since).Return(quality, nil)
	tc.store.EXPECT().CountContractChangesByEndpoint(gomock.Any(), since).Return(drift, nil)
	tc.store.EXPECT().GetLastSuccessByScope(gomock.Any()).Return(last, nil)
}

func (tc *testChecker) healthy() map[domain.Scope]time.Time {
	return map[domain.Scope]time.Time{
		domain.ScopeBlocks:     tc.time.now.Add(-time.Hour),
		domain.ScopeApartments: tc.time.now.Add(-time.Hour),
	}
}

func TestChecker_AllClear(t *testing.T) {
	tc := setupTestChecker(t, "", noon)
	tc.expectState(nil, map[domain.Scope]int64{domain.ScopeBlocks: 0}, nil, tc.healthy())

	report, err := tc.checker.CheckAndNotify(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, report.ID)
	assert.False(t, report.Flushed)
	assert.Empty(t, report.Raised)
	assert.Empty(t, report.Sent)
}

func TestChecker_RaisesAndDeduplicates(t *testing.T) {
	ctx := context.Background()
	tc := setupTestChecker(t, "", noon)

	failed := map[domain.Scope]int64{domain.ScopeBlocks: 2, domain.ScopeApartments: 1}
	drift := map[string]int64{"/blocks": 1}

	var sent []string
	tc.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, text string) error {
		sent = append(sent, text)
		return nil
	}).Times(2)

	tc.expectState(failed, nil, drift, tc.healthy())
	report, err := tc.checker.CheckAndNotify(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{alert.TypeSyncFailures, alert.TypeContractDrift}, report.Raised)
	assert.Equal(t, []string{alert.TypeSyncFailures, alert.TypeContractDrift}, report.Sent)
	require.Len(t, sent, 2)
	assert.Equal(t, "Sync runs failed in the last 1h0m0s: apartments=1, blocks=2", sent[0])
	assert.Equal(t, "Provider contract changed in the last 1h0m0s: /blocks=1", sent[1])

	// Same inputs five minutes later send nothing
	tc.time.advance(5 * time.Minute)
	tc.expectState(failed, nil, drift, tc.healthy())
	report, err = tc.checker.CheckAndNotify(ctx)
	require.NoError(t, err)
	assert.Empty(t, report.Sent)
	assert.Equal(t, []string{alert.TypeSyncFailures, alert.TypeContractDrift}, report.Suppressed)
}

func TestChecker_ChangedCountsResend(t *testing.T) {
	ctx := context.Background()
	tc := setupTestChecker(t, "", noon)
	tc.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	tc.expectState(map[domain.Scope]int64{domain.ScopeBlocks: 1}, nil, nil, tc.healthy())
	_, err := tc.checker.CheckAndNotify(ctx)
	require.NoError(t, err)

	tc.expectState(map[domain.Scope]int64{domain.ScopeBlocks: 2}, nil, nil, tc.healthy())
	report, err := tc.checker.CheckAndNotify(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{alert.TypeSyncFailures}, report.Sent)
}

func TestChecker_StaleScopes(t *testing.T) {
	tc := setupTestChecker(t, "", noon)

	var text string
	tc.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s string) error {
		text = s
		return nil
	})

	tc.expectState(nil, nil, nil, map[domain.Scope]time.Time{
		domain.ScopeBlocks: noon.Add(-7 * time.Hour),
	})

	report, err := tc.checker.CheckAndNotify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{alert.TypeStaleScopes}, report.Sent)
	assert.True(t, strings.HasPrefix(text, "No successful sync within 6h0m0s: apartments, blocks"))
	assert.Contains(t, text, "\napartments: never")
	assert.Contains(t, text, "\nblocks: 2025-03-01T05:00:00Z")
}

func TestChecker_QualityFailures(t *testing.T) {
	tc := setupTestChecker(t, "", noon)
	tc.notifier.EXPECT().
		Notify(gomock.Any(), "Data quality checks failed in the last 1h0m0s: block_detail=4").
		Return(nil)

	tc.expectState(nil, map[domain.Scope]int64{domain.ScopeBlockDetail: 4}, nil, tc.healthy())

	report, err := tc.checker.CheckAndNotify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{alert.TypeQualityFailures}, report.Sent)
}

func TestChecker_QueryErrorSkipsCondition(t *testing.T) {
	tc := setupTestChecker(t, "", noon)
	since := noon.Add(-time.Hour)

	tc.store.EXPECT().CountFailedRunsByScope(gomock.Any(), since).Return(nil, errors.New("db down"))
	tc.store.EXPECT().CountQualityFailuresByScope(gomock.Any(), since).Return(nil, nil)
	tc.store.EXPECT().CountContractChangesByEndpoint(gomock.Any(), since).Return(map[string]int64{"/apartments": 3}, nil)
	tc.store.EXPECT().GetLastSuccessByScope(gomock.Any()).Return(tc.healthy(), nil)
	tc.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil)

	report, err := tc.checker.CheckAndNotify(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	assert.Equal(t, []string{alert.TypeContractDrift}, report.Sent)
}

func TestChecker_FlushesRollupBeforeLiveConditions(t *testing.T) {
	ctx := context.Background()
	night := time.Date(2025, 3, 1, 3, 0, 0, 0, time.UTC)
	tc := setupTestChecker(t, "23:00-08:00", night)

	var failed map[domain.Scope]int64

	// Three checks during quiet hours with changing inputs are all held back
	for i := int64(1); i <= 3; i++ {
		failed = map[domain.Scope]int64{domain.ScopeBlocks: i}
		tc.expectState(failed, nil, nil, tc.healthy())
		report, err := tc.checker.CheckAndNotify(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{alert.TypeSyncFailures}, report.Suppressed)
		tc.time.advance(5 * time.Minute)
	}

	tc.time.now = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	gomock.InOrder(
		tc.notifier.EXPECT().
			Notify(gomock.Any(), "Quiet hours ended: suppressed 3 alerts; top reasons: sync_failures (3)").
			Return(nil),
		tc.notifier.EXPECT().
			Notify(gomock.Any(), "Sync runs failed in the last 1h0m0s: blocks=3").
			Return(nil),
	)

	tc.expectState(failed, nil, nil, tc.healthy())
	report, err := tc.checker.CheckAndNotify(ctx)
	require.NoError(t, err)
	assert.True(t, report.Flushed)
	assert.Equal(t, []string{alert.TypeSyncFailures}, report.Sent)
}
