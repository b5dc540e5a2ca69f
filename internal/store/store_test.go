package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/realtysync/provider-sync/internal/domain"
)

// =============================================================================
// Test Data Builders
// =============================================================================

var testLocale = domain.Locale{City: "C1", Lang: "ru"}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }

// buildTestBlock creates a test block input
func buildTestBlock(externalID string, price float64) UpsertBlockInput {
	raw := fmt.Sprintf(`{"id":%q,"price":%v}`, externalID, price)
	return UpsertBlockInput{
		EntityRecord: EntityRecord{
			ExternalID:  externalID,
			Locale:      testLocale,
			Raw:         datatypes.JSON(raw),
			Normalized:  datatypes.JSON(raw),
			PayloadHash: fmt.Sprintf("hash-%s-%v", externalID, price),
		},
		Name:     strPtr("Block " + externalID),
		MinPrice: floatPtr(price),
	}
}

// buildTestRun creates a test sync run input
func buildTestRun(runID string, scope domain.Scope, startedAt time.Time) CreateSyncRunInput {
	return CreateSyncRunInput{
		RunID:     runID,
		Provider:  domain.DEFAULT_PROVIDER,
		Scope:     scope,
		Locale:    testLocale,
		StartedAt: startedAt,
	}
}

// =============================================================================
// Test: Sessions
// =============================================================================

func testUpsertActiveSession(t *testing.T, store Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	first, err := store.UpsertActiveSession(ctx, UpsertSessionInput{
		Provider:            "p1",
		HolderID:            "+70000000001",
		EncryptedCredential: "sealed-1",
		Region:              strPtr("77"),
		LoginAt:             now,
	})
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.True(t, first.Active)
	assert.True(t, first.HasCredential())
	assert.Equal(t, "77", *first.Region)

	second, err := store.UpsertActiveSession(ctx, UpsertSessionInput{
		Provider:            "p1",
		HolderID:            "+70000000002",
		EncryptedCredential: "sealed-2",
		LoginAt:             now.Add(time.Minute),
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	active, err := store.GetActiveSession(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)

	// Re-login of the first holder keeps its id and flips activation back
	again, err := store.UpsertActiveSession(ctx, UpsertSessionInput{
		Provider:            "p1",
		HolderID:            "+70000000001",
		EncryptedCredential: "sealed-3",
		LoginAt:             now.Add(2 * time.Minute),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "sealed-3", *again.EncryptedCredential)

	active, err = store.GetActiveSession(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, active.ID)

	// Other providers are untouched
	other, err := store.GetActiveSession(ctx, "p2")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func testDeactivateSession(t *testing.T, store Store) {
	ctx := context.Background()

	session, err := store.UpsertActiveSession(ctx, UpsertSessionInput{
		Provider:            "p1",
		HolderID:            "holder",
		EncryptedCredential: "sealed",
		LoginAt:             time.Now().UTC(),
	})
	require.NoError(t, err)

	issuedAt := time.Now().UTC()
	require.NoError(t, store.TouchSessionTokenIssued(ctx, session.ID, issuedAt))

	active, err := store.GetActiveSession(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, active.LastTokenIssuedAt)
	assert.WithinDuration(t, issuedAt, *active.LastTokenIssuedAt, time.Millisecond)

	require.NoError(t, store.DeactivateSession(ctx, session.ID))

	active, err = store.GetActiveSession(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, active)
}

// =============================================================================
// Test: Sync runs
// =============================================================================

func testSyncRunLifecycle(t *testing.T, store Store) {
	ctx := context.Background()
	startedAt := time.Now().UTC()

	run, err := store.CreateSyncRun(ctx, buildTestRun("01HRUN000000000000000000A1", domain.ScopeBlocks, startedAt))
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusRunning, run.Status)
	assert.Nil(t, run.FinishedAt)

	err = store.FinishSyncRun(ctx, FinishSyncRunInput{
		RunID:        run.RunID,
		Status:       domain.RunStatusSuccess,
		FinishedAt:   startedAt.Add(time.Second),
		ItemsFetched: 3,
		ItemsSaved:   2,
	})
	require.NoError(t, err)

	got, err := store.GetSyncRun(ctx, run.RunID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.RunStatusSuccess, got.Status)
	assert.Equal(t, 3, got.ItemsFetched)
	assert.Equal(t, 2, got.ItemsSaved)
	require.NotNil(t, got.FinishedAt)
	assert.Nil(t, got.ErrorCode)

	// Terminal runs are immutable
	err = store.FinishSyncRun(ctx, FinishSyncRunInput{
		RunID:      run.RunID,
		Status:     domain.RunStatusFailed,
		FinishedAt: startedAt.Add(2 * time.Second),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRunNotRunning))

	got, err = store.GetSyncRun(ctx, run.RunID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusSuccess, got.Status)

	// Non-terminal status is rejected
	err = store.FinishSyncRun(ctx, FinishSyncRunInput{RunID: run.RunID, Status: domain.RunStatusRunning})
	require.Error(t, err)

	missing, err := store.GetSyncRun(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func testFailedRunAggregates(t *testing.T, store Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	finish := func(runID string, status domain.RunStatus, scope domain.Scope, startedAt time.Time) {
		_, err := store.CreateSyncRun(ctx, buildTestRun(runID, scope, startedAt))
		require.NoError(t, err)
		input := FinishSyncRunInput{RunID: runID, Status: status, FinishedAt: startedAt.Add(time.Second)}
		if status == domain.RunStatusFailed {
			input.ErrorMessage = strPtr("boom")
			input.ErrorCode = strPtr(domain.ErrorCodeTransientProvider)
			input.ErrorContext = datatypes.JSON(`{"page":2}`)
		}
		require.NoError(t, store.FinishSyncRun(ctx, input))
	}

	finish("run-1", domain.RunStatusFailed, domain.ScopeBlocks, now.Add(-10*time.Minute))
	finish("run-2", domain.RunStatusFailed, domain.ScopeBlocks, now.Add(-5*time.Minute))
	finish("run-3", domain.RunStatusFailed, domain.ScopeApartments, now.Add(-2*time.Hour))
	finish("run-4", domain.RunStatusSuccess, domain.ScopeApartments, now.Add(-time.Minute))

	counts, err := store.CountFailedRunsByScope(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, map[domain.Scope]int64{domain.ScopeBlocks: 2}, counts)

	last, err := store.GetLastSuccessByScope(ctx)
	require.NoError(t, err)
	require.Contains(t, last, domain.ScopeApartments)
	assert.WithinDuration(t, now.Add(-59*time.Second), last[domain.ScopeApartments], time.Second)
	assert.NotContains(t, last, domain.ScopeBlocks)

	failed, err := store.GetSyncRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ErrorCodeTransientProvider, *failed.ErrorCode)
	assert.JSONEq(t, `{"page":2}`, string(failed.ErrorContext))
}

// =============================================================================
// Test: Entities
// =============================================================================

func testUpsertBlockIdempotent(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.UpsertBlock(ctx, buildTestBlock("x1", 100)))
	require.NoError(t, store.UpsertBlock(ctx, buildTestBlock("x1", 250)))

	block, err := store.GetBlock(ctx, "x1", testLocale)
	require.NoError(t, err)
	require.NotNil(t, block)
	assert.Equal(t, 250.0, *block.MinPrice)
	assert.Equal(t, "hash-x1-250", block.PayloadHash)

	blocks, err := store.ListRecentBlocks(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, blocks, 1)

	// Another language is another row
	other := buildTestBlock("x1", 100)
	other.Locale = domain.Locale{City: "C1", Lang: "en"}
	require.NoError(t, store.UpsertBlock(ctx, other))

	blocks, err = store.ListRecentBlocks(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, blocks, 2)

	ids, err := store.ListRecentBlockIDs(ctx, testLocale, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"x1"}, ids)

	missing, err := store.GetBlock(ctx, "nope", testLocale)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func testUpsertApartment(t *testing.T, store Store) {
	ctx := context.Background()

	input := UpsertApartmentInput{
		EntityRecord: EntityRecord{
			ExternalID:  "a1",
			Locale:      testLocale,
			Raw:         datatypes.JSON(`{"id":"a1"}`),
			Normalized:  datatypes.JSON(`{"id":"a1"}`),
			PayloadHash: "h1",
		},
		BlockExternalID: strPtr("x1"),
		Rooms:           intPtr(2),
		Price:           floatPtr(5000000),
	}
	require.NoError(t, store.UpsertApartment(ctx, input))

	input.Price = floatPtr(4900000)
	input.PayloadHash = "h2"
	require.NoError(t, store.UpsertApartment(ctx, input))

	apartment, err := store.GetApartment(ctx, "a1", testLocale)
	require.NoError(t, err)
	require.NotNil(t, apartment)
	assert.Equal(t, 4900000.0, *apartment.Price)
	assert.Equal(t, 2, *apartment.Rooms)
	assert.Equal(t, "x1", *apartment.BlockExternalID)

	apartments, err := store.ListRecentApartments(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, apartments, 1)
}

func testUpsertBlockDetail(t *testing.T, store Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.UpsertBlockDetail(ctx, UpsertBlockDetailInput{
		ExternalID:  "x1",
		Locale:      testLocale,
		Unified:     datatypes.JSON(`{"name":"old"}`),
		Advantages:  datatypes.JSON(`["park"]`),
		Prices:      datatypes.JSON(`{"min":1}`),
		PayloadHash: "h1",
		FetchedAt:   now,
	}))

	// Optional section failed on the second run
	require.NoError(t, store.UpsertBlockDetail(ctx, UpsertBlockDetailInput{
		ExternalID:  "x1",
		Locale:      testLocale,
		Unified:     datatypes.JSON(`{"name":"new"}`),
		Prices:      datatypes.JSON(`{"min":2}`),
		PayloadHash: "h2",
		FetchedAt:   now.Add(time.Minute),
	}))

	detail, err := store.GetBlockDetail(ctx, "x1", testLocale)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.JSONEq(t, `{"name":"new"}`, string(detail.Unified))
	assert.Empty(t, detail.Advantages)
	assert.JSONEq(t, `{"min":2}`, string(detail.Prices))

	details, err := store.ListRecentBlockDetails(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, details, 1)
}

// =============================================================================
// Test: Payload cache and contract drift
// =============================================================================

func testObserveContract(t *testing.T, store Store) {
	ctx := context.Background()
	now := time.Now().UTC()
	endpoint := "/blocks"

	cached, err := store.CreatePayloadCache(ctx, CreatePayloadCacheInput{
		Provider:    domain.DEFAULT_PROVIDER,
		Scope:       domain.ScopeBlocks,
		ExternalID:  strPtr("x1"),
		Endpoint:    endpoint,
		HTTPStatus:  200,
		Locale:      testLocale,
		Payload:     datatypes.JSON(`{"id":"x1"}`),
		PayloadHash: "p1",
		FetchedAt:   now,
	})
	require.NoError(t, err)
	require.NotZero(t, cached.ID)

	sequence := []string{"H1", "H1", "H2", "H2", "H3"}
	var changes int
	for i, hash := range sequence {
		change, err := store.ObserveContract(ctx, ObserveContractInput{
			Endpoint:       endpoint,
			Locale:         testLocale,
			Hash:           hash,
			TopKeys:        []string{"id", hash},
			DataKeys:       nil,
			PayloadCacheID: &cached.ID,
			ObservedAt:     now.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
		if change != nil {
			changes++
		}
	}
	assert.Equal(t, 2, changes)

	recorded, err := store.ListContractChanges(ctx, endpoint, testLocale)
	require.NoError(t, err)
	require.Len(t, recorded, 2)
	assert.Equal(t, "H1", recorded[0].OldHash)
	assert.Equal(t, "H2", recorded[0].NewHash)
	assert.Equal(t, []string{"id", "H1"}, []string(recorded[0].OldTopKeys))
	assert.Equal(t, []string{"id", "H2"}, []string(recorded[0].NewTopKeys))
	assert.Equal(t, cached.ID, *recorded[0].PayloadCacheID)
	assert.Equal(t, "H2", recorded[1].OldHash)
	assert.Equal(t, "H3", recorded[1].NewHash)

	state, err := store.GetContractState(ctx, endpoint, testLocale)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "H3", state.Hash)

	// Other locales have independent state
	otherLocale := domain.Locale{City: "C2", Lang: "ru"}
	change, err := store.ObserveContract(ctx, ObserveContractInput{Endpoint: endpoint, Locale: otherLocale, Hash: "H9", ObservedAt: now})
	require.NoError(t, err)
	assert.Nil(t, change)

	counts, err := store.CountContractChangesByEndpoint(ctx, now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{endpoint: 2}, counts)
}

// =============================================================================
// Test: Data quality
// =============================================================================

func testDataQualityChecks(t *testing.T, store Store) {
	ctx := context.Background()

	for _, status := range []domain.CheckStatus{domain.CheckStatusFail, domain.CheckStatusFail, domain.CheckStatusWarn, domain.CheckStatusPass} {
		require.NoError(t, store.CreateDataQualityCheck(ctx, CreateDataQualityCheckInput{
			Scope:     domain.ScopeApartments,
			EntityID:  "a1",
			Locale:    testLocale,
			CheckName: "price_non_negative",
			Status:    status,
			Message:   "price must be >= 0",
			Context:   datatypes.JSON(`{"price":-1}`),
		}))
	}

	counts, err := store.CountQualityFailuresByScope(ctx, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, map[domain.Scope]int64{domain.ScopeApartments: 2}, counts)
}

// =============================================================================
// Test: Key-value store
// =============================================================================

func testKeyValue(t *testing.T, store Store) {
	ctx := context.Background()

	kv, err := store.GetKeyValue(ctx, "alert:dedupe:failed_runs")
	require.NoError(t, err)
	assert.Nil(t, kv)

	expiresAt := time.Now().UTC().Add(time.Hour)
	require.NoError(t, store.SetKeyValue(ctx, "alert:dedupe:failed_runs", "f1", &expiresAt))
	require.NoError(t, store.SetKeyValue(ctx, "alert:dedupe:failed_runs", "f2", &expiresAt))

	kv, err = store.GetKeyValue(ctx, "alert:dedupe:failed_runs")
	require.NoError(t, err)
	require.NotNil(t, kv)
	assert.Equal(t, "f2", kv.Value)
	require.NotNil(t, kv.ExpiresAt)
	assert.False(t, kv.Expired(time.Now()))
	assert.True(t, kv.Expired(expiresAt.Add(time.Second)))

	require.NoError(t, store.DeleteKeyValue(ctx, "alert:dedupe:failed_runs"))
	kv, err = store.GetKeyValue(ctx, "alert:dedupe:failed_runs")
	require.NoError(t, err)
	assert.Nil(t, kv)
}

// RunStoreTests runs every store test against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"UpsertActiveSession", testUpsertActiveSession},
		{"DeactivateSession", testDeactivateSession},
		{"SyncRunLifecycle", testSyncRunLifecycle},
		{"FailedRunAggregates", testFailedRunAggregates},
		{"UpsertBlockIdempotent", testUpsertBlockIdempotent},
		{"UpsertApartment", testUpsertApartment},
		{"UpsertBlockDetail", testUpsertBlockDetail},
		{"ObserveContract", testObserveContract},
		{"DataQualityChecks", testDataQualityChecks},
		{"KeyValue", testKeyValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
