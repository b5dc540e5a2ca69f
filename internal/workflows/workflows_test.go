package workflows_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/testsuite"

	"github.com/realtysync/provider-sync/internal/alert"
	"github.com/realtysync/provider-sync/internal/domain"
	"github.com/realtysync/provider-sync/internal/logger"
	"github.com/realtysync/provider-sync/internal/mocks"
	"github.com/realtysync/provider-sync/internal/syncer"
	"github.com/realtysync/provider-sync/internal/workflows"
)

var (
	localeRU = domain.Locale{City: "C1", Lang: "ru"}
	localeEN = domain.Locale{City: "C1", Lang: "en"}
)

// WorkflowTestSuite is the test suite for the pipeline workflows
type WorkflowTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite

	env        *testsuite.TestWorkflowEnvironment
	ctrl       *gomock.Controller
	executor   *mocks.MockExecutor
	workerCore workflows.WorkerCore
}

// SetupTest is called before each test
func (s *WorkflowTestSuite) SetupTest() {
	_ = logger.Initialize(logger.Config{
		Debug: true,
	})

	s.env = s.NewTestWorkflowEnvironment()
	s.ctrl = gomock.NewController(s.T())
	s.executor = mocks.NewMockExecutor(s.ctrl)
	s.workerCore = workflows.NewWorkerCore(s.executor, workflows.WorkerCoreConfig{
		Locales:           []domain.Locale{localeRU},
		ListTimeout:       time.Minute,
		DetailTimeout:     time.Minute,
		DetailLimit:       10,
		DetailConcurrency: 2,
		QualityLimit:      100,
		QualityCap:        50,
		StoreRaw:          true,
	})
}

// TearDownTest is called after each test
func (s *WorkflowTestSuite) TearDownTest() {
	s.env.AssertExpectations(s.T())
	s.ctrl.Finish()
}

// TestWorkflowTestSuite runs the test suite
func TestWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowTestSuite))
}

func success(scope domain.Scope, locale domain.Locale, saved int) *workflows.RunSummary {
	return &workflows.RunSummary{
		RunID:        "run-" + string(scope),
		Scope:        scope,
		City:         locale.City,
		Lang:         locale.Lang,
		Status:       domain.RunStatusSuccess,
		ItemsFetched: saved,
		ItemsSaved:   saved,
	}
}

func failure(scope domain.Scope, code string) *workflows.RunSummary {
	return &workflows.RunSummary{
		RunID:     "run-" + string(scope),
		Scope:     scope,
		Status:    domain.RunStatusFailed,
		ErrorCode: code,
	}
}

// ====================================================================================
// SyncList
// ====================================================================================

func (s *WorkflowTestSuite) TestSyncList_DefaultScopesAndLocales() {
	s.env.OnActivity(s.executor.RunListSync, mock.Anything,
		syncer.ListRequest{Scope: domain.ScopeBlocks, Locale: localeRU, StoreRaw: true}).
		Return(success(domain.ScopeBlocks, localeRU, 3), nil).Once()
	s.env.OnActivity(s.executor.RunListSync, mock.Anything,
		syncer.ListRequest{Scope: domain.ScopeApartments, Locale: localeRU, StoreRaw: true}).
		Return(success(domain.ScopeApartments, localeRU, 7), nil).Once()

	s.env.ExecuteWorkflow(s.workerCore.SyncList, workflows.SyncListInput{})

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result workflows.SyncListResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.Equal(0, result.Failed)
	s.Len(result.Runs, 2)
	s.Equal(7, result.Runs[1].ItemsSaved)
}

func (s *WorkflowTestSuite) TestSyncList_FailedRunDoesNotStopOthers() {
	storeRaw := false
	s.env.OnActivity(s.executor.RunListSync, mock.Anything,
		syncer.ListRequest{Scope: domain.ScopeBlocks, Locale: localeRU}).
		Return(failure(domain.ScopeBlocks, domain.ErrorCodeTransientProvider), nil).Once()
	s.env.OnActivity(s.executor.RunListSync, mock.Anything,
		syncer.ListRequest{Scope: domain.ScopeBlocks, Locale: localeEN}).
		Return(nil, errors.New("database unavailable")).Once()

	s.env.ExecuteWorkflow(s.workerCore.SyncList, workflows.SyncListInput{
		Scopes:   []domain.Scope{domain.ScopeBlocks},
		Locales:  []domain.Locale{localeRU, localeEN},
		StoreRaw: &storeRaw,
	})

	s.True(s.env.IsWorkflowCompleted())
	s.Error(s.env.GetWorkflowError(), "every run failed")
}

func (s *WorkflowTestSuite) TestSyncList_PartialFailure() {
	s.env.OnActivity(s.executor.RunListSync, mock.Anything,
		syncer.ListRequest{Scope: domain.ScopeBlocks, Locale: localeRU, StoreRaw: true}).
		Return(failure(domain.ScopeBlocks, domain.ErrorCodeShapeDetection), nil).Once()
	s.env.OnActivity(s.executor.RunListSync, mock.Anything,
		syncer.ListRequest{Scope: domain.ScopeApartments, Locale: localeRU, StoreRaw: true}).
		Return(success(domain.ScopeApartments, localeRU, 1), nil).Once()

	s.env.ExecuteWorkflow(s.workerCore.SyncList, workflows.SyncListInput{})

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result workflows.SyncListResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.Equal(1, result.Failed)
	s.Len(result.Runs, 2)
}

func (s *WorkflowTestSuite) TestSyncList_ActivityIsNotRetried() {
	var calls int
	s.env.OnActivity(s.executor.RunListSync, mock.Anything, mock.Anything).Return(
		func(ctx context.Context, req syncer.ListRequest) (*workflows.RunSummary, error) {
			calls++
			return nil, errors.New("boom")
		},
	)

	s.env.ExecuteWorkflow(s.workerCore.SyncList, workflows.SyncListInput{Scopes: []domain.Scope{domain.ScopeBlocks}})

	s.True(s.env.IsWorkflowCompleted())
	s.Error(s.env.GetWorkflowError())
	s.Equal(1, calls)
}

// ====================================================================================
// SyncDetails
// ====================================================================================

func (s *WorkflowTestSuite) TestSyncDetails_FansOutPerEntity() {
	s.env.OnActivity(s.executor.ListRecentBlockIDs, mock.Anything, localeRU, 10).
		Return([]string{"b1", "b2", "b3"}, nil).Once()

	for _, id := range []string{"b1", "b2"} {
		s.env.OnActivity(s.executor.RunDetailSync, mock.Anything, syncer.DetailRequest{
			Scope: domain.ScopeBlockDetail, EntityID: id, Locale: localeRU, StoreRaw: true,
		}).Return(success(domain.ScopeBlockDetail, localeRU, 1), nil).Once()
	}
	s.env.OnActivity(s.executor.RunDetailSync, mock.Anything, syncer.DetailRequest{
		Scope: domain.ScopeBlockDetail, EntityID: "b3", Locale: localeRU, StoreRaw: true,
	}).Return(failure(domain.ScopeBlockDetail, domain.ErrorCodeRequiredEndpoint), nil).Once()

	s.env.ExecuteWorkflow(s.workerCore.SyncDetails, workflows.SyncDetailsInput{})

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result workflows.SyncDetailsResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.Equal(workflows.SyncDetailsResult{Entities: 3, Succeeded: 2, Failed: 1}, result)
}

func (s *WorkflowTestSuite) TestSyncDetails_ActivityErrorCountsAsFailed() {
	s.env.OnActivity(s.executor.ListRecentBlockIDs, mock.Anything, localeEN, 5).
		Return([]string{"b1", "b2"}, nil).Once()
	s.env.OnActivity(s.executor.RunDetailSync, mock.Anything, mock.Anything).
		Return(nil, errors.New("detail failed")).Times(2)

	s.env.ExecuteWorkflow(s.workerCore.SyncDetails, workflows.SyncDetailsInput{
		Locales:     []domain.Locale{localeEN},
		Limit:       5,
		Concurrency: 1,
	})

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result workflows.SyncDetailsResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.Equal(workflows.SyncDetailsResult{Entities: 2, Failed: 2}, result)
}

func (s *WorkflowTestSuite) TestSyncDetails_ListFailureFailsWorkflow() {
	s.env.OnActivity(s.executor.ListRecentBlockIDs, mock.Anything, localeRU, 10).
		Return(nil, errors.New("db down"))

	s.env.ExecuteWorkflow(s.workerCore.SyncDetails, workflows.SyncDetailsInput{})

	s.True(s.env.IsWorkflowCompleted())
	s.Error(s.env.GetWorkflowError())
}

func (s *WorkflowTestSuite) TestSyncDetails_NoEntities() {
	s.env.OnActivity(s.executor.ListRecentBlockIDs, mock.Anything, localeRU, 10).
		Return([]string{}, nil).Once()

	s.env.ExecuteWorkflow(s.workerCore.SyncDetails, workflows.SyncDetailsInput{})

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result workflows.SyncDetailsResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.Equal(0, result.Entities)
}

// ====================================================================================
// RunQuality
// ====================================================================================

func (s *WorkflowTestSuite) TestRunQuality_SharesWriteCap() {
	s.env.OnActivity(s.executor.RunQualityChecks, mock.Anything, domain.ScopeBlocks, 100, 50).
		Return(30, nil).Once()
	s.env.OnActivity(s.executor.RunQualityChecks, mock.Anything, domain.ScopeApartments, 100, 20).
		Return(20, nil).Once()

	s.env.ExecuteWorkflow(s.workerCore.RunQuality, workflows.QualityInput{})

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result workflows.QualityResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.Equal(50, result.Total)
	s.Equal(map[domain.Scope]int{domain.ScopeBlocks: 30, domain.ScopeApartments: 20}, result.Written)
}

func (s *WorkflowTestSuite) TestRunQuality_ActivityError() {
	s.env.OnActivity(s.executor.RunQualityChecks, mock.Anything, domain.ScopeApartments, 10, 5).
		Return(0, errors.New("db down"))

	s.env.ExecuteWorkflow(s.workerCore.RunQuality, workflows.QualityInput{
		Scopes: []domain.Scope{domain.ScopeApartments},
		Limit:  10,
		Cap:    5,
	})

	s.True(s.env.IsWorkflowCompleted())
	s.Error(s.env.GetWorkflowError())
}

// ====================================================================================
// CheckAlerts
// ====================================================================================

func (s *WorkflowTestSuite) TestCheckAlerts() {
	s.env.OnActivity(s.executor.CheckAndNotify, mock.Anything).Return(&alert.CheckReport{
		ID:      "01J0000000000000000000000",
		Flushed: true,
		Raised:  []string{alert.TypeSyncFailures},
		Sent:    []string{alert.TypeSyncFailures},
	}, nil).Once()

	s.env.ExecuteWorkflow(s.workerCore.CheckAlerts)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var report alert.CheckReport
	s.NoError(s.env.GetWorkflowResult(&report))
	s.True(report.Flushed)
	s.Equal([]string{alert.TypeSyncFailures}, report.Sent)
}

func (s *WorkflowTestSuite) TestCheckAlerts_ActivityError() {
	s.env.OnActivity(s.executor.CheckAndNotify, mock.Anything).Return(nil, errors.New("cache down"))

	s.env.ExecuteWorkflow(s.workerCore.CheckAlerts)

	s.True(s.env.IsWorkflowCompleted())
	s.Error(s.env.GetWorkflowError())
}
