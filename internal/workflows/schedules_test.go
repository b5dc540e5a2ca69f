package workflows_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	temporalmocks "go.temporal.io/sdk/mocks"
	"go.temporal.io/sdk/temporal"

	"github.com/realtysync/provider-sync/internal/workflows"
)

func TestDefaultSchedules(t *testing.T) {
	schedules := workflows.DefaultSchedules("provider-sync", workflows.ScheduleIntervals{
		List:    15 * time.Minute,
		Detail:  time.Hour,
		Quality: 0,
		Alert:   5 * time.Minute,
	})

	require.Len(t, schedules, 3)
	assert.Equal(t, "provider-sync-sync-list", schedules[0].ID)
	assert.Equal(t, workflows.WorkflowSyncList, schedules[0].Workflow)
	assert.Equal(t, workflows.WorkflowSyncDetails, schedules[1].Workflow)
	assert.Equal(t, workflows.WorkflowCheckAlerts, schedules[2].Workflow)
	assert.Empty(t, schedules[2].Args)
}

func TestEnsureSchedules_Creates(t *testing.T) {
	ctx := context.Background()
	sc := &temporalmocks.ScheduleClient{}

	sc.On("Create", ctx, mock.MatchedBy(func(o client.ScheduleOptions) bool {
		action, ok := o.Action.(*client.ScheduleWorkflowAction)
		return ok &&
			o.ID == "ps-alerts" &&
			o.Overlap == enums.SCHEDULE_OVERLAP_POLICY_SKIP &&
			len(o.Spec.Intervals) == 1 &&
			o.Spec.Intervals[0].Every == 5*time.Minute &&
			action.Workflow == workflows.WorkflowCheckAlerts &&
			action.TaskQueue == "provider-sync"
	})).Return(nil, nil).Once()

	err := workflows.EnsureSchedules(ctx, sc, "provider-sync", workflows.DefaultSchedules("ps", workflows.ScheduleIntervals{
		Alert: 5 * time.Minute,
	}))
	require.NoError(t, err)
	sc.AssertExpectations(t)
}

func TestEnsureSchedules_UpdatesExisting(t *testing.T) {
	ctx := context.Background()
	sc := &temporalmocks.ScheduleClient{}
	handle := &temporalmocks.ScheduleHandle{}

	sc.On("Create", ctx, mock.Anything).Return(nil, temporal.ErrScheduleAlreadyRunning).Once()
	sc.On("GetHandle", ctx, "ps-sync-list").Return(handle).Once()

	var updated *client.ScheduleUpdate
	handle.On("Update", ctx, mock.Anything).Run(func(args mock.Arguments) {
		opts := args.Get(1).(client.ScheduleUpdateOptions)
		var err error
		updated, err = opts.DoUpdate(client.ScheduleUpdateInput{
			Description: client.ScheduleDescription{
				Schedule: client.Schedule{
					Action: &client.ScheduleWorkflowAction{Workflow: "Old"},
					Spec:   &client.ScheduleSpec{Intervals: []client.ScheduleIntervalSpec{{Every: time.Hour}}},
				},
			},
		})
		require.NoError(t, err)
	}).Return(nil).Once()

	err := workflows.EnsureSchedules(ctx, sc, "provider-sync", workflows.DefaultSchedules("ps", workflows.ScheduleIntervals{
		List: 15 * time.Minute,
	}))
	require.NoError(t, err)

	require.NotNil(t, updated)
	require.NotNil(t, updated.Schedule)
	assert.Equal(t, 15*time.Minute, updated.Schedule.Spec.Intervals[0].Every)
	assert.Equal(t, workflows.WorkflowSyncList, updated.Schedule.Action.(*client.ScheduleWorkflowAction).Workflow)
	assert.Equal(t, enums.SCHEDULE_OVERLAP_POLICY_SKIP, updated.Schedule.Policy.Overlap)

	sc.AssertExpectations(t)
	handle.AssertExpectations(t)
}

func TestEnsureSchedules_CreateError(t *testing.T) {
	ctx := context.Background()
	sc := &temporalmocks.ScheduleClient{}
	sc.On("Create", ctx, mock.Anything).Return(nil, errors.New("permission denied")).Once()

	err := workflows.EnsureSchedules(ctx, sc, "provider-sync", workflows.DefaultSchedules("ps", workflows.ScheduleIntervals{
		Quality: time.Minute,
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ps-quality")
}
