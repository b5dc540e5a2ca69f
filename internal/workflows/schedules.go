package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.uber.org/zap"

	"github.com/realtysync/provider-sync/internal/logger"
)

// Workflow type names as registered on the worker
const (
	WorkflowSyncList    = "SyncList"
	WorkflowSyncDetails = "SyncDetails"
	WorkflowRunQuality  = "RunQuality"
	WorkflowCheckAlerts = "CheckAlerts"
)

// Schedule describes one recurring workflow
type Schedule struct {
	ID       string
	Every    time.Duration
	Workflow string
	Args     []interface{}
	// Timeout bounds one workflow execution
	Timeout time.Duration
}

// ScheduleIntervals holds the interval of every recurring job; a zero interval disables the job
type ScheduleIntervals struct {
	List    time.Duration
	Detail  time.Duration
	Quality time.Duration
	Alert   time.Duration
}

// DefaultSchedules returns the pipeline schedules for the given intervals
func DefaultSchedules(prefix string, intervals ScheduleIntervals) []Schedule {
	candidates := []Schedule{
		{ID: prefix + "-sync-list", Every: intervals.List, Workflow: WorkflowSyncList, Args: []interface{}{SyncListInput{}}, Timeout: time.Hour},
		{ID: prefix + "-sync-details", Every: intervals.Detail, Workflow: WorkflowSyncDetails, Args: []interface{}{SyncDetailsInput{}}, Timeout: 2 * time.Hour},
		{ID: prefix + "-quality", Every: intervals.Quality, Workflow: WorkflowRunQuality, Args: []interface{}{QualityInput{}}, Timeout: 30 * time.Minute},
		{ID: prefix + "-alerts", Every: intervals.Alert, Workflow: WorkflowCheckAlerts, Timeout: 5 * time.Minute},
	}

	var schedules []Schedule
	for _, s := range candidates {
		if s.Every > 0 {
			schedules = append(schedules, s)
		}
	}
	return schedules
}

// EnsureSchedules creates each schedule, or updates its interval and action when
// it already exists. Overlapping runs of the same schedule are skipped.
func EnsureSchedules(ctx context.Context, sc client.ScheduleClient, taskQueue string, schedules []Schedule) error {
	for _, s := range schedules {
		spec := client.ScheduleSpec{
			Intervals: []client.ScheduleIntervalSpec{{Every: s.Every}},
		}
		action := &client.ScheduleWorkflowAction{
			ID:                       s.ID + "-run",
			Workflow:                 s.Workflow,
			Args:                     s.Args,
			TaskQueue:                taskQueue,
			WorkflowExecutionTimeout: s.Timeout,
		}

		_, err := sc.Create(ctx, client.ScheduleOptions{
			ID:      s.ID,
			Spec:    spec,
			Action:  action,
			Overlap: enums.SCHEDULE_OVERLAP_POLICY_SKIP,
		})
		if err == nil {
			logger.InfoCtx(ctx, "Created schedule", zap.String("scheduleID", s.ID), zap.Duration("every", s.Every))
			continue
		}
		if !errors.Is(err, temporal.ErrScheduleAlreadyRunning) {
			return fmt.Errorf("failed to create schedule %s: %w", s.ID, err)
		}

		handle := sc.GetHandle(ctx, s.ID)
		err = handle.Update(ctx, client.ScheduleUpdateOptions{
			DoUpdate: func(input client.ScheduleUpdateInput) (*client.ScheduleUpdate, error) {
				schedule := input.Description.Schedule
				schedule.Spec = &spec
				schedule.Action = action
				if schedule.Policy == nil {
					schedule.Policy = &client.SchedulePolicies{}
				}
				schedule.Policy.Overlap = enums.SCHEDULE_OVERLAP_POLICY_SKIP
				return &client.ScheduleUpdate{Schedule: &schedule}, nil
			},
		})
		if err != nil {
			return fmt.Errorf("failed to update schedule %s: %w", s.ID, err)
		}
		logger.InfoCtx(ctx, "Updated schedule", zap.String("scheduleID", s.ID), zap.Duration("every", s.Every))
	}

	return nil
}
