package logger

import (
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"
)

// forWorkflow returns the logger tagged with the workflow execution.
// It returns nil while the workflow replays history, so entries are written once per decision.
func forWorkflow(ctx workflow.Context) *zap.Logger {
	if ctx == nil {
		return log
	}
	if workflow.IsReplaying(ctx) {
		return nil
	}

	info := workflow.GetInfo(ctx)
	if info == nil {
		return log
	}
	workflowType := info.WorkflowType.Name
	if workflowType == "" {
		workflowType = "unknown"
	}

	return log.With(
		zap.String("workflow_type", workflowType),
		zap.String("workflow_id", info.WorkflowExecution.ID),
		zap.String("run_id", info.WorkflowExecution.RunID),
		zap.Int32("attempt", info.Attempt),
		zap.String("task_queue", info.TaskQueueName),
	)
}

// InfoWf logs an info message from workflow code
func InfoWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if l := forWorkflow(ctx); l != nil {
		l.Info(msg, fields...)
	}
}

// WarnWf logs a warning from workflow code
func WarnWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if l := forWorkflow(ctx); l != nil {
		l.Warn(msg, fields...)
	}
}

// DebugWf logs a debug message from workflow code
func DebugWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if l := forWorkflow(ctx); l != nil {
		l.Debug(msg, fields...)
	}
}

// ErrorWf logs an error from workflow code; errors reach Sentry through the zapsentry core
func ErrorWf(ctx workflow.Context, err error, fields ...zap.Field) {
	if l := forWorkflow(ctx); l != nil {
		l.Error(errorMessage(err), fields...)
	}
}
