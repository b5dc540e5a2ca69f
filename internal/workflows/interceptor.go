package workflows

import (
	"context"

	"github.com/getsentry/sentry-go"
	"go.temporal.io/sdk/interceptor"

	"github.com/realtysync/provider-sync/internal/adapter"
)

// NewSentryActivityInterceptor gives every activity execution its own Sentry hub,
// tagged with the activity and workflow it belongs to
func NewSentryActivityInterceptor(temporalActivity adapter.Activity) interceptor.WorkerInterceptor {
	return &sentryActivityInterceptor{temporalActivity: temporalActivity}
}

type sentryActivityInterceptor struct {
	interceptor.WorkerInterceptorBase
	temporalActivity adapter.Activity
}

func (s *sentryActivityInterceptor) InterceptActivity(ctx context.Context, next interceptor.ActivityInboundInterceptor) interceptor.ActivityInboundInterceptor {
	i := &sentryActivityInbound{temporalActivity: s.temporalActivity}
	i.Next = next
	return i
}

type sentryActivityInbound struct {
	interceptor.ActivityInboundInterceptorBase
	temporalActivity adapter.Activity
}

func (s *sentryActivityInbound) ExecuteActivity(ctx context.Context, in *interceptor.ExecuteActivityInput) (interface{}, error) {
	hub := sentry.CurrentHub().Clone()

	meta := s.temporalActivity.Meta(ctx)
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("activity_type", meta.ActivityType)
		scope.SetTag("workflow_type", meta.WorkflowType)
		scope.SetTag("workflow_id", meta.WorkflowID)
		scope.SetTag("task_queue", meta.TaskQueue)
	})

	return s.Next.ExecuteActivity(sentry.SetHubOnContext(ctx, hub), in)
}
