package adapter

import (
	"context"

	"go.temporal.io/sdk/activity"
)

// ActivityMeta is the part of a running activity's info used for logging and error tagging
type ActivityMeta struct {
	ActivityType string
	WorkflowID   string
	WorkflowType string
	TaskQueue    string
	Attempt      int32
}

// Activity reads the metadata of the activity executing on ctx
//
//go:generate mockgen -source=activity.go -destination=../mocks/activity.go -package=mocks -mock_names=Activity=MockActivity
type Activity interface {
	// Meta returns a zero ActivityMeta when ctx does not belong to an activity
	Meta(ctx context.Context) ActivityMeta
}

type temporalActivity struct{}

// NewActivity returns the Activity backed by the Temporal activity package
func NewActivity() Activity {
	return temporalActivity{}
}

func (temporalActivity) Meta(ctx context.Context) ActivityMeta {
	if ctx == nil || !activity.IsActivity(ctx) {
		return ActivityMeta{}
	}

	info := activity.GetInfo(ctx)
	meta := ActivityMeta{
		ActivityType: info.ActivityType.Name,
		WorkflowID:   info.WorkflowExecution.ID,
		TaskQueue:    info.TaskQueue,
		Attempt:      info.Attempt,
	}
	if info.WorkflowType != nil {
		meta.WorkflowType = info.WorkflowType.Name
	}
	return meta
}
