package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/realtysync/provider-sync/internal/domain"
)

// SyncRun represents the sync_runs table - one row per orchestrated fetch
type SyncRun struct {
	// ID is an auto-incrementing sequence number
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// RunID is a time-sortable unique identifier (ULID) used for log correlation
	RunID string `gorm:"column:run_id;not null;uniqueIndex;type:varchar(26)"`
	// Provider is the upstream API name
	Provider string `gorm:"column:provider;not null;type:varchar(64)"`
	// Scope is the synchronized entity category
	Scope domain.Scope `gorm:"column:scope;not null;type:varchar(64);index:idx_sync_runs_scope_status_started,priority:1"`
	// CityID and Lang scope the fetched data
	CityID string `gorm:"column:city_id;not null;type:varchar(64)"`
	Lang   string `gorm:"column:lang;not null;type:varchar(16)"`
	// EntityID is the business key for detail runs
	EntityID *string `gorm:"column:entity_id;type:varchar(255)"`
	// Status is running until exactly one terminal update
	Status domain.RunStatus `gorm:"column:status;not null;type:varchar(16);index:idx_sync_runs_scope_status_started,priority:2"`
	// StartedAt is when the run was created
	StartedAt time.Time `gorm:"column:started_at;not null;type:timestamptz;index:idx_sync_runs_scope_status_started,priority:3"`
	// FinishedAt is set by the terminal update
	FinishedAt *time.Time `gorm:"column:finished_at;type:timestamptz"`
	// ItemsFetched counts raw items seen
	ItemsFetched int `gorm:"column:items_fetched;not null;default:0"`
	// ItemsSaved counts items normalized and upserted
	ItemsSaved int `gorm:"column:items_saved;not null;default:0"`
	// EndpointsOK and EndpointsFailed are set for detail runs
	EndpointsOK     *int `gorm:"column:endpoints_ok"`
	EndpointsFailed *int `gorm:"column:endpoints_failed"`
	// ErrorMessage is the sanitized failure message
	ErrorMessage *string `gorm:"column:error_message;type:text"`
	// ErrorContext is the sanitized failure context
	ErrorContext datatypes.JSON `gorm:"column:error_context;type:jsonb"`
	// ErrorCode classifies the failure
	ErrorCode *string    `gorm:"column:error_code;type:varchar(32)"`
	CreatedAt time.Time  `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the SyncRun model
func (SyncRun) TableName() string {
	return "sync_runs"
}
