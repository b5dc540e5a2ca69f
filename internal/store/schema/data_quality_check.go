package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/realtysync/provider-sync/internal/domain"
)

// DataQualityCheck represents the data_quality_checks table - append-only rule evaluations
type DataQualityCheck struct {
	// ID is an auto-incrementing sequence number
	ID        uint64             `gorm:"column:id;primaryKey;autoIncrement"`
	Scope     domain.Scope       `gorm:"column:scope;not null;type:varchar(64);index:idx_dq_scope_status_created,priority:1"`
	EntityID  string             `gorm:"column:entity_id;not null;type:varchar(255)"`
	CityID    string             `gorm:"column:city_id;not null;type:varchar(64)"`
	Lang      string             `gorm:"column:lang;not null;type:varchar(16)"`
	CheckName string             `gorm:"column:check_name;not null;type:varchar(128)"`
	Status    domain.CheckStatus `gorm:"column:status;not null;type:varchar(8);index:idx_dq_scope_status_created,priority:2"`
	// Message is sanitized and length-capped
	Message string `gorm:"column:message;not null;type:text"`
	// Context is sanitized with secret-like keys dropped
	Context   datatypes.JSON `gorm:"column:context;type:jsonb"`
	CreatedAt time.Time      `gorm:"column:created_at;not null;default:now();type:timestamptz;index:idx_dq_scope_status_created,priority:3"`
}

// TableName specifies the table name for the DataQualityCheck model
func (DataQualityCheck) TableName() string {
	return "data_quality_checks"
}
