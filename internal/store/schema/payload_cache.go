package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/realtysync/provider-sync/internal/domain"
)

// PayloadCache represents the payload_cache table - append-only log of raw provider responses
type PayloadCache struct {
	// ID is an auto-incrementing sequence number
	ID       uint64       `gorm:"column:id;primaryKey;autoIncrement"`
	Provider string       `gorm:"column:provider;not null;type:varchar(64)"`
	Scope    domain.Scope `gorm:"column:scope;not null;type:varchar(64)"`
	// ExternalID is the business key of the item, when one resolved
	ExternalID *string `gorm:"column:external_id;type:varchar(255);index"`
	// Endpoint is the request path the payload was fetched from
	Endpoint   string         `gorm:"column:endpoint;not null;type:text"`
	HTTPStatus int            `gorm:"column:http_status;not null"`
	CityID     string         `gorm:"column:city_id;not null;type:varchar(64)"`
	Lang       string         `gorm:"column:lang;not null;type:varchar(16)"`
	Payload    datatypes.JSON `gorm:"column:payload;not null;type:jsonb"`
	// PayloadHash is the canonical hash of Payload
	PayloadHash string    `gorm:"column:payload_hash;not null;type:varchar(64)"`
	FetchedAt   time.Time `gorm:"column:fetched_at;not null;type:timestamptz;index"`
}

// TableName specifies the table name for the PayloadCache model
func (PayloadCache) TableName() string {
	return "payload_cache"
}
