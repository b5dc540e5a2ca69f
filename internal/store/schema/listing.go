package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Block represents the blocks table - residential complexes (buildings) listed by the provider
type Block struct {
	// ID is an auto-incrementing sequence number
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ExternalID is the provider business key
	ExternalID string `gorm:"column:external_id;not null;type:varchar(255);uniqueIndex:uq_blocks_key,priority:1"`
	CityID     string `gorm:"column:city_id;not null;type:varchar(64);uniqueIndex:uq_blocks_key,priority:2"`
	Lang       string `gorm:"column:lang;not null;type:varchar(16);uniqueIndex:uq_blocks_key,priority:3"`
	// Normalized columns
	Name      *string  `gorm:"column:name;type:text"`
	Address   *string  `gorm:"column:address;type:text"`
	Latitude  *float64 `gorm:"column:latitude"`
	Longitude *float64 `gorm:"column:longitude"`
	MinPrice  *float64 `gorm:"column:min_price"`
	// Raw is the provider payload as received
	Raw datatypes.JSON `gorm:"column:raw;not null;type:jsonb"`
	// Normalized is the normalized structure
	Normalized datatypes.JSON `gorm:"column:normalized;not null;type:jsonb"`
	// PayloadHash is the canonical hash of Raw
	PayloadHash string    `gorm:"column:payload_hash;not null;type:varchar(64)"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz;index"`
}

// TableName specifies the table name for the Block model
func (Block) TableName() string {
	return "blocks"
}

// Apartment represents the apartments table - individual units offered by the provider
type Apartment struct {
	// ID is an auto-incrementing sequence number
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ExternalID is the provider business key
	ExternalID string `gorm:"column:external_id;not null;type:varchar(255);uniqueIndex:uq_apartments_key,priority:1"`
	CityID     string `gorm:"column:city_id;not null;type:varchar(64);uniqueIndex:uq_apartments_key,priority:2"`
	Lang       string `gorm:"column:lang;not null;type:varchar(16);uniqueIndex:uq_apartments_key,priority:3"`
	// BlockExternalID links the apartment to its block when known
	BlockExternalID *string  `gorm:"column:block_external_id;type:varchar(255);index"`
	Rooms           *int     `gorm:"column:rooms"`
	Floor           *int     `gorm:"column:floor"`
	Area            *float64 `gorm:"column:area"`
	Price           *float64 `gorm:"column:price"`
	Latitude        *float64 `gorm:"column:latitude"`
	Longitude       *float64 `gorm:"column:longitude"`
	// Raw is the provider payload as received
	Raw datatypes.JSON `gorm:"column:raw;not null;type:jsonb"`
	// Normalized is the normalized structure
	Normalized datatypes.JSON `gorm:"column:normalized;not null;type:jsonb"`
	// PayloadHash is the canonical hash of Raw
	PayloadHash string    `gorm:"column:payload_hash;not null;type:varchar(64)"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz;index"`
}

// TableName specifies the table name for the Apartment model
func (Apartment) TableName() string {
	return "apartments"
}

// BlockDetail represents the block_details table - composed detail snapshot of one block.
// Unified is required; Advantages and Prices stay null when their sub-endpoint failed.
type BlockDetail struct {
	// ID is an auto-incrementing sequence number
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ExternalID is the block business key
	ExternalID string `gorm:"column:external_id;not null;type:varchar(255);uniqueIndex:uq_block_details_key,priority:1"`
	CityID     string `gorm:"column:city_id;not null;type:varchar(64);uniqueIndex:uq_block_details_key,priority:2"`
	Lang       string `gorm:"column:lang;not null;type:varchar(16);uniqueIndex:uq_block_details_key,priority:3"`
	// Unified is the required sub-endpoint payload
	Unified datatypes.JSON `gorm:"column:unified;not null;type:jsonb"`
	// Advantages is the optional advantages sub-endpoint payload
	Advantages datatypes.JSON `gorm:"column:advantages;type:jsonb"`
	// Prices is the optional prices sub-endpoint payload
	Prices datatypes.JSON `gorm:"column:prices;type:jsonb"`
	// PayloadHash is the canonical hash of the composed detail
	PayloadHash string    `gorm:"column:payload_hash;not null;type:varchar(64)"`
	FetchedAt   time.Time `gorm:"column:fetched_at;not null;type:timestamptz"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz;index"`
}

// TableName specifies the table name for the BlockDetail model
func (BlockDetail) TableName() string {
	return "block_details"
}
