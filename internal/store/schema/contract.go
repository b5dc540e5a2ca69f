package schema

import "time"

// ContractState represents the contract_states table - latest known shape per (endpoint, city, lang)
type ContractState struct {
	// ID is an auto-incrementing sequence number
	ID       uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	Endpoint string `gorm:"column:endpoint;not null;type:text;uniqueIndex:uq_contract_states_key,priority:1"`
	CityID   string `gorm:"column:city_id;not null;type:varchar(64);uniqueIndex:uq_contract_states_key,priority:2"`
	Lang     string `gorm:"column:lang;not null;type:varchar(16);uniqueIndex:uq_contract_states_key,priority:3"`
	// Hash is the last observed contract hash
	Hash string `gorm:"column:hash;not null;type:varchar(64)"`
	// TopKeys are the sorted top-level keys of the last observed payload
	TopKeys StringList `gorm:"column:top_keys;not null;type:jsonb"`
	// DataKeys are the sorted keys under "data" of the last observed payload
	DataKeys  StringList `gorm:"column:data_keys;not null;type:jsonb"`
	CreatedAt time.Time  `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ContractState model
func (ContractState) TableName() string {
	return "contract_states"
}

// ContractChange represents the contract_changes table - append-only log of hash transitions
type ContractChange struct {
	// ID is an auto-incrementing sequence number
	ID          uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	Endpoint    string     `gorm:"column:endpoint;not null;type:text;index:idx_contract_changes_key,priority:1"`
	CityID      string     `gorm:"column:city_id;not null;type:varchar(64);index:idx_contract_changes_key,priority:2"`
	Lang        string     `gorm:"column:lang;not null;type:varchar(16);index:idx_contract_changes_key,priority:3"`
	OldHash     string     `gorm:"column:old_hash;not null;type:varchar(64)"`
	NewHash     string     `gorm:"column:new_hash;not null;type:varchar(64)"`
	OldTopKeys  StringList `gorm:"column:old_top_keys;not null;type:jsonb"`
	NewTopKeys  StringList `gorm:"column:new_top_keys;not null;type:jsonb"`
	OldDataKeys StringList `gorm:"column:old_data_keys;not null;type:jsonb"`
	NewDataKeys StringList `gorm:"column:new_data_keys;not null;type:jsonb"`
	// PayloadCacheID links to the raw payload that triggered the change
	PayloadCacheID *uint64   `gorm:"column:payload_cache_id"`
	DetectedAt     time.Time `gorm:"column:detected_at;not null;type:timestamptz;index"`
}

// TableName specifies the table name for the ContractChange model
func (ContractChange) TableName() string {
	return "contract_changes"
}
