package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/realtysync/provider-sync/internal/domain"
	"github.com/realtysync/provider-sync/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// =============================================================================
// Sessions
// =============================================================================

// GetActiveSession returns the active session for a provider, or nil when none is active
func (s *pgStore) GetActiveSession(ctx context.Context, provider string) (*schema.Session, error) {
	var session schema.Session
	err := s.db.WithContext(ctx).
		Where("provider = ? AND active = ?", provider, true).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}

	return &session, nil
}

// UpsertActiveSession upserts a session by (provider, holder), activates it and deactivates its siblings
func (s *pgStore) UpsertActiveSession(ctx context.Context, input UpsertSessionInput) (*schema.Session, error) {
	var session schema.Session
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialize activations per provider
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "sessions:"+input.Provider).Error; err != nil {
			return fmt.Errorf("failed to lock provider sessions: %w", err)
		}

		// 1. Deactivate every sibling so the partial unique index holds
		if err := tx.Model(&schema.Session{}).
			Where("provider = ? AND holder_id <> ? AND active = ?", input.Provider, input.HolderID, true).
			Updates(map[string]interface{}{
				"active":         false,
				"deactivated_at": input.LoginAt,
				"updated_at":     input.LoginAt,
			}).Error; err != nil {
			return fmt.Errorf("failed to deactivate sibling sessions: %w", err)
		}

		// 2. Upsert the holder's session as active
		credential := input.EncryptedCredential
		loginAt := input.LoginAt
		row := schema.Session{
			ID:                  uuid.NewString(),
			Provider:            input.Provider,
			HolderID:            input.HolderID,
			EncryptedCredential: &credential,
			Region:              input.Region,
			AppID:               input.AppID,
			Active:              true,
			LastLoginAt:         &loginAt,
			CreatedAt:           loginAt,
			UpdatedAt:           loginAt,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "provider"}, {Name: "holder_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"encrypted_credential": credential,
				"region":               input.Region,
				"app_id":               input.AppID,
				"active":               true,
				"last_login_at":        loginAt,
				"deactivated_at":       nil,
				"updated_at":           loginAt,
			}),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to upsert session: %w", err)
		}

		// 3. Re-read, the conflict path keeps the original id
		return tx.Where("provider = ? AND holder_id = ?", input.Provider, input.HolderID).
			First(&session).Error
	})
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// DeactivateSession clears the session credential and marks it inactive
func (s *pgStore) DeactivateSession(ctx context.Context, sessionID string) error {
	now := time.Now().UTC()
	err := s.db.WithContext(ctx).Model(&schema.Session{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"active":               false,
			"encrypted_credential": nil,
			"deactivated_at":       now,
			"updated_at":           now,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to deactivate session: %w", err)
	}

	return nil
}

// TouchSessionTokenIssued records the last access token issuance time
func (s *pgStore) TouchSessionTokenIssued(ctx context.Context, sessionID string, at time.Time) error {
	err := s.db.WithContext(ctx).Model(&schema.Session{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"last_token_issued_at": at,
			"updated_at":           at,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update session token issuance: %w", err)
	}

	return nil
}

// =============================================================================
// Sync runs
// =============================================================================

// CreateSyncRun creates a sync run in running status
func (s *pgStore) CreateSyncRun(ctx context.Context, input CreateSyncRunInput) (*schema.SyncRun, error) {
	run := schema.SyncRun{
		RunID:     input.RunID,
		Provider:  input.Provider,
		Scope:     input.Scope,
		CityID:    input.Locale.City,
		Lang:      input.Locale.Lang,
		EntityID:  input.EntityID,
		Status:    domain.RunStatusRunning,
		StartedAt: input.StartedAt,
	}

	if err := s.db.WithContext(ctx).Create(&run).Error; err != nil {
		return nil, fmt.Errorf("failed to create sync run: %w", err)
	}

	return &run, nil
}

// FinishSyncRun applies the single terminal update of a running sync run
func (s *pgStore) FinishSyncRun(ctx context.Context, input FinishSyncRunInput) error {
	if !input.Status.IsTerminal() {
		return fmt.Errorf("invalid terminal status: %s", input.Status)
	}

	updates := map[string]interface{}{
		"status":           input.Status,
		"finished_at":      input.FinishedAt,
		"items_fetched":    input.ItemsFetched,
		"items_saved":      input.ItemsSaved,
		"endpoints_ok":     input.EndpointsOK,
		"endpoints_failed": input.EndpointsFailed,
		"error_message":    input.ErrorMessage,
		"error_code":       input.ErrorCode,
		"updated_at":       input.FinishedAt,
	}
	if len(input.ErrorContext) > 0 {
		updates["error_context"] = input.ErrorContext
	}

	result := s.db.WithContext(ctx).Model(&schema.SyncRun{}).
		Where("run_id = ? AND status = ?", input.RunID, domain.RunStatusRunning).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to finish sync run: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotRunning, input.RunID)
	}

	return nil
}

// GetSyncRun retrieves a sync run by its run ID
func (s *pgStore) GetSyncRun(ctx context.Context, runID string) (*schema.SyncRun, error) {
	var run schema.SyncRun
	err := s.db.WithContext(ctx).Where("run_id = ?", runID).First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sync run: %w", err)
	}

	return &run, nil
}

type scopeCount struct {
	Scope domain.Scope
	Count int64
}

// CountFailedRunsByScope counts failed runs started since the given time, grouped by scope
func (s *pgStore) CountFailedRunsByScope(ctx context.Context, since time.Time) (map[domain.Scope]int64, error) {
	var rows []scopeCount
	err := s.db.WithContext(ctx).Model(&schema.SyncRun{}).
		Select("scope, COUNT(*) AS count").
		Where("status = ? AND started_at >= ?", domain.RunStatusFailed, since).
		Group("scope").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count failed runs: %w", err)
	}

	counts := make(map[domain.Scope]int64, len(rows))
	for _, row := range rows {
		counts[row.Scope] = row.Count
	}
	return counts, nil
}

// GetLastSuccessByScope returns the latest successful finish time per scope
func (s *pgStore) GetLastSuccessByScope(ctx context.Context) (map[domain.Scope]time.Time, error) {
	var rows []struct {
		Scope       domain.Scope
		LastSuccess time.Time
	}
	err := s.db.WithContext(ctx).Model(&schema.SyncRun{}).
		Select("scope, MAX(finished_at) AS last_success").
		Where("status = ?", domain.RunStatusSuccess).
		Group("scope").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get last successful runs: %w", err)
	}

	last := make(map[domain.Scope]time.Time, len(rows))
	for _, row := range rows {
		last[row.Scope] = row.LastSuccess
	}
	return last, nil
}

// =============================================================================
// Entities
// =============================================================================

var entityKeyColumns = []clause.Column{{Name: "external_id"}, {Name: "city_id"}, {Name: "lang"}}

// UpsertBlock inserts or updates a block keyed by (external id, city, lang)
func (s *pgStore) UpsertBlock(ctx context.Context, input UpsertBlockInput) error {
	block := schema.Block{
		ExternalID:  input.ExternalID,
		CityID:      input.Locale.City,
		Lang:        input.Locale.Lang,
		Name:        input.Name,
		Address:     input.Address,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		MinPrice:    input.MinPrice,
		Raw:         input.Raw,
		Normalized:  input.Normalized,
		PayloadHash: input.PayloadHash,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: entityKeyColumns,
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "address", "latitude", "longitude", "min_price",
			"raw", "normalized", "payload_hash", "updated_at",
		}),
	}).Create(&block).Error
	if err != nil {
		return fmt.Errorf("failed to upsert block: %w", err)
	}

	return nil
}

// UpsertApartment inserts or updates an apartment keyed by (external id, city, lang)
func (s *pgStore) UpsertApartment(ctx context.Context, input UpsertApartmentInput) error {
	apartment := schema.Apartment{
		ExternalID:      input.ExternalID,
		CityID:          input.Locale.City,
		Lang:            input.Locale.Lang,
		BlockExternalID: input.BlockExternalID,
		Rooms:           input.Rooms,
		Floor:           input.Floor,
		Area:            input.Area,
		Price:           input.Price,
		Latitude:        input.Latitude,
		Longitude:       input.Longitude,
		Raw:             input.Raw,
		Normalized:      input.Normalized,
		PayloadHash:     input.PayloadHash,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: entityKeyColumns,
		DoUpdates: clause.AssignmentColumns([]string{
			"block_external_id", "rooms", "floor", "area", "price", "latitude", "longitude",
			"raw", "normalized", "payload_hash", "updated_at",
		}),
	}).Create(&apartment).Error
	if err != nil {
		return fmt.Errorf("failed to upsert apartment: %w", err)
	}

	return nil
}

// UpsertBlockDetail inserts or overwrites a block detail keyed by (external id, city, lang).
// Optional sections that failed are written as null, replacing stale values.
func (s *pgStore) UpsertBlockDetail(ctx context.Context, input UpsertBlockDetailInput) error {
	detail := schema.BlockDetail{
		ExternalID:  input.ExternalID,
		CityID:      input.Locale.City,
		Lang:        input.Locale.Lang,
		Unified:     input.Unified,
		Advantages:  input.Advantages,
		Prices:      input.Prices,
		PayloadHash: input.PayloadHash,
		FetchedAt:   input.FetchedAt,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: entityKeyColumns,
		DoUpdates: clause.AssignmentColumns([]string{
			"unified", "advantages", "prices", "payload_hash", "fetched_at", "updated_at",
		}),
	}).Create(&detail).Error
	if err != nil {
		return fmt.Errorf("failed to upsert block detail: %w", err)
	}

	return nil
}

func firstByKey[T any](ctx context.Context, db *gorm.DB, externalID string, locale domain.Locale) (*T, error) {
	var row T
	err := db.WithContext(ctx).
		Where("external_id = ? AND city_id = ? AND lang = ?", externalID, locale.City, locale.Lang).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// GetBlock retrieves a block by its key, or nil when absent
func (s *pgStore) GetBlock(ctx context.Context, externalID string, locale domain.Locale) (*schema.Block, error) {
	block, err := firstByKey[schema.Block](ctx, s.db, externalID, locale)
	if err != nil {
		return nil, fmt.Errorf("failed to get block: %w", err)
	}
	return block, nil
}

// GetApartment retrieves an apartment by its key, or nil when absent
func (s *pgStore) GetApartment(ctx context.Context, externalID string, locale domain.Locale) (*schema.Apartment, error) {
	apartment, err := firstByKey[schema.Apartment](ctx, s.db, externalID, locale)
	if err != nil {
		return nil, fmt.Errorf("failed to get apartment: %w", err)
	}
	return apartment, nil
}

// GetBlockDetail retrieves a block detail by its key, or nil when absent
func (s *pgStore) GetBlockDetail(ctx context.Context, externalID string, locale domain.Locale) (*schema.BlockDetail, error) {
	detail, err := firstByKey[schema.BlockDetail](ctx, s.db, externalID, locale)
	if err != nil {
		return nil, fmt.Errorf("failed to get block detail: %w", err)
	}
	return detail, nil
}

// ListRecentBlocks returns the most recently updated blocks
func (s *pgStore) ListRecentBlocks(ctx context.Context, limit int) ([]schema.Block, error) {
	var blocks []schema.Block
	err := s.db.WithContext(ctx).Order("updated_at DESC, id DESC").Limit(limit).Find(&blocks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list blocks: %w", err)
	}
	return blocks, nil
}

// ListRecentApartments returns the most recently updated apartments
func (s *pgStore) ListRecentApartments(ctx context.Context, limit int) ([]schema.Apartment, error) {
	var apartments []schema.Apartment
	err := s.db.WithContext(ctx).Order("updated_at DESC, id DESC").Limit(limit).Find(&apartments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list apartments: %w", err)
	}
	return apartments, nil
}

// ListRecentBlockDetails returns the most recently updated block details
func (s *pgStore) ListRecentBlockDetails(ctx context.Context, limit int) ([]schema.BlockDetail, error) {
	var details []schema.BlockDetail
	err := s.db.WithContext(ctx).Order("updated_at DESC, id DESC").Limit(limit).Find(&details).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list block details: %w", err)
	}
	return details, nil
}

// ListRecentBlockIDs returns the external ids of the most recently updated blocks of a locale
func (s *pgStore) ListRecentBlockIDs(ctx context.Context, locale domain.Locale, limit int) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&schema.Block{}).
		Where("city_id = ? AND lang = ?", locale.City, locale.Lang).
		Order("updated_at DESC, id DESC").
		Limit(limit).
		Pluck("external_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list block ids: %w", err)
	}
	return ids, nil
}

// =============================================================================
// Raw payloads and contract drift
// =============================================================================

// CreatePayloadCache appends a raw payload
func (s *pgStore) CreatePayloadCache(ctx context.Context, input CreatePayloadCacheInput) (*schema.PayloadCache, error) {
	row := schema.PayloadCache{
		Provider:    input.Provider,
		Scope:       input.Scope,
		ExternalID:  input.ExternalID,
		Endpoint:    input.Endpoint,
		HTTPStatus:  input.HTTPStatus,
		CityID:      input.Locale.City,
		Lang:        input.Locale.Lang,
		Payload:     input.Payload,
		PayloadHash: input.PayloadHash,
		FetchedAt:   input.FetchedAt,
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to create payload cache: %w", err)
	}

	return &row, nil
}

// ObserveContract compares the observed hash with the stored contract state and
// records a change on transition. The state row is locked for the duration of
// the comparison so concurrent observers of one key see each other's writes.
func (s *pgStore) ObserveContract(ctx context.Context, input ObserveContractInput) (*schema.ContractChange, error) {
	var change *schema.ContractChange

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lockState := func(state *schema.ContractState) error {
			return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("endpoint = ? AND city_id = ? AND lang = ?", input.Endpoint, input.Locale.City, input.Locale.Lang).
				First(state).Error
		}

		var state schema.ContractState
		err := lockState(&state)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to lock contract state: %w", err)
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 1. First observation bootstraps the state
			state = schema.ContractState{
				Endpoint:  input.Endpoint,
				CityID:    input.Locale.City,
				Lang:      input.Locale.Lang,
				Hash:      input.Hash,
				TopKeys:   schema.StringList(input.TopKeys),
				DataKeys:  schema.StringList(input.DataKeys),
				CreatedAt: input.ObservedAt,
				UpdatedAt: input.ObservedAt,
			}
			result := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "endpoint"}, {Name: "city_id"}, {Name: "lang"}},
				DoNothing: true,
			}).Create(&state)
			if result.Error != nil {
				return fmt.Errorf("failed to create contract state: %w", result.Error)
			}
			if result.RowsAffected > 0 {
				return nil
			}

			// Lost the bootstrap race, compare against the winner
			state = schema.ContractState{}
			if err := lockState(&state); err != nil {
				return fmt.Errorf("failed to lock contract state: %w", err)
			}
		}

		// 2. Unchanged hash has no side effects
		if state.Hash == input.Hash {
			return nil
		}

		// 3. Record the transition and overwrite the state
		change = &schema.ContractChange{
			Endpoint:       input.Endpoint,
			CityID:         input.Locale.City,
			Lang:           input.Locale.Lang,
			OldHash:        state.Hash,
			NewHash:        input.Hash,
			OldTopKeys:     state.TopKeys,
			NewTopKeys:     schema.StringList(input.TopKeys),
			OldDataKeys:    state.DataKeys,
			NewDataKeys:    schema.StringList(input.DataKeys),
			PayloadCacheID: input.PayloadCacheID,
			DetectedAt:     input.ObservedAt,
		}
		if err := tx.Create(change).Error; err != nil {
			return fmt.Errorf("failed to create contract change: %w", err)
		}

		if err := tx.Model(&schema.ContractState{}).
			Where("id = ?", state.ID).
			Updates(map[string]interface{}{
				"hash":       input.Hash,
				"top_keys":   schema.StringList(input.TopKeys),
				"data_keys":  schema.StringList(input.DataKeys),
				"updated_at": input.ObservedAt,
			}).Error; err != nil {
			return fmt.Errorf("failed to update contract state: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return change, nil
}

// GetContractState retrieves the contract state of a key, or nil when absent
func (s *pgStore) GetContractState(ctx context.Context, endpoint string, locale domain.Locale) (*schema.ContractState, error) {
	var state schema.ContractState
	err := s.db.WithContext(ctx).
		Where("endpoint = ? AND city_id = ? AND lang = ?", endpoint, locale.City, locale.Lang).
		First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contract state: %w", err)
	}
	return &state, nil
}

// ListContractChanges returns the changes recorded for a key, oldest first
func (s *pgStore) ListContractChanges(ctx context.Context, endpoint string, locale domain.Locale) ([]schema.ContractChange, error) {
	var changes []schema.ContractChange
	err := s.db.WithContext(ctx).
		Where("endpoint = ? AND city_id = ? AND lang = ?", endpoint, locale.City, locale.Lang).
		Order("id ASC").
		Find(&changes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contract changes: %w", err)
	}
	return changes, nil
}

// CountContractChangesByEndpoint counts changes detected since the given time, grouped by endpoint
func (s *pgStore) CountContractChangesByEndpoint(ctx context.Context, since time.Time) (map[string]int64, error) {
	var rows []struct {
		Endpoint string
		Count    int64
	}
	err := s.db.WithContext(ctx).Model(&schema.ContractChange{}).
		Select("endpoint, COUNT(*) AS count").
		Where("detected_at >= ?", since).
		Group("endpoint").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count contract changes: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Endpoint] = row.Count
	}
	return counts, nil
}

// =============================================================================
// Data quality
// =============================================================================

// CreateDataQualityCheck appends a rule evaluation
func (s *pgStore) CreateDataQualityCheck(ctx context.Context, input CreateDataQualityCheckInput) error {
	check := schema.DataQualityCheck{
		Scope:     input.Scope,
		EntityID:  input.EntityID,
		CityID:    input.Locale.City,
		Lang:      input.Locale.Lang,
		CheckName: input.CheckName,
		Status:    input.Status,
		Message:   input.Message,
		Context:   input.Context,
	}

	if err := s.db.WithContext(ctx).Create(&check).Error; err != nil {
		return fmt.Errorf("failed to create data quality check: %w", err)
	}

	return nil
}

// CountQualityFailuresByScope counts failed checks created since the given time, grouped by scope
func (s *pgStore) CountQualityFailuresByScope(ctx context.Context, since time.Time) (map[domain.Scope]int64, error) {
	var rows []scopeCount
	err := s.db.WithContext(ctx).Model(&schema.DataQualityCheck{}).
		Select("scope, COUNT(*) AS count").
		Where("status = ? AND created_at >= ?", domain.CheckStatusFail, since).
		Group("scope").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count quality failures: %w", err)
	}

	counts := make(map[domain.Scope]int64, len(rows))
	for _, row := range rows {
		counts[row.Scope] = row.Count
	}
	return counts, nil
}

// =============================================================================
// Key-value store
// =============================================================================

// SetKeyValue stores a value; a nil expiry keeps it forever
func (s *pgStore) SetKeyValue(ctx context.Context, key string, value string, expiresAt *time.Time) error {
	kv := schema.KeyValueStore{
		Key:       key,
		Value:     value,
		ExpiresAt: expiresAt,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set key-value: %w", err)
	}

	return nil
}

// GetKeyValue retrieves an entry, or nil when absent
func (s *pgStore) GetKeyValue(ctx context.Context, key string) (*schema.KeyValueStore, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get key-value: %w", err)
	}

	return &kv, nil
}

// DeleteKeyValue removes an entry
func (s *pgStore) DeleteKeyValue(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&schema.KeyValueStore{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete key-value: %w", err)
	}

	return nil
}
