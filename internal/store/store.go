package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"

	"github.com/realtysync/provider-sync/internal/domain"
	"github.com/realtysync/provider-sync/internal/store/schema"
)

// ErrRunNotRunning is returned when finishing a sync run that already reached a terminal status
var ErrRunNotRunning = errors.New("sync run is not running")

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetActiveSession returns the active session for a provider, or nil when none is active
	GetActiveSession(ctx context.Context, provider string) (*schema.Session, error)
	// UpsertActiveSession upserts a session by (provider, holder), activates it and deactivates its siblings
	UpsertActiveSession(ctx context.Context, input UpsertSessionInput) (*schema.Session, error)
	// DeactivateSession clears the session credential and marks it inactive
	DeactivateSession(ctx context.Context, sessionID string) error
	// TouchSessionTokenIssued records the last access token issuance time
	TouchSessionTokenIssued(ctx context.Context, sessionID string, at time.Time) error

	// CreateSyncRun creates a sync run in running status
	CreateSyncRun(ctx context.Context, input CreateSyncRunInput) (*schema.SyncRun, error)
	// FinishSyncRun applies the single terminal update of a running sync run
	FinishSyncRun(ctx context.Context, input FinishSyncRunInput) error
	// GetSyncRun retrieves a sync run by its run ID
	GetSyncRun(ctx context.Context, runID string) (*schema.SyncRun, error)
	// CountFailedRunsByScope counts failed runs started since the given time, grouped by scope
	CountFailedRunsByScope(ctx context.Context, since time.Time) (map[domain.Scope]int64, error)
	// GetLastSuccessByScope returns the latest successful finish time per scope
	GetLastSuccessByScope(ctx context.Context) (map[domain.Scope]time.Time, error)

	// UpsertBlock inserts or updates a block keyed by (external id, city, lang)
	UpsertBlock(ctx context.Context, input UpsertBlockInput) error
	// UpsertApartment inserts or updates an apartment keyed by (external id, city, lang)
	UpsertApartment(ctx context.Context, input UpsertApartmentInput) error
	// UpsertBlockDetail inserts or overwrites a block detail keyed by (external id, city, lang)
	UpsertBlockDetail(ctx context.Context, input UpsertBlockDetailInput) error
	// GetBlock retrieves a block by its key, or nil when absent
	GetBlock(ctx context.Context, externalID string, locale domain.Locale) (*schema.Block, error)
	// GetApartment retrieves an apartment by its key, or nil when absent
	GetApartment(ctx context.Context, externalID string, locale domain.Locale) (*schema.Apartment, error)
	// GetBlockDetail retrieves a block detail by its key, or nil when absent
	GetBlockDetail(ctx context.Context, externalID string, locale domain.Locale) (*schema.BlockDetail, error)
	// ListRecentBlocks returns the most recently updated blocks
	ListRecentBlocks(ctx context.Context, limit int) ([]schema.Block, error)
	// ListRecentApartments returns the most recently updated apartments
	ListRecentApartments(ctx context.Context, limit int) ([]schema.Apartment, error)
	// ListRecentBlockDetails returns the most recently updated block details
	ListRecentBlockDetails(ctx context.Context, limit int) ([]schema.BlockDetail, error)
	// ListRecentBlockIDs returns the external ids of the most recently updated blocks of a locale
	ListRecentBlockIDs(ctx context.Context, locale domain.Locale, limit int) ([]string, error)

	// CreatePayloadCache appends a raw payload
	CreatePayloadCache(ctx context.Context, input CreatePayloadCacheInput) (*schema.PayloadCache, error)
	// ObserveContract compares the observed hash with the stored contract state and
	// records a change on transition. Returns the change, or nil when none was recorded.
	ObserveContract(ctx context.Context, input ObserveContractInput) (*schema.ContractChange, error)
	// GetContractState retrieves the contract state of a key, or nil when absent
	GetContractState(ctx context.Context, endpoint string, locale domain.Locale) (*schema.ContractState, error)
	// ListContractChanges returns the changes recorded for a key, oldest first
	ListContractChanges(ctx context.Context, endpoint string, locale domain.Locale) ([]schema.ContractChange, error)
	// CountContractChangesByEndpoint counts changes detected since the given time, grouped by endpoint
	CountContractChangesByEndpoint(ctx context.Context, since time.Time) (map[string]int64, error)

	// CreateDataQualityCheck appends a rule evaluation
	CreateDataQualityCheck(ctx context.Context, input CreateDataQualityCheckInput) error
	// CountQualityFailuresByScope counts failed checks created since the given time, grouped by scope
	CountQualityFailuresByScope(ctx context.Context, since time.Time) (map[domain.Scope]int64, error)

	// SetKeyValue stores a value; a nil expiry keeps it forever
	SetKeyValue(ctx context.Context, key string, value string, expiresAt *time.Time) error
	// GetKeyValue retrieves an entry, or nil when absent
	GetKeyValue(ctx context.Context, key string) (*schema.KeyValueStore, error)
	// DeleteKeyValue removes an entry
	DeleteKeyValue(ctx context.Context, key string) error
}

// UpsertSessionInput represents the data needed to store a session credential
type UpsertSessionInput struct {
	Provider            string
	HolderID            string
	EncryptedCredential string
	Region              *string
	AppID               *string
	LoginAt             time.Time
}

// CreateSyncRunInput represents the data needed to start a sync run
type CreateSyncRunInput struct {
	RunID     string
	Provider  string
	Scope     domain.Scope
	Locale    domain.Locale
	EntityID  *string
	StartedAt time.Time
}

// FinishSyncRunInput represents the terminal update of a sync run
type FinishSyncRunInput struct {
	RunID           string
	Status          domain.RunStatus
	FinishedAt      time.Time
	ItemsFetched    int
	ItemsSaved      int
	EndpointsOK     *int
	EndpointsFailed *int
	ErrorMessage    *string
	ErrorContext    datatypes.JSON
	ErrorCode       *string
}

// EntityRecord holds the columns shared by every synchronized entity
type EntityRecord struct {
	ExternalID  string
	Locale      domain.Locale
	Raw         datatypes.JSON
	Normalized  datatypes.JSON
	PayloadHash string
}

// UpsertBlockInput represents a normalized block
type UpsertBlockInput struct {
	EntityRecord
	Name      *string
	Address   *string
	Latitude  *float64
	Longitude *float64
	MinPrice  *float64
}

// UpsertApartmentInput represents a normalized apartment
type UpsertApartmentInput struct {
	EntityRecord
	BlockExternalID *string
	Rooms           *int
	Floor           *int
	Area            *float64
	Price           *float64
	Latitude        *float64
	Longitude       *float64
}

// UpsertBlockDetailInput represents a composed block detail snapshot
type UpsertBlockDetailInput struct {
	ExternalID  string
	Locale      domain.Locale
	Unified     datatypes.JSON
	Advantages  datatypes.JSON
	Prices      datatypes.JSON
	PayloadHash string
	FetchedAt   time.Time
}

// CreatePayloadCacheInput represents a raw payload to append
type CreatePayloadCacheInput struct {
	Provider    string
	Scope       domain.Scope
	ExternalID  *string
	Endpoint    string
	HTTPStatus  int
	Locale      domain.Locale
	Payload     datatypes.JSON
	PayloadHash string
	FetchedAt   time.Time
}

// ObserveContractInput represents one observation of an endpoint contract
type ObserveContractInput struct {
	Endpoint       string
	Locale         domain.Locale
	Hash           string
	TopKeys        []string
	DataKeys       []string
	PayloadCacheID *uint64
	ObservedAt     time.Time
}

// CreateDataQualityCheckInput represents one rule evaluation
type CreateDataQualityCheckInput struct {
	Scope     domain.Scope
	EntityID  string
	Locale    domain.Locale
	CheckName string
	Status    domain.CheckStatus
	Message   string
	Context   datatypes.JSON
}
