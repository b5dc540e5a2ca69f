package schema

import "time"

// Session represents the sessions table - provider login sessions holding the long-lived credential.
// At most one session per provider is active; enforced by a partial unique index.
type Session struct {
	// ID is the session identifier (UUID)
	ID string `gorm:"column:id;primaryKey;type:varchar(36)"`
	// Provider is the upstream API the session belongs to
	Provider string `gorm:"column:provider;not null;type:varchar(64);uniqueIndex:uq_sessions_provider_holder,priority:1"`
	// HolderID identifies who logged in (e.g. a phone number)
	HolderID string `gorm:"column:holder_id;not null;type:varchar(255);uniqueIndex:uq_sessions_provider_holder,priority:2"`
	// EncryptedCredential is the sealed refresh credential; nil once the provider rejected it
	EncryptedCredential *string `gorm:"column:encrypted_credential;type:text"`
	// Region is the provider region bound to the credential
	Region *string `gorm:"column:region;type:varchar(64)"`
	// AppID is the provider application identifier bound to the credential
	AppID *string `gorm:"column:app_id;type:varchar(128)"`
	// Active marks the session used for token issuance
	Active bool `gorm:"column:active;not null;default:false"`
	// LastLoginAt is when the credential was last stored
	LastLoginAt *time.Time `gorm:"column:last_login_at;type:timestamptz"`
	// LastTokenIssuedAt is when an access token was last issued from this session
	LastTokenIssuedAt *time.Time `gorm:"column:last_token_issued_at;type:timestamptz"`
	// DeactivatedAt is when the session was last deactivated
	DeactivatedAt *time.Time `gorm:"column:deactivated_at;type:timestamptz"`
	CreatedAt     time.Time  `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Session model
func (Session) TableName() string {
	return "sessions"
}

// HasCredential reports whether the session still holds a credential
func (s *Session) HasCredential() bool {
	return s.EncryptedCredential != nil && *s.EncryptedCredential != ""
}
