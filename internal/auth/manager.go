package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/realtysync/provider-sync/internal/adapter"
	"github.com/realtysync/provider-sync/internal/domain"
	"github.com/realtysync/provider-sync/internal/logger"
	"github.com/realtysync/provider-sync/internal/store"
	"github.com/realtysync/provider-sync/internal/store/schema"
)

const (
	// DefaultTokenTTL is how long an issued access token is reused
	DefaultTokenTTL = 240 * time.Second

	// DefaultTokenTimeout bounds one token issuance
	DefaultTokenTimeout = 10 * time.Second

	// tokenCacheSize bounds the number of (city, lang) tokens kept in memory
	tokenCacheSize = 256

	// expirySkew is subtracted from a token's own exp claim
	expirySkew = 10 * time.Second
)

// ManagerConfig configures the session manager
type ManagerConfig struct {
	Provider     string
	TokenTTL     time.Duration
	TokenTimeout time.Duration
}

// StoreSessionInput is the credential material captured by an interactive login
type StoreSessionInput struct {
	HolderID   string
	Credential string
	Region     *string
	AppID      *string
}

type cachedToken struct {
	value     string
	expiresAt time.Time
}

// Manager owns the provider session and hands out access tokens per (city, lang).
// It is safe for concurrent use.
type Manager struct {
	cfg    ManagerConfig
	store  store.Store
	issuer TokenIssuer
	cipher adapter.Cipher
	clock  adapter.Clock

	tokens *expirable.LRU[string, cachedToken]
	flight singleflight.Group
}

// NewManager creates a new session manager
func NewManager(cfg ManagerConfig, st store.Store, issuer TokenIssuer, cipher adapter.Cipher, clock adapter.Clock) *Manager {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if cfg.Provider == "" {
		cfg.Provider = domain.DEFAULT_PROVIDER
	}
	if cfg.TokenTimeout <= 0 {
		cfg.TokenTimeout = DefaultTokenTimeout
	}

	return &Manager{
		cfg:    cfg,
		store:  st,
		issuer: issuer,
		cipher: cipher,
		clock:  clock,
		tokens: expirable.NewLRU[string, cachedToken](tokenCacheSize, nil, cfg.TokenTTL),
	}
}

// EnsureSession returns the active session if it holds a usable credential
func (m *Manager) EnsureSession(ctx context.Context) (*schema.Session, error) {
	session, _, err := m.activeCredential(ctx)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// StoreSessionFromCredential encrypts the credential and makes it the single active session
func (m *Manager) StoreSessionFromCredential(ctx context.Context, input StoreSessionInput) (*schema.Session, error) {
	if strings.TrimSpace(input.Credential) == "" {
		return nil, fmt.Errorf("%w: credential is empty", domain.ErrConfiguration)
	}
	if strings.TrimSpace(input.HolderID) == "" {
		return nil, fmt.Errorf("%w: holder id is empty", domain.ErrConfiguration)
	}

	encrypted, err := m.cipher.Encrypt(input.Credential)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt credential: %w", err)
	}

	session, err := m.store.UpsertActiveSession(ctx, store.UpsertSessionInput{
		Provider:            m.cfg.Provider,
		HolderID:            input.HolderID,
		EncryptedCredential: encrypted,
		Region:              input.Region,
		AppID:               input.AppID,
		LoginAt:             m.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	// Tokens minted from a previous credential are no longer trusted
	m.tokens.Purge()

	logger.InfoCtx(ctx, "Stored provider session",
		zap.String("provider", m.cfg.Provider),
		zap.String("sessionID", session.ID))

	return session, nil
}

// GetAccessToken returns a cached token for the locale or issues a new one.
// Concurrent callers for the same locale share a single issuance.
func (m *Manager) GetAccessToken(ctx context.Context, locale domain.Locale) (string, error) {
	if strings.TrimSpace(locale.City) == "" {
		return "", fmt.Errorf("%w: city is required to obtain an access token", domain.ErrConfiguration)
	}

	key := locale.Key()
	if token, ok := m.cached(key); ok {
		return token, nil
	}

	// The shared issuance outlives any single caller; each caller only stops waiting on its own ctx.
	issueCtx := context.WithoutCancel(ctx)
	ch := m.flight.DoChan(key, func() (interface{}, error) {
		if token, ok := m.cached(key); ok {
			return token, nil
		}
		return m.issue(issueCtx, locale)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// Invalidate drops the cached token for the locale so the next call issues a fresh one
func (m *Manager) Invalidate(locale domain.Locale) {
	key := locale.Key()
	m.tokens.Remove(key)
	m.flight.Forget(key)
}

func (m *Manager) cached(key string) (string, bool) {
	token, ok := m.tokens.Get(key)
	if !ok {
		return "", false
	}
	if !m.clock.Now().Before(token.expiresAt) {
		m.tokens.Remove(key)
		return "", false
	}
	return token.value, true
}

func (m *Manager) issue(ctx context.Context, locale domain.Locale) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.cfg.TokenTimeout)
	defer cancel()

	session, credential, err := m.activeCredential(ctx)
	if err != nil {
		return "", err
	}

	issued, err := m.issuer.IssueToken(ctx, TokenRequest{
		Credential: credential,
		Locale:     locale,
		Region:     session.Region,
		AppID:      session.AppID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCredentialRejected) {
			logger.WarnCtx(ctx, "Provider rejected stored credential, deactivating session",
				zap.String("sessionID", session.ID),
				zap.String("locale", locale.Key()))

			if derr := m.store.DeactivateSession(ctx, session.ID); derr != nil {
				logger.ErrorCtx(ctx, derr, zap.String("sessionID", session.ID))
			}
			m.tokens.Purge()

			return "", fmt.Errorf("%w: %w", domain.ErrNotAuthenticated, err)
		}

		if errors.Is(err, domain.ErrTransientProvider) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", domain.ErrTransientProvider, err)
	}

	now := m.clock.Now()
	expiresAt := now.Add(m.cfg.TokenTTL)
	if issued.ExpiresIn > 0 && now.Add(issued.ExpiresIn-expirySkew).Before(expiresAt) {
		expiresAt = now.Add(issued.ExpiresIn - expirySkew)
	}
	if exp, ok := jwtExpiry(issued.AccessToken); ok && exp.Add(-expirySkew).Before(expiresAt) {
		expiresAt = exp.Add(-expirySkew)
	}
	if expiresAt.After(now) {
		m.tokens.Add(locale.Key(), cachedToken{value: issued.AccessToken, expiresAt: expiresAt})
	}

	if err := m.store.TouchSessionTokenIssued(ctx, session.ID, now); err != nil {
		logger.WarnCtx(ctx, "Failed to record token issuance",
			zap.String("sessionID", session.ID),
			zap.Error(err))
	}

	return issued.AccessToken, nil
}

// activeCredential loads the active session and decrypts its credential.
// A missing session, a cleared credential or an undecryptable one all mean
// there is nothing to authenticate with.
func (m *Manager) activeCredential(ctx context.Context) (*schema.Session, string, error) {
	session, err := m.store.GetActiveSession(ctx, m.cfg.Provider)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load active session: %w", err)
	}
	if session == nil {
		return nil, "", fmt.Errorf("%w: no active session for %s", domain.ErrNotAuthenticated, m.cfg.Provider)
	}
	if !session.HasCredential() {
		return nil, "", fmt.Errorf("%w: no usable credential for %s", domain.ErrNotAuthenticated, m.cfg.Provider)
	}

	credential, err := m.cipher.Decrypt(*session.EncryptedCredential)
	if err != nil {
		logger.WarnCtx(ctx, "Stored credential could not be decrypted",
			zap.String("sessionID", session.ID),
			zap.Error(err))
		return nil, "", fmt.Errorf("%w: stored credential is unreadable", domain.ErrNotAuthenticated)
	}

	return session, credential, nil
}

// jwtExpiry reads the exp claim without verifying the signature
func jwtExpiry(token string) (time.Time, bool) {
	if strings.Count(token, ".") != 2 {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
