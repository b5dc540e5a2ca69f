package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/realtysync/provider-sync/internal/adapter"
	"github.com/realtysync/provider-sync/internal/domain"
)

// TokenRequest carries what the provider needs to mint an access token
type TokenRequest struct {
	Credential string
	Locale     domain.Locale
	Region     *string
	AppID      *string
}

// IssuedToken is an access token returned by the provider
type IssuedToken struct {
	AccessToken string
	// ExpiresIn is the lifetime announced by the provider, zero when absent
	ExpiresIn time.Duration
}

// TokenIssuer exchanges the long-lived credential for a short-lived access token.
// A 401/403 answer must be reported as domain.ErrCredentialRejected; anything
// else that prevents issuance as domain.ErrTransientProvider.
//
//go:generate mockgen -source=issuer.go -destination=../mocks/token_issuer.go -package=mocks -mock_names=TokenIssuer=MockTokenIssuer
type TokenIssuer interface {
	IssueToken(ctx context.Context, req TokenRequest) (*IssuedToken, error)
}

type httpTokenIssuer struct {
	client   adapter.HTTPClient
	json     adapter.JSON
	endpoint string
}

// NewHTTPTokenIssuer creates a token issuer posting to baseURL+tokenPath
func NewHTTPTokenIssuer(client adapter.HTTPClient, json adapter.JSON, baseURL, tokenPath string) TokenIssuer {
	return &httpTokenIssuer{
		client:   client,
		json:     json,
		endpoint: strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(tokenPath, "/"),
	}
}

type tokenRequestBody struct {
	RefreshToken string  `json:"refresh_token"`
	CityID       string  `json:"city_id"`
	Lang         string  `json:"lang,omitempty"`
	Region       *string `json:"region,omitempty"`
	AppID        *string `json:"app_id,omitempty"`
}

type tokenResponseBody struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	Data        *struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	} `json:"data"`
}

func (i *httpTokenIssuer) IssueToken(ctx context.Context, req TokenRequest) (*IssuedToken, error) {
	resp, err := i.client.PostJSON(ctx, i.endpoint, nil, tokenRequestBody{
		RefreshToken: req.Credential,
		CityID:       req.Locale.City,
		Lang:         req.Locale.Lang,
		Region:       req.Region,
		AppID:        req.AppID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: token request failed: %w", domain.ErrTransientProvider, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: token endpoint returned %d", domain.ErrCredentialRejected, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: token endpoint returned %d", domain.ErrTransientProvider, resp.StatusCode)
	}

	var body tokenResponseBody
	if err := i.json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode token response: %w", domain.ErrTransientProvider, err)
	}

	token, expiresIn := body.AccessToken, body.ExpiresIn
	if token == "" && body.Data != nil {
		token, expiresIn = body.Data.AccessToken, body.Data.ExpiresIn
	}
	if token == "" {
		return nil, fmt.Errorf("%w: token response has no access_token", domain.ErrTransientProvider)
	}

	return &IssuedToken{
		AccessToken: token,
		ExpiresIn:   time.Duration(expiresIn) * time.Second,
	}, nil
}
