// Package provider wraps outbound calls to the listing provider with an access
// token and recovers from a rejected token by refreshing it and retrying once.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/realtysync/provider-sync/internal/adapter"
	"github.com/realtysync/provider-sync/internal/domain"
	"github.com/realtysync/provider-sync/internal/logger"
	"github.com/realtysync/provider-sync/internal/ratelimit"
)

// TokenSource hands out access tokens per locale
//
//go:generate mockgen -source=client.go -destination=../mocks/provider.go -package=mocks -mock_names=TokenSource=MockTokenSource,Client=MockProviderClient
type TokenSource interface {
	GetAccessToken(ctx context.Context, locale domain.Locale) (string, error)
	Invalidate(locale domain.Locale)
}

// Request describes one provider call
type Request struct {
	// Path is appended to the base URL, e.g. /blocks/42/unified
	Path string
	// Endpoint is the path template used to key contract state, e.g. /blocks/{id}/unified.
	// Defaults to Path.
	Endpoint string
	// Query parameters; city_id and lang fall back to the configured defaults
	Query map[string]string
}

// Response is a provider answer that was not an authorization failure
type Response struct {
	Status   int
	Body     []byte
	Endpoint string
	Locale   domain.Locale
}

// OK reports whether the status is 2xx
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status <= 299
}

// Client performs authenticated provider calls
type Client interface {
	// Get performs an authenticated GET
	Get(ctx context.Context, req Request) (*Response, error)
	// PostJSON performs an authenticated POST with a JSON body
	PostJSON(ctx context.Context, req Request, body interface{}) (*Response, error)
}

// Config configures the provider client
type Config struct {
	Name        string
	BaseURL     string
	DefaultCity string
	DefaultLang string
}

type client struct {
	cfg     Config
	http    adapter.HTTPClient
	tokens  TokenSource
	limiter ratelimit.Limiter
}

// NewClient creates a provider client. limiter may be nil.
func NewClient(cfg Config, httpClient adapter.HTTPClient, tokens TokenSource, limiter ratelimit.Limiter) Client {
	if cfg.Name == "" {
		cfg.Name = domain.DEFAULT_PROVIDER
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &client{
		cfg:     cfg,
		http:    httpClient,
		tokens:  tokens,
		limiter: limiter,
	}
}

func (c *client) Get(ctx context.Context, req Request) (*Response, error) {
	return c.do(ctx, req, func(ctx context.Context, u string, headers map[string]string) (*adapter.HTTPResponse, error) {
		return c.http.Get(ctx, u, headers)
	})
}

func (c *client) PostJSON(ctx context.Context, req Request, body interface{}) (*Response, error) {
	return c.do(ctx, req, func(ctx context.Context, u string, headers map[string]string) (*adapter.HTTPResponse, error) {
		return c.http.PostJSON(ctx, u, headers, body)
	})
}

type sendFunc func(ctx context.Context, url string, headers map[string]string) (*adapter.HTTPResponse, error)

func (c *client) do(ctx context.Context, req Request, send sendFunc) (*Response, error) {
	locale, err := c.resolveLocale(req.Query)
	if err != nil {
		return nil, err
	}

	endpoint := req.Endpoint
	if endpoint == "" {
		endpoint = req.Path
	}
	target := c.buildURL(req.Path, req.Query, locale)

	resp, err := c.attempt(ctx, target, locale, send)
	if err != nil {
		return nil, err
	}

	if isAuthFailure(resp.StatusCode) {
		logger.WarnCtx(ctx, "Provider rejected access token, refreshing and retrying once",
			zap.String("endpoint", endpoint),
			zap.String("locale", locale.Key()),
			zap.Int("status", resp.StatusCode))

		c.tokens.Invalidate(locale)

		resp, err = c.attempt(ctx, target, locale, send)
		if err != nil {
			return nil, err
		}
		if isAuthFailure(resp.StatusCode) {
			return nil, fmt.Errorf("%w: %s returned %d after token refresh", domain.ErrAuthRejected, endpoint, resp.StatusCode)
		}
	}

	return &Response{
		Status:   resp.StatusCode,
		Body:     resp.Body,
		Endpoint: endpoint,
		Locale:   locale,
	}, nil
}

func (c *client) attempt(ctx context.Context, target string, locale domain.Locale, send sendFunc) (*adapter.HTTPResponse, error) {
	token, err := c.tokens.GetAccessToken(ctx, locale)
	if err != nil {
		return nil, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, c.cfg.Name); err != nil {
			return nil, fmt.Errorf("%w: rate limiter: %w", domain.ErrTransientProvider, err)
		}
	}

	headers := map[string]string{
		"Authorization": "Bearer " + token,
	}
	if locale.Lang != "" {
		headers["Accept-Language"] = locale.Lang
	}

	resp, err := send(ctx, target, headers)
	if err != nil {
		if errors.Is(err, domain.ErrTransientProvider) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrTransientProvider, err)
	}
	return resp, nil
}

func (c *client) resolveLocale(query map[string]string) (domain.Locale, error) {
	locale := domain.Locale{
		City: strings.TrimSpace(query[domain.QUERY_CITY]),
		Lang: strings.TrimSpace(query[domain.QUERY_LANG]),
	}
	if locale.City == "" {
		locale.City = c.cfg.DefaultCity
	}
	if locale.Lang == "" {
		locale.Lang = c.cfg.DefaultLang
	}
	if locale.City == "" {
		return locale, fmt.Errorf("%w: city is required for provider requests", domain.ErrConfiguration)
	}
	return locale, nil
}

func (c *client) buildURL(path string, query map[string]string, locale domain.Locale) string {
	values := url.Values{}
	for k, v := range query {
		values.Set(k, v)
	}
	values.Set(domain.QUERY_CITY, locale.City)
	if locale.Lang != "" {
		values.Set(domain.QUERY_LANG, locale.Lang)
	}

	return c.cfg.BaseURL + "/" + strings.TrimLeft(path, "/") + "?" + values.Encode()
}

func isAuthFailure(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}
