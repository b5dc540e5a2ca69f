// Package syncer fetches provider endpoints page by page, normalizes the items,
// upserts them and records one SyncRun per attempt.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/realtysync/provider-sync/internal/adapter"
	"github.com/realtysync/provider-sync/internal/canonical"
	"github.com/realtysync/provider-sync/internal/domain"
	"github.com/realtysync/provider-sync/internal/drift"
	"github.com/realtysync/provider-sync/internal/logger"
	"github.com/realtysync/provider-sync/internal/provider"
	"github.com/realtysync/provider-sync/internal/sanitize"
	"github.com/realtysync/provider-sync/internal/store"
	"github.com/realtysync/provider-sync/internal/store/schema"
)

const (
	defaultMaxPages          = 50
	defaultPageSize          = 100
	defaultDetailConcurrency = 4
	defaultPageParam         = "page"
	defaultSizeParam         = "per_page"

	finishMaxRetries = 3
)

// Config configures the orchestrator
type Config struct {
	Provider          string
	DefaultCity       string
	DefaultLang       string
	MaxPages          int
	PageSize          int
	PageParam         string
	SizeParam         string
	DetailConcurrency int
	MaxErrorLength    int
	// ContentHashDrift compares full payload hashes instead of shape skeletons
	ContentHashDrift bool
}

// ListRequest asks for one list sync
type ListRequest struct {
	Scope    domain.Scope
	Locale   domain.Locale
	Params   map[string]string
	StoreRaw bool
}

// DetailRequest asks for one detail sync of a single entity
type DetailRequest struct {
	Scope    domain.Scope
	EntityID string
	Locale   domain.Locale
	StoreRaw bool
}

// Syncer orchestrates list and detail syncs
type Syncer struct {
	cfg       Config
	registry  *Registry
	client    provider.Client
	store     store.Store
	detector  *drift.Detector
	hasher    *canonical.Hasher
	json      adapter.JSON
	clock     adapter.Clock
	sanitizer *sanitize.Sanitizer
	pool      pond.Pool
}

// NewSyncer creates a new orchestrator. Call Close to release the detail worker pool.
func NewSyncer(
	cfg Config,
	registry *Registry,
	client provider.Client,
	st store.Store,
	detector *drift.Detector,
	hasher *canonical.Hasher,
	json adapter.JSON,
	clock adapter.Clock,
	sanitizer *sanitize.Sanitizer,
) *Syncer {
	if cfg.Provider == "" {
		cfg.Provider = domain.DEFAULT_PROVIDER
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = defaultMaxPages
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.PageParam == "" {
		cfg.PageParam = defaultPageParam
	}
	if cfg.SizeParam == "" {
		cfg.SizeParam = defaultSizeParam
	}
	if cfg.DetailConcurrency <= 0 {
		cfg.DetailConcurrency = defaultDetailConcurrency
	}
	if cfg.MaxErrorLength <= 0 {
		cfg.MaxErrorLength = sanitize.DefaultMaxLength
	}
	if registry == nil {
		registry = DefaultRegistry()
	}
	if sanitizer == nil {
		sanitizer = sanitize.Default()
	}

	return &Syncer{
		cfg:       cfg,
		registry:  registry,
		client:    client,
		store:     st,
		detector:  detector,
		hasher:    hasher,
		json:      json,
		clock:     clock,
		sanitizer: sanitizer,
		pool:      pond.NewPool(cfg.DetailConcurrency),
	}
}

// Close stops the detail worker pool after in-flight fetches complete
func (s *Syncer) Close() {
	s.pool.StopAndWait()
}

// outcome is the terminal update of a run
type outcome struct {
	status          domain.RunStatus
	fetched         int
	saved           int
	endpointsOK     *int
	endpointsFailed *int
	err             error
	details         map[string]any
}

// SyncList paginates a list endpoint and upserts every item with a resolvable business key.
// A fetch failure ends the run as failed; the returned error is reserved for
// failures that prevented recording the run at all.
func (s *Syncer) SyncList(ctx context.Context, req ListRequest) (*schema.SyncRun, error) {
	scope, err := s.registry.List(req.Scope)
	if err != nil {
		return nil, err
	}
	locale, err := s.resolveLocale(req.Locale)
	if err != nil {
		return nil, err
	}

	run, err := s.startRun(ctx, scope.Scope, locale, nil)
	if err != nil {
		return nil, err
	}

	probes := scope.Probes
	if len(probes) == 0 {
		probes = DefaultProbes(scope.ItemKey)
	}

	var fetched, saved int
	for page := 1; page <= s.cfg.MaxPages; page++ {
		doc, resp, err := s.fetch(ctx, provider.Request{
			Path:  scope.Path,
			Query: s.pageQuery(req.Params, locale, page),
		})
		if err != nil {
			return s.finish(ctx, run, outcome{
				status:  domain.RunStatusFailed,
				fetched: fetched,
				saved:   saved,
				err:     err,
				details: map[string]any{"endpoint": scope.Path, "page": page},
			})
		}

		if req.StoreRaw {
			s.capture(ctx, scope.Scope, nil, resp, doc)
		}

		items, probe, ok := DetectItems(doc, probes)
		if !ok {
			if page == 1 {
				return s.finish(ctx, run, outcome{
					status:  domain.RunStatusFailed,
					fetched: fetched,
					saved:   saved,
					err:     fmt.Errorf("%w: %s page %d", domain.ErrShapeDetection, scope.Path, page),
					details: map[string]any{
						"endpoint": scope.Path,
						"page":     page,
						"top_keys": canonical.TopLevelKeys(doc),
					},
				})
			}
			break
		}
		if len(items) == 0 {
			break
		}

		pageSaved := 0
		for _, raw := range items {
			fetched++
			if s.saveItem(ctx, scope, locale, raw) {
				pageSaved++
			}
		}
		saved += pageSaved

		logger.DebugCtx(ctx, "Synced page",
			zap.String("runID", run.RunID),
			zap.String("scope", string(scope.Scope)),
			zap.Int("page", page),
			zap.String("shape", probe),
			zap.Int("items", len(items)),
			zap.Int("saved", pageSaved))
	}

	return s.finish(ctx, run, outcome{
		status:  domain.RunStatusSuccess,
		fetched: fetched,
		saved:   saved,
	})
}

// SyncDetail fetches the sub-endpoints of one entity and upserts the composed snapshot.
// The required sub-endpoint failing fails the run without writing; optional ones
// failing leave their section null.
func (s *Syncer) SyncDetail(ctx context.Context, req DetailRequest) (*schema.SyncRun, error) {
	if req.Scope == "" {
		req.Scope = domain.ScopeBlockDetail
	}
	plan, err := s.registry.Detail(req.Scope)
	if err != nil {
		return nil, err
	}
	entityID := strings.TrimSpace(req.EntityID)
	if entityID == "" {
		return nil, fmt.Errorf("%w: entity id is required for a detail sync", domain.ErrConfiguration)
	}
	locale, err := s.resolveLocale(req.Locale)
	if err != nil {
		return nil, err
	}

	run, err := s.startRun(ctx, plan.Scope, locale, &entityID)
	if err != nil {
		return nil, err
	}

	okCount, failedCount := 0, 0
	sections := make(map[string]datatypes.JSON, 1+len(plan.Optional))
	docs := make(map[string]interface{}, 1+len(plan.Optional))

	doc, resp, err := s.fetch(ctx, s.subRequest(plan.Required, entityID, locale))
	if err != nil {
		failedCount++
		return s.finish(ctx, run, outcome{
			status:          domain.RunStatusFailed,
			endpointsOK:     &okCount,
			endpointsFailed: &failedCount,
			err:             fmt.Errorf("%w: %s: %w", domain.ErrRequiredEndpoint, plan.Required.Name, err),
			details:         map[string]any{"endpoint": plan.Required.Path, "entity_id": entityID},
		})
	}
	okCount++
	sections[plan.Required.Name] = datatypes.JSON(resp.Body)
	docs[plan.Required.Name] = doc
	if req.StoreRaw {
		s.capture(ctx, plan.Scope, &entityID, resp, doc)
	}

	type subResult struct {
		doc  interface{}
		resp *provider.Response
		err  error
	}
	results := make([]subResult, len(plan.Optional))
	group := s.pool.NewGroup()
	for i, sub := range plan.Optional {
		group.Submit(func() {
			doc, resp, err := s.fetch(ctx, s.subRequest(sub, entityID, locale))
			results[i] = subResult{doc: doc, resp: resp, err: err}
		})
	}
	if err := group.Wait(); err != nil {
		logger.WarnCtx(ctx, "Optional endpoint group failed", zap.Error(err))
	}

	for i, sub := range plan.Optional {
		r := results[i]
		if r.err == nil && r.resp == nil {
			r.err = errors.New("fetch did not complete")
		}
		if r.err != nil {
			failedCount++
			logger.WarnCtx(ctx, "Optional endpoint failed",
				zap.String("runID", run.RunID),
				zap.String("endpoint", sub.Name),
				zap.String("entityID", entityID),
				zap.Error(r.err))
			continue
		}

		okCount++
		sections[sub.Name] = datatypes.JSON(r.resp.Body)
		docs[sub.Name] = r.doc
		if req.StoreRaw {
			s.capture(ctx, plan.Scope, &entityID, r.resp, r.doc)
		}
	}

	hash, err := s.hasher.Hash(docs)
	if err == nil {
		err = plan.Save(ctx, s.store, DetailSnapshot{
			EntityID:    entityID,
			Locale:      locale,
			Sections:    sections,
			PayloadHash: hash,
			FetchedAt:   s.clock.Now(),
		})
	}
	if err != nil {
		return s.finish(ctx, run, outcome{
			status:          domain.RunStatusFailed,
			fetched:         1,
			endpointsOK:     &okCount,
			endpointsFailed: &failedCount,
			err:             fmt.Errorf("failed to save detail: %w", err),
			details:         map[string]any{"entity_id": entityID},
		})
	}

	return s.finish(ctx, run, outcome{
		status:          domain.RunStatusSuccess,
		fetched:         1,
		saved:           1,
		endpointsOK:     &okCount,
		endpointsFailed: &failedCount,
	})
}

func (s *Syncer) resolveLocale(locale domain.Locale) (domain.Locale, error) {
	locale.City = strings.TrimSpace(locale.City)
	locale.Lang = strings.TrimSpace(locale.Lang)
	if locale.City == "" {
		locale.City = s.cfg.DefaultCity
	}
	if locale.Lang == "" {
		locale.Lang = s.cfg.DefaultLang
	}
	if locale.City == "" {
		return locale, fmt.Errorf("%w: city is required", domain.ErrConfiguration)
	}
	return locale, nil
}

func (s *Syncer) startRun(ctx context.Context, scope domain.Scope, locale domain.Locale, entityID *string) (*schema.SyncRun, error) {
	now := s.clock.Now()
	run, err := s.store.CreateSyncRun(ctx, store.CreateSyncRunInput{
		RunID:     ulid.MustNewDefault(now).String(),
		Provider:  s.cfg.Provider,
		Scope:     scope,
		Locale:    locale,
		EntityID:  entityID,
		StartedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start sync run: %w", err)
	}

	logger.InfoCtx(ctx, "Sync run started",
		zap.String("runID", run.RunID),
		zap.String("scope", string(scope)),
		zap.String("locale", locale.Key()))

	return run, nil
}

// finish applies the terminal update, retrying storage errors so a run is not left running
func (s *Syncer) finish(ctx context.Context, run *schema.SyncRun, o outcome) (*schema.SyncRun, error) {
	input := store.FinishSyncRunInput{
		RunID:           run.RunID,
		Status:          o.status,
		FinishedAt:      s.clock.Now(),
		ItemsFetched:    o.fetched,
		ItemsSaved:      o.saved,
		EndpointsOK:     o.endpointsOK,
		EndpointsFailed: o.endpointsFailed,
	}

	if o.err != nil {
		message := s.sanitizer.MessageN(o.err.Error(), s.cfg.MaxErrorLength)
		code := domain.ErrorCode(o.err)
		input.ErrorMessage = &message
		input.ErrorCode = &code

		details := s.sanitizer.MaskContext(o.details)
		if len(details) > 0 {
			if raw, err := s.json.Marshal(details); err == nil {
				input.ErrorContext = raw
			}
		}
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	operation := func() error {
		err := s.store.FinishSyncRun(ctx, input)
		if errors.Is(err, store.ErrRunNotRunning) {
			return backoff.Permanent(err)
		}
		return err
	}
	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(b, finishMaxRetries), ctx)); err != nil {
		return nil, fmt.Errorf("failed to finish sync run %s: %w", run.RunID, err)
	}

	run.Status = input.Status
	run.FinishedAt = &input.FinishedAt
	run.ItemsFetched = input.ItemsFetched
	run.ItemsSaved = input.ItemsSaved
	run.EndpointsOK = input.EndpointsOK
	run.EndpointsFailed = input.EndpointsFailed
	run.ErrorMessage = input.ErrorMessage
	run.ErrorContext = input.ErrorContext
	run.ErrorCode = input.ErrorCode

	fields := []zap.Field{
		zap.String("runID", run.RunID),
		zap.String("scope", string(run.Scope)),
		zap.String("status", string(run.Status)),
		zap.Int("itemsFetched", run.ItemsFetched),
		zap.Int("itemsSaved", run.ItemsSaved),
	}
	if o.err != nil {
		logger.WarnCtx(ctx, "Sync run failed", append(fields, zap.String("error", *input.ErrorMessage))...)
	} else {
		logger.InfoCtx(ctx, "Sync run finished", fields...)
	}

	return run, nil
}

// fetch performs one provider call and decodes a 2xx JSON body
func (s *Syncer) fetch(ctx context.Context, req provider.Request) (interface{}, *provider.Response, error) {
	resp, err := s.client.Get(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	if !resp.OK() {
		return nil, nil, fmt.Errorf("%w: %s returned %d", domain.ErrTransientProvider, resp.Endpoint, resp.Status)
	}

	var doc interface{}
	if err := s.json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %s returned malformed JSON: %w", domain.ErrTransientProvider, resp.Endpoint, err)
	}
	return doc, resp, nil
}

// capture appends the raw payload and feeds the drift detector. Failures are logged only.
func (s *Syncer) capture(ctx context.Context, scope domain.Scope, externalID *string, resp *provider.Response, doc interface{}) {
	hash, err := s.hasher.Hash(doc)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to hash payload", zap.String("endpoint", resp.Endpoint), zap.Error(err))
		return
	}

	var cacheID *uint64
	cached, err := s.store.CreatePayloadCache(ctx, store.CreatePayloadCacheInput{
		Provider:    s.cfg.Provider,
		Scope:       scope,
		ExternalID:  externalID,
		Endpoint:    resp.Endpoint,
		HTTPStatus:  resp.Status,
		Locale:      resp.Locale,
		Payload:     datatypes.JSON(resp.Body),
		PayloadHash: hash,
		FetchedAt:   s.clock.Now(),
	})
	if err != nil {
		logger.WarnCtx(ctx, "Failed to cache payload", zap.String("endpoint", resp.Endpoint), zap.Error(err))
	} else {
		cacheID = &cached.ID
	}

	if s.detector == nil {
		return
	}
	obs := drift.Observation{
		Endpoint:       resp.Endpoint,
		Locale:         resp.Locale,
		Payload:        doc,
		PayloadCacheID: cacheID,
	}
	if s.cfg.ContentHashDrift {
		obs.Hash = hash
	}
	if _, err := s.detector.Detect(ctx, obs); err != nil {
		logger.WarnCtx(ctx, "Drift detection failed", zap.String("endpoint", resp.Endpoint), zap.Error(err))
	}
}

// saveItem normalizes and upserts one raw item, reporting whether it was stored
func (s *Syncer) saveItem(ctx context.Context, scope ListScope, locale domain.Locale, raw interface{}) bool {
	item, ok := raw.(map[string]interface{})
	if !ok {
		logger.DebugCtx(ctx, "Dropping non-object item", zap.String("scope", string(scope.Scope)))
		return false
	}

	rawJSON, err := s.json.Marshal(item)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to encode raw item", zap.String("scope", string(scope.Scope)), zap.Error(err))
		return false
	}
	hash, err := s.hasher.Hash(item)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to hash raw item", zap.String("scope", string(scope.Scope)), zap.Error(err))
		return false
	}

	persisted, err := scope.Save(ctx, s.store, s.json, store.EntityRecord{
		Locale:      locale,
		Raw:         rawJSON,
		PayloadHash: hash,
	}, item)
	if err != nil {
		if errors.Is(err, errNoBusinessKey) {
			logger.DebugCtx(ctx, "Dropping item without business key", zap.String("scope", string(scope.Scope)))
		} else {
			logger.WarnCtx(ctx, "Failed to save item", zap.String("scope", string(scope.Scope)), zap.Error(err))
		}
		return false
	}

	logger.DebugCtx(ctx, "Saved item",
		zap.String("scope", string(scope.Scope)),
		zap.String("externalID", persisted.ExternalID))
	return true
}

func (s *Syncer) pageQuery(params map[string]string, locale domain.Locale, page int) map[string]string {
	query := make(map[string]string, len(params)+4)
	for k, v := range params {
		query[k] = v
	}
	query[s.cfg.PageParam] = strconv.Itoa(page)
	query[s.cfg.SizeParam] = strconv.Itoa(s.cfg.PageSize)
	query[domain.QUERY_CITY] = locale.City
	if locale.Lang != "" {
		query[domain.QUERY_LANG] = locale.Lang
	}
	return query
}

func (s *Syncer) subRequest(sub SubEndpoint, entityID string, locale domain.Locale) provider.Request {
	query := map[string]string{domain.QUERY_CITY: locale.City}
	if locale.Lang != "" {
		query[domain.QUERY_LANG] = locale.Lang
	}
	return provider.Request{
		Path:     strings.ReplaceAll(sub.Path, "{id}", url.PathEscape(entityID)),
		Endpoint: sub.Path,
		Query:    query,
	}
}
