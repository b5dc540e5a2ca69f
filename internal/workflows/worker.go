package workflows

import (
	"time"

	"go.temporal.io/sdk/workflow"

	"github.com/realtysync/provider-sync/internal/alert"
	"github.com/realtysync/provider-sync/internal/domain"
)

// WorkerCore defines the recurring pipeline jobs
//
//go:generate mockgen -source=worker.go -destination=../mocks/worker_core.go -package=mocks -mock_names=WorkerCore=MockCoreWorker
type WorkerCore interface {
	// SyncList runs one list sync per (scope, locale)
	SyncList(ctx workflow.Context, input SyncListInput) (*SyncListResult, error)

	// SyncDetails runs a detail sync for the most recently updated entities of every locale
	SyncDetails(ctx workflow.Context, input SyncDetailsInput) (*SyncDetailsResult, error)

	// RunQuality evaluates the data quality rules of every scope
	RunQuality(ctx workflow.Context, input QualityInput) (*QualityResult, error)

	// CheckAlerts flushes the quiet-hours rollup and notifies live failure conditions
	CheckAlerts(ctx workflow.Context) (*alert.CheckReport, error)
}

// WorkerCoreConfig holds the defaults applied to empty workflow inputs
type WorkerCoreConfig struct {
	// Locales are the (city, lang) pairs synced when an input names none
	Locales []domain.Locale
	// ListTimeout bounds one list sync activity
	ListTimeout time.Duration
	// DetailTimeout bounds one detail sync activity
	DetailTimeout time.Duration
	// DetailLimit is how many recent entities get a detail sync per locale
	DetailLimit int
	// DetailConcurrency bounds the detail activities in flight
	DetailConcurrency int
	// QualityLimit is how many recent entities of a scope are checked
	QualityLimit int
	// QualityCap bounds the quality records written per run
	QualityCap int
	// StoreRaw keeps raw payloads and feeds drift detection
	StoreRaw bool
}

// SyncListInput is the input of the SyncList workflow
type SyncListInput struct {
	Scopes   []domain.Scope  `json:"scopes,omitempty"`
	Locales  []domain.Locale `json:"locales,omitempty"`
	StoreRaw *bool           `json:"store_raw,omitempty"`
}

// SyncListResult summarizes a SyncList workflow
type SyncListResult struct {
	Runs   []RunSummary `json:"runs"`
	Failed int          `json:"failed"`
}

// SyncDetailsInput is the input of the SyncDetails workflow
type SyncDetailsInput struct {
	Scope       domain.Scope    `json:"scope,omitempty"`
	Locales     []domain.Locale `json:"locales,omitempty"`
	Limit       int             `json:"limit,omitempty"`
	Concurrency int             `json:"concurrency,omitempty"`
	StoreRaw    *bool           `json:"store_raw,omitempty"`
}

// SyncDetailsResult summarizes a SyncDetails workflow
type SyncDetailsResult struct {
	Entities  int `json:"entities"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// QualityInput is the input of the RunQuality workflow
type QualityInput struct {
	Scopes []domain.Scope `json:"scopes,omitempty"`
	Limit  int            `json:"limit,omitempty"`
	Cap    int            `json:"cap,omitempty"`
}

// QualityResult summarizes a RunQuality workflow
type QualityResult struct {
	Written map[domain.Scope]int `json:"written"`
	Total   int                  `json:"total"`
}

// workerCore is the concrete implementation of WorkerCore
type workerCore struct {
	config   WorkerCoreConfig
	executor Executor
}

// NewWorkerCore creates a new worker core instance
func NewWorkerCore(executor Executor, config WorkerCoreConfig) WorkerCore {
	if config.ListTimeout <= 0 {
		config.ListTimeout = 10 * time.Minute
	}
	if config.DetailTimeout <= 0 {
		config.DetailTimeout = 2 * time.Minute
	}
	if config.DetailLimit <= 0 {
		config.DetailLimit = 50
	}
	if config.DetailConcurrency <= 0 {
		config.DetailConcurrency = 4
	}
	if config.QualityLimit <= 0 {
		config.QualityLimit = 500
	}
	if config.QualityCap <= 0 {
		config.QualityCap = 2000
	}

	return &workerCore{
		executor: executor,
		config:   config,
	}
}

func (w *workerCore) locales(requested []domain.Locale) []domain.Locale {
	if len(requested) > 0 {
		return requested
	}
	if len(w.config.Locales) > 0 {
		return w.config.Locales
	}
	// An empty locale lets the orchestrator apply its default city and lang
	return []domain.Locale{{}}
}

func (w *workerCore) storeRaw(requested *bool) bool {
	if requested != nil {
		return *requested
	}
	return w.config.StoreRaw
}
