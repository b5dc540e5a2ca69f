package domain

import "fmt"

// Scope is a named category of synchronized entity
type Scope string

const (
	ScopeBlocks      Scope = "blocks"
	ScopeApartments  Scope = "apartments"
	ScopeBlockDetail Scope = "block_detail"
)

// IsValidScope checks if a scope is one of the known scopes
func IsValidScope(scope Scope) bool {
	return scope == ScopeBlocks ||
		scope == ScopeApartments ||
		scope == ScopeBlockDetail
}

// RunStatus is the lifecycle state of a sync run
type RunStatus string

const (
	RunStatusRunning RunStatus = "running"
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
)

// IsTerminal reports whether the status can no longer change
func (s RunStatus) IsTerminal() bool {
	return s == RunStatusSuccess || s == RunStatusFailed
}

// CheckStatus is the outcome of one data quality rule evaluation
type CheckStatus string

const (
	CheckStatusPass CheckStatus = "pass"
	CheckStatusWarn CheckStatus = "warn"
	CheckStatusFail CheckStatus = "fail"
)

// Locale identifies the (city, lang) pair that scopes provider data
type Locale struct {
	City string `json:"city"`
	Lang string `json:"lang"`
}

// Key returns a stable cache key for the locale
func (l Locale) Key() string {
	return fmt.Sprintf("%s:%s", l.City, l.Lang)
}
