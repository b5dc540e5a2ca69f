// Package drift records transitions of provider endpoint contracts.
package drift

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/realtysync/provider-sync/internal/adapter"
	"github.com/realtysync/provider-sync/internal/canonical"
	"github.com/realtysync/provider-sync/internal/domain"
	"github.com/realtysync/provider-sync/internal/logger"
	"github.com/realtysync/provider-sync/internal/store"
	"github.com/realtysync/provider-sync/internal/store/schema"
)

// Observation is one decoded response of an endpoint
type Observation struct {
	Endpoint string
	Locale   domain.Locale
	Payload  interface{}
	// Hash overrides the shape hash of Payload when set
	Hash string
	// PayloadCacheID links a recorded change to the raw payload that triggered it
	PayloadCacheID *uint64
}

// Detector compares observed contracts with the last persisted state
type Detector struct {
	store  store.Store
	hasher *canonical.Hasher
	clock  adapter.Clock
}

// NewDetector creates a new drift detector
func NewDetector(st store.Store, hasher *canonical.Hasher, clock adapter.Clock) *Detector {
	return &Detector{
		store:  st,
		hasher: hasher,
		clock:  clock,
	}
}

// Detect records a ContractChange when the observed hash differs from the stored one.
// The first observation of a key only bootstraps its state. Returns the change, or nil.
func (d *Detector) Detect(ctx context.Context, obs Observation) (*schema.ContractChange, error) {
	if obs.Endpoint == "" {
		return nil, nil
	}

	hash := obs.Hash
	if hash == "" {
		var err error
		hash, err = d.hasher.ShapeHash(obs.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to hash payload shape: %w", err)
		}
	}

	change, err := d.store.ObserveContract(ctx, store.ObserveContractInput{
		Endpoint:       obs.Endpoint,
		Locale:         obs.Locale,
		Hash:           hash,
		TopKeys:        canonical.TopLevelKeys(obs.Payload),
		DataKeys:       canonical.DataKeys(obs.Payload),
		PayloadCacheID: obs.PayloadCacheID,
		ObservedAt:     d.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to observe contract: %w", err)
	}

	if change != nil {
		logger.WarnCtx(ctx, "Provider contract changed",
			zap.String("endpoint", obs.Endpoint),
			zap.String("locale", obs.Locale.Key()),
			zap.String("oldHash", change.OldHash),
			zap.String("newHash", change.NewHash),
			zap.Strings("oldTopKeys", change.OldTopKeys),
			zap.Strings("newTopKeys", change.NewTopKeys))
	}

	return change, nil
}
