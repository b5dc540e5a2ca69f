package syncer

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/realtysync/provider-sync/internal/adapter"
	"github.com/realtysync/provider-sync/internal/domain"
	"github.com/realtysync/provider-sync/internal/store"
)

// Persisted is what a list scope hands back after normalizing an item
type Persisted struct {
	ExternalID string
}

// ListScope declares how one list endpoint is fetched and stored
type ListScope struct {
	Scope domain.Scope
	Path  string
	// ItemKey is the domain-specific array key probed after "items"
	ItemKey string
	// Probes overrides DefaultProbes(ItemKey) when set
	Probes []ShapeProbe
	// Save normalizes item and upserts it with the shared entity columns filled in rec
	Save func(ctx context.Context, st store.Store, json adapter.JSON, rec store.EntityRecord, item Item) (*Persisted, error)
}

// SubEndpoint is one named call of a detail plan
type SubEndpoint struct {
	Name string
	// Path template; {id} is replaced with the entity id
	Path string
}

// DetailSnapshot is the composed result of a detail plan
type DetailSnapshot struct {
	EntityID    string
	Locale      domain.Locale
	Sections    map[string]datatypes.JSON
	PayloadHash string
	FetchedAt   time.Time
}

// DetailPlan declares a detail sync composed of one required and several optional sub-endpoints
type DetailPlan struct {
	Scope    domain.Scope
	Required SubEndpoint
	Optional []SubEndpoint
	Save     func(ctx context.Context, st store.Store, snapshot DetailSnapshot) error
}

// Registry holds the known list scopes and detail plans
type Registry struct {
	lists   map[domain.Scope]ListScope
	details map[domain.Scope]DetailPlan
}

// NewRegistry creates a registry with the given scopes and plans
func NewRegistry(lists []ListScope, details []DetailPlan) *Registry {
	r := &Registry{
		lists:   make(map[domain.Scope]ListScope, len(lists)),
		details: make(map[domain.Scope]DetailPlan, len(details)),
	}
	for _, l := range lists {
		r.lists[l.Scope] = l
	}
	for _, d := range details {
		r.details[d.Scope] = d
	}
	return r
}

// DefaultRegistry registers blocks, apartments and block_detail
func DefaultRegistry() *Registry {
	return NewRegistry(
		[]ListScope{BlocksScope(), ApartmentsScope()},
		[]DetailPlan{BlockDetailPlan()},
	)
}

// List returns the list scope definition
func (r *Registry) List(scope domain.Scope) (ListScope, error) {
	l, ok := r.lists[scope]
	if !ok {
		return ListScope{}, fmt.Errorf("%w: %s is not a list scope", domain.ErrUnknownScope, scope)
	}
	return l, nil
}

// Detail returns the detail plan definition
func (r *Registry) Detail(scope domain.Scope) (DetailPlan, error) {
	d, ok := r.details[scope]
	if !ok {
		return DetailPlan{}, fmt.Errorf("%w: %s is not a detail scope", domain.ErrUnknownScope, scope)
	}
	return d, nil
}

// BlocksScope syncs residential complexes
func BlocksScope() ListScope {
	return ListScope{
		Scope:   domain.ScopeBlocks,
		Path:    "/blocks",
		ItemKey: "blocks",
		Save: func(ctx context.Context, st store.Store, json adapter.JSON, rec store.EntityRecord, item Item) (*Persisted, error) {
			n, err := NormalizeBlock(item)
			if err != nil {
				return nil, err
			}
			if rec.Normalized, err = json.Marshal(n); err != nil {
				return nil, fmt.Errorf("failed to encode normalized block: %w", err)
			}
			rec.ExternalID = n.ExternalID

			return &Persisted{ExternalID: n.ExternalID}, st.UpsertBlock(ctx, store.UpsertBlockInput{
				EntityRecord: rec,
				Name:         n.Name,
				Address:      n.Address,
				Latitude:     n.Latitude,
				Longitude:    n.Longitude,
				MinPrice:     n.MinPrice,
			})
		},
	}
}

// ApartmentsScope syncs individual units
func ApartmentsScope() ListScope {
	return ListScope{
		Scope:   domain.ScopeApartments,
		Path:    "/apartments",
		ItemKey: "apartments",
		Save: func(ctx context.Context, st store.Store, json adapter.JSON, rec store.EntityRecord, item Item) (*Persisted, error) {
			n, err := NormalizeApartment(item)
			if err != nil {
				return nil, err
			}
			if rec.Normalized, err = json.Marshal(n); err != nil {
				return nil, fmt.Errorf("failed to encode normalized apartment: %w", err)
			}
			rec.ExternalID = n.ExternalID

			return &Persisted{ExternalID: n.ExternalID}, st.UpsertApartment(ctx, store.UpsertApartmentInput{
				EntityRecord:    rec,
				BlockExternalID: n.BlockExternalID,
				Rooms:           n.Rooms,
				Floor:           n.Floor,
				Area:            n.Area,
				Price:           n.Price,
				Latitude:        n.Latitude,
				Longitude:       n.Longitude,
			})
		},
	}
}

const (
	SectionUnified    = "unified"
	SectionAdvantages = "advantages"
	SectionPrices     = "prices"
)

// BlockDetailPlan composes a block detail from unified (required), advantages and prices
func BlockDetailPlan() DetailPlan {
	return DetailPlan{
		Scope:    domain.ScopeBlockDetail,
		Required: SubEndpoint{Name: SectionUnified, Path: "/blocks/{id}/unified"},
		Optional: []SubEndpoint{
			{Name: SectionAdvantages, Path: "/blocks/{id}/advantages"},
			{Name: SectionPrices, Path: "/blocks/{id}/prices"},
		},
		Save: func(ctx context.Context, st store.Store, s DetailSnapshot) error {
			return st.UpsertBlockDetail(ctx, store.UpsertBlockDetailInput{
				ExternalID:  s.EntityID,
				Locale:      s.Locale,
				Unified:     s.Sections[SectionUnified],
				Advantages:  s.Sections[SectionAdvantages],
				Prices:      s.Sections[SectionPrices],
				PayloadHash: s.PayloadHash,
				FetchedAt:   s.FetchedAt,
			})
		},
	}
}
