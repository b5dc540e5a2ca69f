package quality

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/realtysync/provider-sync/internal/adapter"
	"github.com/realtysync/provider-sync/internal/domain"
	"github.com/realtysync/provider-sync/internal/store/schema"
)

// Finding is a rule violation
type Finding struct {
	Status  domain.CheckStatus
	Message string
	Context map[string]any
}

// Rule evaluates one property of an entity; nil means the rule passed
type Rule[T any] struct {
	Name  string
	Check func(T) *Finding
}

func fail(msg string, ctx map[string]any) *Finding {
	return &Finding{Status: domain.CheckStatusFail, Message: msg, Context: ctx}
}

func warn(msg string, ctx map[string]any) *Finding {
	return &Finding{Status: domain.CheckStatusWarn, Message: msg, Context: ctx}
}

func nonNegative(field string, v *float64) *Finding {
	if v != nil && *v < 0 {
		return fail(fmt.Sprintf("%s is negative", field), map[string]any{field: *v})
	}
	return nil
}

func coordinates(lat, lng *float64) *Finding {
	if lat != nil && (*lat < -90 || *lat > 90) {
		return fail("latitude out of range", map[string]any{"latitude": *lat})
	}
	if lng != nil && (*lng < -180 || *lng > 180) {
		return fail("longitude out of range", map[string]any{"longitude": *lng})
	}
	if (lat == nil) != (lng == nil) {
		return warn("only one coordinate is set", map[string]any{"latitude": lat, "longitude": lng})
	}
	return nil
}

func isEmptyJSON(raw datatypes.JSON) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func objectPayload(codec adapter.JSON, field string, raw datatypes.JSON) *Finding {
	if isEmptyJSON(raw) {
		return fail(fmt.Sprintf("%s payload is missing", field), nil)
	}
	var obj map[string]json.RawMessage
	if err := codec.Unmarshal(raw, &obj); err != nil {
		return fail(fmt.Sprintf("%s payload is not an object", field), map[string]any{"error": err.Error()})
	}
	if len(obj) == 0 {
		return warn(fmt.Sprintf("%s payload is empty", field), nil)
	}
	return nil
}

// BlockRules is the battery evaluated for every block
func BlockRules(codec adapter.JSON) []Rule[schema.Block] {
	return []Rule[schema.Block]{
		{Name: "raw_payload_present", Check: func(b schema.Block) *Finding { return objectPayload(codec, "raw", b.Raw) }},
		{Name: "normalized_payload_present", Check: func(b schema.Block) *Finding { return objectPayload(codec, "normalized", b.Normalized) }},
		{Name: "name_present", Check: func(b schema.Block) *Finding {
			if b.Name == nil || *b.Name == "" {
				return warn("block has no name", nil)
			}
			return nil
		}},
		{Name: "min_price_non_negative", Check: func(b schema.Block) *Finding { return nonNegative("min_price", b.MinPrice) }},
		{Name: "coordinates_valid", Check: func(b schema.Block) *Finding { return coordinates(b.Latitude, b.Longitude) }},
	}
}

// ApartmentRules is the battery evaluated for every apartment
func ApartmentRules(codec adapter.JSON) []Rule[schema.Apartment] {
	return []Rule[schema.Apartment]{
		{Name: "raw_payload_present", Check: func(a schema.Apartment) *Finding { return objectPayload(codec, "raw", a.Raw) }},
		{Name: "price_present", Check: func(a schema.Apartment) *Finding {
			if a.Price == nil {
				return warn("apartment has no price", nil)
			}
			return nil
		}},
		{Name: "price_non_negative", Check: func(a schema.Apartment) *Finding { return nonNegative("price", a.Price) }},
		{Name: "area_positive", Check: func(a schema.Apartment) *Finding {
			if a.Area != nil && *a.Area <= 0 {
				return fail("area is not positive", map[string]any{"area": *a.Area})
			}
			return nil
		}},
		{Name: "rooms_in_range", Check: func(a schema.Apartment) *Finding {
			if a.Rooms != nil && (*a.Rooms < 0 || *a.Rooms > 20) {
				return warn("rooms out of range", map[string]any{"rooms": *a.Rooms})
			}
			return nil
		}},
		{Name: "block_reference_present", Check: func(a schema.Apartment) *Finding {
			if a.BlockExternalID == nil || *a.BlockExternalID == "" {
				return warn("apartment is not linked to a block", nil)
			}
			return nil
		}},
		{Name: "coordinates_valid", Check: func(a schema.Apartment) *Finding { return coordinates(a.Latitude, a.Longitude) }},
	}
}

// BlockDetailRules is the battery evaluated for every block detail
func BlockDetailRules(codec adapter.JSON) []Rule[schema.BlockDetail] {
	return []Rule[schema.BlockDetail]{
		{Name: "unified_payload_present", Check: func(d schema.BlockDetail) *Finding { return objectPayload(codec, "unified", d.Unified) }},
		{Name: "advantages_present", Check: func(d schema.BlockDetail) *Finding {
			if isEmptyJSON(d.Advantages) {
				return warn("advantages section is missing", nil)
			}
			return nil
		}},
		{Name: "prices_present", Check: func(d schema.BlockDetail) *Finding {
			if isEmptyJSON(d.Prices) {
				return warn("prices section is missing", nil)
			}
			return nil
		}},
	}
}
