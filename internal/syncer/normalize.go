package syncer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Item is one decoded provider object
type Item = map[string]interface{}

// businessKeyFields are tried in order to resolve the provider's stable id
var businessKeyFields = []string{"entity_id", "_id", "id"}

// BusinessKey resolves the external id of an item, or false when none resolves
func BusinessKey(item Item) (string, bool) {
	for _, field := range businessKeyFields {
		if s, ok := scalarString(item[field]); ok {
			return s, true
		}
	}
	return "", false
}

func scalarString(v interface{}) (string, bool) {
	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		return s, s != ""
	case float64:
		if math.Trunc(val) == val && math.Abs(val) < 1<<53 {
			return strconv.FormatInt(int64(val), 10), true
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	}
	return "", false
}

// lookup walks a dotted path through nested objects
func lookup(item Item, path string) (interface{}, bool) {
	var cur interface{} = item
	for _, key := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if cur, ok = obj[key]; !ok {
			return nil, false
		}
	}
	return cur, cur != nil
}

func pickString(item Item, paths ...string) *string {
	for _, p := range paths {
		v, ok := lookup(item, p)
		if !ok {
			continue
		}
		if s, ok := scalarString(v); ok {
			return &s
		}
	}
	return nil
}

func pickFloat(item Item, paths ...string) *float64 {
	for _, p := range paths {
		v, ok := lookup(item, p)
		if !ok {
			continue
		}
		switch val := v.(type) {
		case float64:
			return &val
		case string:
			if f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(val), ",", "."), 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

func pickInt(item Item, paths ...string) *int {
	f := pickFloat(item, paths...)
	if f == nil || math.IsNaN(*f) || math.IsInf(*f, 0) {
		return nil
	}
	i := int(*f)
	return &i
}

// NormalizedBlock holds the commonly queried block attributes
type NormalizedBlock struct {
	ExternalID string   `json:"external_id"`
	Name       *string  `json:"name,omitempty"`
	Address    *string  `json:"address,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	MinPrice   *float64 `json:"min_price,omitempty"`
}

// NormalizeBlock extracts block attributes with the field fallbacks seen across provider versions
func NormalizeBlock(item Item) (*NormalizedBlock, error) {
	key, ok := BusinessKey(item)
	if !ok {
		return nil, errNoBusinessKey
	}

	return &NormalizedBlock{
		ExternalID: key,
		Name:       pickString(item, "name", "title"),
		Address:    pickString(item, "address", "location.address"),
		Latitude:   pickFloat(item, "latitude", "lat", "location.lat", "coordinates.lat", "geo.lat"),
		Longitude:  pickFloat(item, "longitude", "lng", "lon", "location.lng", "location.lon", "coordinates.lng", "geo.lng"),
		MinPrice:   pickFloat(item, "min_price", "price_from", "prices.min", "price"),
	}, nil
}

// NormalizedApartment holds the commonly queried apartment attributes
type NormalizedApartment struct {
	ExternalID      string   `json:"external_id"`
	BlockExternalID *string  `json:"block_external_id,omitempty"`
	Rooms           *int     `json:"rooms,omitempty"`
	Floor           *int     `json:"floor,omitempty"`
	Area            *float64 `json:"area,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
}

// NormalizeApartment extracts apartment attributes with the field fallbacks seen across provider versions
func NormalizeApartment(item Item) (*NormalizedApartment, error) {
	key, ok := BusinessKey(item)
	if !ok {
		return nil, errNoBusinessKey
	}

	return &NormalizedApartment{
		ExternalID:      key,
		BlockExternalID: pickString(item, "block_id", "blockId", "block.id", "complex_id"),
		Rooms:           pickInt(item, "rooms", "rooms_count", "room_count"),
		Floor:           pickInt(item, "floor"),
		Area:            pickFloat(item, "area", "square", "area_total"),
		Price:           pickFloat(item, "price", "cost", "price.value"),
		Latitude:        pickFloat(item, "latitude", "lat", "location.lat"),
		Longitude:       pickFloat(item, "longitude", "lng", "lon", "location.lng"),
	}, nil
}

var errNoBusinessKey = fmt.Errorf("item has no business key (tried %s)", strings.Join(businessKeyFields, ", "))
