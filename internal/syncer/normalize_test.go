package syncer_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realtysync/provider-sync/internal/syncer"
)

func decode(t *testing.T, raw string) interface{} {
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestDetectItems(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		itemKey   string
		wantProbe string
		wantLen   int
		wantOK    bool
	}{
		{name: "top-level items", body: `{"items":[{"id":1},{"id":2}]}`, itemKey: "blocks", wantProbe: "$.items", wantLen: 2, wantOK: true},
		{name: "domain key", body: `{"blocks":[{"id":1}]}`, itemKey: "blocks", wantProbe: "$.blocks", wantLen: 1, wantOK: true},
		{name: "items wins over domain key", body: `{"items":[],"blocks":[{"id":1}]}`, itemKey: "blocks", wantProbe: "$.items", wantLen: 0, wantOK: true},
		{name: "data.items", body: `{"data":{"items":[{"id":"x1"}]}}`, itemKey: "apartments", wantProbe: "$.data.items", wantLen: 1, wantOK: true},
		{name: "data.results", body: `{"data":{"results":[{"id":"x1"}]}}`, itemKey: "apartments", wantProbe: "$.data.results", wantLen: 1, wantOK: true},
		{name: "data array", body: `{"data":[{"id":"x1"}]}`, itemKey: "apartments", wantProbe: "$.data", wantLen: 1, wantOK: true},
		{name: "root array", body: `[{"id":"x1"},{"id":"x2"}]`, itemKey: "apartments", wantProbe: "$", wantLen: 2, wantOK: true},
		{name: "no array", body: `{"data":{"count":3}}`, itemKey: "apartments", wantOK: false},
		{name: "items not an array", body: `{"items":{"id":1}}`, itemKey: "blocks", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, probe, ok := syncer.DetectItems(decode(t, tt.body), syncer.DefaultProbes(tt.itemKey))
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantProbe, probe)
				assert.Len(t, items, tt.wantLen)
			}
		})
	}
}

func TestDetectItems_CustomProbe(t *testing.T) {
	probes := append([]syncer.ShapeProbe{syncer.PathProbe("payload", "rows")}, syncer.DefaultProbes("blocks")...)

	items, probe, ok := syncer.DetectItems(decode(t, `{"payload":{"rows":[{"id":1}]}}`), probes)
	require.True(t, ok)
	assert.Equal(t, "$.payload.rows", probe)
	assert.Len(t, items, 1)
}

func TestBusinessKey(t *testing.T) {
	tests := []struct {
		name   string
		item   string
		want   string
		wantOK bool
	}{
		{name: "entity_id first", item: `{"entity_id":"e1","_id":"u1","id":"i1"}`, want: "e1", wantOK: true},
		{name: "_id fallback", item: `{"_id":"u1","id":"i1"}`, want: "u1", wantOK: true},
		{name: "id fallback", item: `{"id":"i1"}`, want: "i1", wantOK: true},
		{name: "numeric id", item: `{"id":12345}`, want: "12345", wantOK: true},
		{name: "blank entity_id falls through", item: `{"entity_id":"  ","id":"i1"}`, want: "i1", wantOK: true},
		{name: "null values", item: `{"entity_id":null,"id":null}`, wantOK: false},
		{name: "missing", item: `{"name":"x"}`, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := syncer.BusinessKey(decode(t, tt.item).(map[string]interface{}))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeBlock(t *testing.T) {
	item := decode(t, `{
		"id": 7,
		"title": "Riverside",
		"location": {"address": "1 River St", "lat": 55.75, "lng": 37.61},
		"price_from": "4500000,50"
	}`).(map[string]interface{})

	n, err := syncer.NormalizeBlock(item)
	require.NoError(t, err)

	assert.Equal(t, "7", n.ExternalID)
	assert.Equal(t, "Riverside", *n.Name)
	assert.Equal(t, "1 River St", *n.Address)
	assert.Equal(t, 55.75, *n.Latitude)
	assert.Equal(t, 37.61, *n.Longitude)
	assert.Equal(t, 4500000.5, *n.MinPrice)
}

func TestNormalizeApartment(t *testing.T) {
	item := decode(t, `{
		"_id": "a1",
		"block": {"id": "b9"},
		"rooms_count": 2,
		"floor": 11,
		"square": 54.3,
		"price": {"value": 9900000}
	}`).(map[string]interface{})

	n, err := syncer.NormalizeApartment(item)
	require.NoError(t, err)

	assert.Equal(t, "a1", n.ExternalID)
	assert.Equal(t, "b9", *n.BlockExternalID)
	assert.Equal(t, 2, *n.Rooms)
	assert.Equal(t, 11, *n.Floor)
	assert.Equal(t, 54.3, *n.Area)
	assert.Equal(t, 9900000.0, *n.Price)
	assert.Nil(t, n.Latitude)
}

func TestNormalizeApartment_NoKey(t *testing.T) {
	_, err := syncer.NormalizeApartment(map[string]interface{}{"price": 1.0})
	assert.Error(t, err)
}
