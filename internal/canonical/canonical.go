// Package canonical produces deterministic serializations and hashes of
// JSON-like values. Object keys are ordered per RFC 8785 and numbers are
// rendered in their shortest form, so 1.0 and 1 hash identically.
package canonical

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/realtysync/provider-sync/internal/adapter"
)

// Hasher computes canonical forms and digests
type Hasher struct {
	json adapter.JSON
	jcs  adapter.JCS
}

// NewHasher creates a hasher on top of the given JSON and JCS implementations
func NewHasher(json adapter.JSON, jcs adapter.JCS) *Hasher {
	return &Hasher{json: json, jcs: jcs}
}

var defaultHasher = NewHasher(adapter.NewJSON(), adapter.NewJCS())

// Canonicalize returns the canonical serialization of v
func (h *Hasher) Canonicalize(v any) ([]byte, error) {
	raw, err := h.json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}
	return h.CanonicalizeJSON(raw)
}

// CanonicalizeJSON returns the canonical serialization of an encoded JSON document
func (h *Hasher) CanonicalizeJSON(raw []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		trimmed = []byte("null")
	}

	// The JCS transformer only accepts objects and arrays at the top level
	scalar := trimmed[0] != '{' && trimmed[0] != '['
	if scalar {
		trimmed = append(append([]byte{'['}, trimmed...), ']')
	}

	out, err := h.jcs.Transform(trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize JSON: %w", err)
	}

	if scalar {
		out = out[1 : len(out)-1]
	}
	return out, nil
}

// Hash returns the hex-encoded SHA-256 digest of the canonical form of v
func (h *Hasher) Hash(v any) (string, error) {
	canonical, err := h.Canonicalize(v)
	if err != nil {
		return "", err
	}
	return digest(canonical), nil
}

// HashJSON returns the hex-encoded SHA-256 digest of the canonical form of an encoded JSON document
func (h *Hasher) HashJSON(raw []byte) (string, error) {
	canonical, err := h.CanonicalizeJSON(raw)
	if err != nil {
		return "", err
	}
	return digest(canonical), nil
}

// ShapeHash returns the digest of the key/type skeleton of v
func (h *Hasher) ShapeHash(v any) (string, error) {
	return h.Hash(Shape(v))
}

func digest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Canonicalize returns the canonical serialization of v using the default hasher
func Canonicalize(v any) ([]byte, error) {
	return defaultHasher.Canonicalize(v)
}

// Hash returns the canonical digest of v using the default hasher
func Hash(v any) (string, error) {
	return defaultHasher.Hash(v)
}

// HashJSON returns the canonical digest of an encoded JSON document using the default hasher
func HashJSON(raw []byte) (string, error) {
	return defaultHasher.HashJSON(raw)
}

// ShapeHash returns the skeleton digest of v using the default hasher
func ShapeHash(v any) (string, error) {
	return defaultHasher.ShapeHash(v)
}

const (
	typeNull   = "null"
	typeBool   = "bool"
	typeNumber = "number"
	typeString = "string"
	typeOther  = "other"
)

// Shape reduces a decoded JSON value to its skeleton: objects keep their keys,
// arrays collapse to the merged skeleton of their elements and scalars become
// their type name. Two payloads with the same fields and types share a shape.
func Shape(v any) any {
	switch val := v.(type) {
	case nil:
		return typeNull
	case bool:
		return typeBool
	case json.Number, float64, float32, int, int32, int64, uint, uint32, uint64:
		return typeNumber
	case string:
		return typeString
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Shape(item)
		}
		return out
	case []any:
		var merged any
		for _, item := range val {
			merged = mergeShape(merged, Shape(item))
		}
		if merged == nil {
			return []any{}
		}
		return []any{merged}
	default:
		return typeOther
	}
}

func mergeShape(a, b any) any {
	if a == nil || a == typeNull {
		return b
	}
	if b == nil || b == typeNull {
		return a
	}

	am, aok := a.(map[string]any)
	bm, bok := b.(map[string]any)
	if aok && bok {
		out := make(map[string]any, len(am)+len(bm))
		for k, v := range am {
			out[k] = v
		}
		for k, v := range bm {
			out[k] = mergeShape(out[k], v)
		}
		return out
	}

	aa, aok := a.([]any)
	ba, bok := b.([]any)
	if aok && bok {
		if len(aa) == 0 {
			return b
		}
		if len(ba) == 0 {
			return a
		}
		return []any{mergeShape(aa[0], ba[0])}
	}

	return a
}

// TopLevelKeys returns the sorted keys of an object, or nil for non-objects
func TopLevelKeys(v any) []string {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DataKeys returns the sorted keys of the object under "data", or nil when absent
func DataKeys(v any) []string {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return TopLevelKeys(m["data"])
}
