package metadata

import (
	"fmt"
	"sort"
)

// Metadata is a flat string map. It backs both message headers and the
// snapshot of exchange properties handed to downstream stages.
type Metadata map[string]string

func (m Metadata) cloneWithExtra(extra int) Metadata {
	size := len(m) + extra
	if size <= 0 {
		return Metadata{}
	}

	cloned := make(Metadata, size)
	for k, v := range m {
		cloned[k] = v
	}
	return cloned
}

// Clone returns a shallow copy of the metadata map.
func (m Metadata) Clone() Metadata {
	return m.cloneWithExtra(0)
}

// With returns a cloned metadata map containing the provided key/value pair.
func (m Metadata) With(key, value string) Metadata {
	cloned := m.cloneWithExtra(1)
	cloned[key] = value
	return cloned
}

// Lookup distinguishes a missing key from a key holding an empty string.
func (m Metadata) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Keys returns the keys in lexical order.
func (m Metadata) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// New constructs a Metadata map from alternating key/value pairs.
func New(pairs ...string) Metadata {
	md := make(Metadata, len(pairs)/2)
	for i := 0; i < len(pairs)-1; i += 2 {
		md[pairs[i]] = pairs[i+1]
	}
	return md
}

// StringValue renders a loosely typed property value as a string. A nil value
// reports false: an absent value is treated exactly like an absent key.
func StringValue(v any) (string, bool) {
	switch typed := v.(type) {
	case nil:
		return "", false
	case string:
		return typed, true
	case *string:
		if typed == nil {
			return "", false
		}
		return *typed, true
	case []byte:
		return string(typed), true
	case fmt.Stringer:
		return typed.String(), true
	default:
		return fmt.Sprint(typed), true
	}
}

// FromAny converts a map with loosely typed values, dropping nil values.
// A nil input yields a nil Metadata so callers can tell "no map" from
// "empty map".
func FromAny(values map[string]any) Metadata {
	if values == nil {
		return nil
	}
	md := make(Metadata, len(values))
	for k, v := range values {
		if s, ok := StringValue(v); ok {
			md[k] = s
		}
	}
	return md
}

// MetadataKeyCorrelationID tracks related messages across services.
const MetadataKeyCorrelationID = "correlation_id"
