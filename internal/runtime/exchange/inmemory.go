package exchange

import (
	"fmt"
	"sync"

	idspkg "github.com/drblury/propflow/internal/runtime/ids"
	metadatapkg "github.com/drblury/propflow/internal/runtime/metadata"
)

// InMemory is a standalone exchange holding arbitrary headers. It is useful
// for hosts that are not built on Watermill, and for tests.
type InMemory struct {
	id         string
	mu         sync.RWMutex
	headers    map[string]any
	properties *Properties
}

// NewInMemory returns an empty exchange with a fresh ULID.
func NewInMemory() *InMemory {
	return &InMemory{
		id:         idspkg.CreateULID(),
		headers:    make(map[string]any),
		properties: NewProperties(),
	}
}

func (e *InMemory) ID() string { return e.id }

func (e *InMemory) SetHeader(name string, value any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.headers[name] = value
}

func (e *InMemory) Header(name string) (any, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.headers[name]
	return v, ok
}

// MapHeader accepts map[string]string, metadata.Metadata and map[string]any
// headers. A nil header value counts as absent.
func (e *InMemory) MapHeader(name string) (map[string]string, error) {
	raw, ok := e.Header(name)
	if !ok || raw == nil {
		return nil, nil
	}

	switch typed := raw.(type) {
	case map[string]string:
		return typed, nil
	case metadatapkg.Metadata:
		return typed, nil
	case map[string]any:
		return metadatapkg.FromAny(typed), nil
	default:
		return nil, fmt.Errorf("header %q holds %T, not a string map", name, raw)
	}
}

func (e *InMemory) SetProperty(name, value string) {
	e.properties.Set(name, value)
}

func (e *InMemory) Property(name string) (string, bool) {
	return e.properties.Get(name)
}

func (e *InMemory) Properties() *Properties {
	return e.properties
}
