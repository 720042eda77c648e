package exchange

import (
	"context"
	"sync"

	metadatapkg "github.com/drblury/propflow/internal/runtime/metadata"
)

// Properties is the mutable property set of a single exchange.
type Properties struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewProperties returns an empty property set.
func NewProperties() *Properties {
	return &Properties{values: make(map[string]string)}
}

// Set stores value under name, replacing any previous value.
func (p *Properties) Set(name, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[name] = value
}

// Get returns the value stored under name.
func (p *Properties) Get(name string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.values[name]
	return v, ok
}

func (p *Properties) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.values)
}

// Snapshot returns a copy that is safe to hand to other goroutines.
func (p *Properties) Snapshot() metadatapkg.Metadata {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return metadatapkg.Metadata(p.values).Clone()
}

type propertiesKey struct{}

// WithProperties returns a context carrying p.
func WithProperties(ctx context.Context, p *Properties) context.Context {
	return context.WithValue(ctx, propertiesKey{}, p)
}

// PropertiesFromContext returns the property set attached to ctx.
func PropertiesFromContext(ctx context.Context) (*Properties, bool) {
	if ctx == nil {
		return nil, false
	}
	p, ok := ctx.Value(propertiesKey{}).(*Properties)
	return p, ok && p != nil
}
