package runtime

import (
	errspkg "github.com/drblury/propflow/internal/runtime/errors"
	"github.com/drblury/propflow/internal/runtime/exchange"
	loggingpkg "github.com/drblury/propflow/internal/runtime/logging"
	metadatapkg "github.com/drblury/propflow/internal/runtime/metadata"
)

// ExtractorOption customises a PropertyExtractor.
type ExtractorOption func(*PropertyExtractor)

// WithHeaderKey reads the application properties from key instead of
// metadata.HeaderApplicationProperties. An empty key is ignored.
func WithHeaderKey(key string) ExtractorOption {
	return func(p *PropertyExtractor) {
		if key != "" {
			p.header = key
		}
	}
}

// WithExtractorLogger sets the logger used for debug output.
func WithExtractorLogger(logger loggingpkg.ServiceLogger) ExtractorOption {
	return func(p *PropertyExtractor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// PropertyExtractor copies required Azure Service Bus application properties
// onto the exchange. It keeps no per-message state and may be shared between
// goroutines.
type PropertyExtractor struct {
	requiredProperties []string
	header             string
	logger             loggingpkg.ServiceLogger
}

// NewPropertyExtractor copies requiredProperties, so later changes to the
// caller's slice have no effect. A nil slice extracts nothing.
func NewPropertyExtractor(requiredProperties []string, opts ...ExtractorOption) *PropertyExtractor {
	required := make([]string, len(requiredProperties))
	copy(required, requiredProperties)

	p := &PropertyExtractor{
		requiredProperties: required,
		header:             metadatapkg.HeaderApplicationProperties,
		logger:             loggingpkg.NewNopServiceLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RequiredProperties returns a copy of the configured property names.
func (p *PropertyExtractor) RequiredProperties() []string {
	out := make([]string, len(p.requiredProperties))
	copy(out, p.requiredProperties)
	return out
}

// HeaderKey returns the header the application properties are read from.
func (p *PropertyExtractor) HeaderKey() string {
	return p.header
}

// Process copies every required property, in configured order, from the
// application properties header onto the exchange.
//
// It returns a *MissingMetadataError when the header is absent or unreadable,
// and a *MissingPropertyError for the first required property that is absent.
// Properties copied before the failure stay on the exchange.
func (p *PropertyExtractor) Process(ex exchange.Exchange) error {
	if ex == nil {
		return errspkg.ErrExchangeRequired
	}

	props, err := ex.MapHeader(p.header)
	if err != nil {
		return &errspkg.MissingMetadataError{Header: p.header, Err: err}
	}
	if props == nil {
		return &errspkg.MissingMetadataError{Header: p.header}
	}

	for _, name := range p.requiredProperties {
		value, ok := props[name]
		if !ok {
			return &errspkg.MissingPropertyError{Property: name}
		}
		ex.SetProperty(name, value)
	}

	p.logger.Debug("Extracted application properties", loggingpkg.LogFields{
		"exchange_id": exchange.IDOf(ex),
		"header":      p.header,
		"count":       len(p.requiredProperties),
	})
	return nil
}
