package runtime

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	errspkg "github.com/drblury/propflow/internal/runtime/errors"
)

// ExtractionMetrics records the outcome of every processor invocation run by
// ProcessorMiddleware. A nil *ExtractionMetrics is valid and records nothing.
type ExtractionMetrics struct {
	extractions *prometheus.CounterVec
	missing     *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewExtractionMetrics registers the collectors on reg (the default registerer
// when nil). Registering twice under the same namespace reuses the existing
// collectors.
func NewExtractionMetrics(reg prometheus.Registerer, namespace string) (*ExtractionMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	extractions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "property_extractions_total",
		Help:      "Property extraction attempts by result.",
	}, []string{"result"})
	missing := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "missing_properties_total",
		Help:      "Required application properties found missing, by property name.",
	}, []string{"property"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "property_extraction_duration_seconds",
		Help:      "Time spent running the extraction processor.",
		Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
	})

	var err error
	if extractions, err = register(reg, extractions); err != nil {
		return nil, err
	}
	if missing, err = register(reg, missing); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}

	return &ExtractionMetrics{extractions: extractions, missing: missing, duration: duration}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Observe records one processor invocation.
func (m *ExtractionMetrics) Observe(err error, elapsed time.Duration) {
	if m == nil {
		return
	}

	result := errspkg.Kind(err)
	if result == "none" {
		result = "success"
	}
	m.extractions.WithLabelValues(result).Inc()
	m.duration.Observe(elapsed.Seconds())

	var propertyErr *errspkg.MissingPropertyError
	if errors.As(err, &propertyErr) {
		m.missing.WithLabelValues(propertyErr.Property).Inc()
	}
}
