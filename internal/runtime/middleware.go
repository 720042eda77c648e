package runtime

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	configpkg "github.com/drblury/propflow/internal/runtime/config"
	errspkg "github.com/drblury/propflow/internal/runtime/errors"
	"github.com/drblury/propflow/internal/runtime/exchange"
	idspkg "github.com/drblury/propflow/internal/runtime/ids"
	loggingpkg "github.com/drblury/propflow/internal/runtime/logging"
	metadatapkg "github.com/drblury/propflow/internal/runtime/metadata"
)

const tracerName = "github.com/drblury/propflow"

// MiddlewareRegistration names a handler middleware so it can be reported
// and registered on a router.
type MiddlewareRegistration struct {
	Name       string
	Middleware message.HandlerMiddleware
}

// MiddlewareDependencies holds the optional collaborators of DefaultMiddlewares.
// Leave fields nil to skip the related middleware.
type MiddlewareDependencies struct {
	Logger     loggingpkg.ServiceLogger
	Publisher  message.Publisher // required for the poison queue
	Registerer prometheus.Registerer
	Metrics    *ExtractionMetrics
}

// RetryMiddlewareConfig customises the retry middleware behaviour.
type RetryMiddlewareConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	RetryIf         func(error) bool
}

func (cfg RetryMiddlewareConfig) withDefaults() RetryMiddlewareConfig {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = time.Second
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = 16 * time.Second
	}
	if cfg.RetryIf == nil {
		cfg.RetryIf = isRetryable
	}
	return cfg
}

// Extraction failures are permanent: the same message will fail the same way.
func isRetryable(err error) bool {
	return !errspkg.IsExtractionError(err)
}

// RegisterMiddlewares adds the registrations to router in order. The first
// registration becomes the outermost middleware.
func RegisterMiddlewares(router *message.Router, regs ...MiddlewareRegistration) error {
	if router == nil {
		return errspkg.ErrRouterRequired
	}
	for _, reg := range regs {
		if reg.Middleware == nil {
			continue
		}
		router.AddMiddleware(reg.Middleware)
	}
	return nil
}

// DefaultMiddlewares builds the standard chain around the property extractor:
// correlation id, message logging, tracing, retry, poison queue (when a
// publisher and PoisonQueue are configured), panic recovery and finally the
// extraction itself.
func DefaultMiddlewares(cfg *configpkg.Config, deps MiddlewareDependencies) ([]MiddlewareRegistration, error) {
	if cfg == nil {
		return nil, errspkg.ErrConfigRequired
	}
	logger := deps.Logger
	if logger == nil {
		logger = loggingpkg.NewNopServiceLogger()
	}

	extractionMetrics := deps.Metrics
	if extractionMetrics == nil && cfg.MetricsEnabled {
		var err error
		extractionMetrics, err = NewExtractionMetrics(deps.Registerer, cfg.Namespace())
		if err != nil {
			return nil, fmt.Errorf("extraction metrics: %w", err)
		}
	}

	regs := []MiddlewareRegistration{
		CorrelationIDMiddleware(),
		LogMessagesMiddleware(logger),
		TracerMiddleware(),
		RetryMiddleware(RetryMiddlewareConfig{
			MaxRetries:      cfg.RetryMaxRetries,
			InitialInterval: cfg.RetryInitialInterval,
			MaxInterval:     cfg.RetryMaxInterval,
		}),
	}

	if deps.Publisher != nil && cfg.PoisonQueue != "" {
		poison, err := PoisonQueueMiddleware(deps.Publisher, cfg.PoisonQueue, nil)
		if err != nil {
			return nil, err
		}
		regs = append(regs, poison)
	}

	extract, err := ExtractPropertiesMiddleware(cfg, logger, extractionMetrics)
	if err != nil {
		return nil, err
	}

	return append(regs, RecovererMiddleware(), extract), nil
}

// ProcessorMiddleware runs p against every message before the handler. A
// processor error short-circuits the handler and is returned unchanged, so
// retry and poison queue middleware further out can classify it.
func ProcessorMiddleware(name string, p Processor, logger loggingpkg.ServiceLogger, m *ExtractionMetrics) (MiddlewareRegistration, error) {
	if p == nil {
		return MiddlewareRegistration{}, errspkg.ErrProcessorRequired
	}
	if logger == nil {
		logger = loggingpkg.NewNopServiceLogger()
	}

	mw := func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			started := time.Now()
			err := p.Process(exchange.FromMessage(msg))
			m.Observe(err, time.Since(started))

			if err != nil {
				span := trace.SpanFromContext(msg.Context())
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())

				logger.Error("Processor failed", err, loggingpkg.LogFields{
					"processor":    name,
					"message_uuid": msg.UUID,
					"error_kind":   errspkg.Kind(err),
				})
				return nil, err
			}
			return h(msg)
		}
	}

	return MiddlewareRegistration{Name: name, Middleware: mw}, nil
}

// ExtractPropertiesMiddleware validates cfg and wraps a PropertyExtractor
// built from it in ProcessorMiddleware. Configs that list a required property
// more than once are refused with a ConfigValidationError; build the extractor
// with NewPropertyExtractor directly to keep such a list.
func ExtractPropertiesMiddleware(cfg *configpkg.Config, logger loggingpkg.ServiceLogger, m *ExtractionMetrics) (MiddlewareRegistration, error) {
	if cfg == nil {
		return MiddlewareRegistration{}, errspkg.ErrConfigRequired
	}
	if err := cfg.Validate(); err != nil {
		return MiddlewareRegistration{}, errspkg.NewConfigValidationError(err)
	}

	extractor := NewPropertyExtractor(
		cfg.RequiredProperties,
		WithHeaderKey(cfg.HeaderKey()),
		WithExtractorLogger(logger),
	)
	return ProcessorMiddleware("extract_properties", extractor, logger, m)
}

// CorrelationIDMiddleware ensures each processed message carries a correlation identifier.
func CorrelationIDMiddleware() MiddlewareRegistration {
	return MiddlewareRegistration{
		Name: "correlation_id",
		Middleware: func(h message.HandlerFunc) message.HandlerFunc {
			return func(msg *message.Message) ([]*message.Message, error) {
				if msg.Metadata == nil {
					msg.Metadata = message.Metadata{}
				}
				if _, ok := msg.Metadata[metadatapkg.MetadataKeyCorrelationID]; !ok {
					msg.Metadata.Set(metadatapkg.MetadataKeyCorrelationID, idspkg.CreateULID())
				}
				return h(msg)
			}
		},
	}
}

// LogMessagesMiddleware logs handled messages at debug level. Only metadata
// keys are logged since header values may carry tenant data.
func LogMessagesMiddleware(logger loggingpkg.ServiceLogger) MiddlewareRegistration {
	if logger == nil {
		logger = loggingpkg.NewNopServiceLogger()
	}
	return MiddlewareRegistration{
		Name: "log_messages",
		Middleware: func(h message.HandlerFunc) message.HandlerFunc {
			return func(msg *message.Message) ([]*message.Message, error) {
				md := metadatapkg.FromWatermill(msg.Metadata)
				logger.Debug("Processing message", loggingpkg.LogFields{
					"message_uuid":   msg.UUID,
					"correlation_id": md[metadatapkg.MetadataKeyCorrelationID],
					"metadata_keys":  md.Keys(),
				})
				return h(msg)
			}
		},
	}
}

// TracerMiddleware wraps handler execution in an OpenTelemetry span.
func TracerMiddleware() MiddlewareRegistration {
	return MiddlewareRegistration{
		Name: "tracer",
		Middleware: func(h message.HandlerFunc) message.HandlerFunc {
			return func(msg *message.Message) ([]*message.Message, error) {
				ctx, span := otel.Tracer(tracerName).Start(msg.Context(), "ProcessMessage")
				defer span.End()
				msg.SetContext(ctx)

				span.SetAttributes(
					attribute.String("message.uuid", msg.UUID),
					attribute.String("message.correlation_id", msg.Metadata.Get(metadatapkg.MetadataKeyCorrelationID)),
				)

				produced, err := h(msg)
				span.SetAttributes(attribute.Int("propflow.exchange_properties", len(exchange.PropertiesFromMessage(msg))))
				if err != nil {
					span.RecordError(err)
					span.SetStatus(codes.Error, err.Error())
				}
				return produced, err
			}
		},
	}
}

// AddRouterMetrics instruments the router, its publishers and subscribers
// with Watermill's Prometheus collectors.
func AddRouterMetrics(router *message.Router, reg prometheus.Registerer, namespace string) error {
	if router == nil {
		return errspkg.ErrRouterRequired
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	metrics.NewPrometheusMetricsBuilder(reg, namespace, "").AddPrometheusRouterMetrics(router)
	return nil
}

// RetryMiddleware retries handler execution using the provided configuration
// (defaults applied to zero values). Extraction errors are not retried unless
// RetryIf says otherwise.
func RetryMiddleware(cfg RetryMiddlewareConfig) MiddlewareRegistration {
	normalized := cfg.withDefaults()
	return MiddlewareRegistration{
		Name: "retry",
		Middleware: middleware.Retry{
			MaxRetries:      normalized.MaxRetries,
			InitialInterval: normalized.InitialInterval,
			MaxInterval:     normalized.MaxInterval,
			ShouldRetry: func(params middleware.RetryParams) bool {
				return normalized.RetryIf(params.Err)
			},
		}.Middleware,
	}
}

// PoisonQueueMiddleware publishes messages whose error matches filter to
// topic. A nil filter selects extraction errors.
func PoisonQueueMiddleware(pub message.Publisher, topic string, filter func(error) bool) (MiddlewareRegistration, error) {
	if pub == nil {
		return MiddlewareRegistration{}, errspkg.ErrPublisherRequired
	}
	if topic == "" {
		return MiddlewareRegistration{}, errspkg.ErrTopicRequired
	}
	if filter == nil {
		filter = errspkg.IsExtractionError
	}

	mw, err := middleware.PoisonQueueWithFilter(pub, topic, filter)
	if err != nil {
		return MiddlewareRegistration{}, err
	}
	return MiddlewareRegistration{Name: "poison_queue", Middleware: mw}, nil
}

// RecovererMiddleware converts panics into handler errors.
func RecovererMiddleware() MiddlewareRegistration {
	return MiddlewareRegistration{
		Name:       "recoverer",
		Middleware: middleware.Recoverer,
	}
}

// Names lists registration names in order, for startup logs.
func Names(regs []MiddlewareRegistration) []string {
	names := make([]string, 0, len(regs))
	for _, reg := range regs {
		name := reg.Name
		if name == "" {
			name = "anonymous_middleware"
		}
		names = append(names, name)
	}
	return names
}
