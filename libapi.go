package propflow

import (
	"github.com/ThreeDotsLabs/watermill/message"

	runtimepkg "github.com/drblury/propflow/internal/runtime"
	configpkg "github.com/drblury/propflow/internal/runtime/config"
	errspkg "github.com/drblury/propflow/internal/runtime/errors"
	exchangepkg "github.com/drblury/propflow/internal/runtime/exchange"
	idspkg "github.com/drblury/propflow/internal/runtime/ids"
	jsoncodec "github.com/drblury/propflow/internal/runtime/jsoncodec"
	loggingpkg "github.com/drblury/propflow/internal/runtime/logging"
	metadatapkg "github.com/drblury/propflow/internal/runtime/metadata"
)

type (
	Config = configpkg.Config

	Processor         = runtimepkg.Processor
	ProcessorFunc     = runtimepkg.ProcessorFunc
	PropertyExtractor = runtimepkg.PropertyExtractor
	ExtractorOption   = runtimepkg.ExtractorOption

	Exchange           = exchangepkg.Exchange
	InMemoryExchange   = exchangepkg.InMemory
	MessageExchange    = exchangepkg.Message
	ExchangeProperties = exchangepkg.Properties

	MiddlewareRegistration = runtimepkg.MiddlewareRegistration
	MiddlewareDependencies = runtimepkg.MiddlewareDependencies
	RetryMiddlewareConfig  = runtimepkg.RetryMiddlewareConfig
	ExtractionMetrics      = runtimepkg.ExtractionMetrics

	Metadata = metadatapkg.Metadata

	LogFields     = loggingpkg.LogFields
	ServiceLogger = loggingpkg.ServiceLogger

	MissingMetadataError  = errspkg.MissingMetadataError
	MissingPropertyError  = errspkg.MissingPropertyError
	ConfigValidationError = errspkg.ConfigValidationError
)

var (
	ValidateConfig = configpkg.ValidateConfig
	ConfigFromEnv  = configpkg.FromEnv

	NewPropertyExtractor = runtimepkg.NewPropertyExtractor
	WithHeaderKey        = runtimepkg.WithHeaderKey
	WithExtractorLogger  = runtimepkg.WithExtractorLogger
	Chain                = runtimepkg.Chain

	NewInMemoryExchange   = exchangepkg.NewInMemory
	ExchangeFromMessage   = exchangepkg.FromMessage
	PropertiesFromMessage = exchangepkg.PropertiesFromMessage

	DefaultMiddlewares          = runtimepkg.DefaultMiddlewares
	RegisterMiddlewares         = runtimepkg.RegisterMiddlewares
	ProcessorMiddleware         = runtimepkg.ProcessorMiddleware
	ExtractPropertiesMiddleware = runtimepkg.ExtractPropertiesMiddleware
	CorrelationIDMiddleware     = runtimepkg.CorrelationIDMiddleware
	LogMessagesMiddleware       = runtimepkg.LogMessagesMiddleware
	TracerMiddleware            = runtimepkg.TracerMiddleware
	RetryMiddleware             = runtimepkg.RetryMiddleware
	PoisonQueueMiddleware       = runtimepkg.PoisonQueueMiddleware
	RecovererMiddleware         = runtimepkg.RecovererMiddleware
	AddRouterMetrics            = runtimepkg.AddRouterMetrics
	MiddlewareNames             = runtimepkg.Names
	NewExtractionMetrics        = runtimepkg.NewExtractionMetrics

	Marshal   = jsoncodec.Marshal
	Unmarshal = jsoncodec.Unmarshal

	ErrInvalidState      = errspkg.ErrInvalidState
	ErrMissingMetadata   = errspkg.ErrMissingMetadata
	ErrMissingProperty   = errspkg.ErrMissingProperty
	ErrExchangeRequired  = errspkg.ErrExchangeRequired
	ErrProcessorRequired = errspkg.ErrProcessorRequired
	ErrRouterRequired    = errspkg.ErrRouterRequired
	ErrPublisherRequired = errspkg.ErrPublisherRequired
	ErrTopicRequired     = errspkg.ErrTopicRequired
	ErrConfigRequired    = errspkg.ErrConfigRequired
	IsExtractionError    = errspkg.IsExtractionError

	NewSlogServiceLogger      = loggingpkg.NewSlogServiceLogger
	NewZerologServiceLogger   = loggingpkg.NewZerologServiceLogger
	NewWatermillServiceLogger = loggingpkg.NewWatermillServiceLogger
	NewNopServiceLogger       = loggingpkg.NewNopServiceLogger
	NewWatermillAdapter       = loggingpkg.NewWatermillAdapter

	NewMetadata = metadatapkg.New

	CreateULID = idspkg.CreateULID
)

// Metadata keys - use these constants for standard metadata fields.
const (
	MetadataKeyCorrelationID = metadatapkg.MetadataKeyCorrelationID

	// HeaderApplicationProperties is the header carrying the Azure Service Bus
	// application properties map.
	HeaderApplicationProperties = metadatapkg.HeaderApplicationProperties
)

// SetApplicationProperties stores props on msg under HeaderApplicationProperties
// so the extractor can read them.
func SetApplicationProperties(msg *message.Message, props Metadata) error {
	if msg.Metadata == nil {
		msg.Metadata = message.Metadata{}
	}
	return metadatapkg.SetApplicationProperties(msg.Metadata, HeaderApplicationProperties, props)
}
