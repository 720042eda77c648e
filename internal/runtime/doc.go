/*
Package runtime provides the property extraction processor for propflow and
the Watermill middleware that runs it in front of message handlers.

# Architecture Overview

Messages received from Azure Service Bus carry their application properties
as a single map-valued header. Before business handlers run, a fixed list of
those properties is copied onto the exchange so later stages can read them
without decoding the header again. Messages that lack the header, or lack any
required property, fail fast with a typed error.

# Package Structure

## Processing (processor.go, property_extractor.go)

Processor is the stage contract. PropertyExtractor is the one stage shipped
here:
  - reads the application properties map from the exchange
  - copies each required property, in order, onto the exchange
  - returns MissingMetadataError or MissingPropertyError on the first gap

## Middleware (middleware.go)

The middleware chain hosts a processor inside a Watermill router:
  - CorrelationID: Ensures message traceability
  - LogMessages: Debug logging of message metadata
  - Tracer: OpenTelemetry distributed tracing
  - Retry: Exponential backoff retry logic, skipping extraction errors
  - PoisonQueue: Dead letter queue for messages that fail extraction
  - Recoverer: Panic recovery
  - ExtractProperties: The PropertyExtractor itself

## Metrics (metrics.go)

Prometheus counters and a histogram for extraction outcomes.

# Sub-packages

  - config/: Extraction configuration with validation and env loading
  - errors/: Sentinel errors and extraction error types
  - exchange/: Exchange contract, in-memory and Watermill-backed exchanges
  - ids/: ULID generation for message and exchange IDs
  - jsoncodec/: JSON marshaling utilities
  - logging/: Logger interface and adapters
  - metadata/: Metadata helpers and the application properties header codec

# Usage Example

	cfg := &propflow.Config{
		RequiredProperties: []string{"tenant", "region"},
		PoisonQueue:        "orders.poison",
	}

	regs, err := propflow.DefaultMiddlewares(cfg, propflow.MiddlewareDependencies{
		Logger:    logger,
		Publisher: publisher,
	})
	if err != nil {
		return err
	}
	if err := propflow.RegisterMiddlewares(router, regs...); err != nil {
		return err
	}
*/
package runtime
