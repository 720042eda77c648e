// Package propflow copies required Azure Service Bus application properties
// onto the processing exchange before business handlers run.
//
// Broker integrations attach the application properties of a received message
// as a single map-valued header, CamelAzureServiceBusApplicationProperties.
// PropertyExtractor reads that map and, for each configured required name in
// order, copies the value onto the exchange. A message without the header
// fails with MissingMetadataError; a message missing a required name fails
// with MissingPropertyError naming the first absent property. Both match
// ErrInvalidState with errors.Is.
//
// # Watermill
//
// Inside a Watermill router the header travels JSON encoded in the message
// metadata and exchange properties live on the message context. Handlers read
// them with PropertiesFromMessage. DefaultMiddlewares returns the standard
// chain: correlation ID injection, message logging, OpenTelemetry tracing,
// retry with exponential backoff that skips extraction errors, poison queue
// forwarding, panic recovery and the extractor itself.
//
// # Azure Service Bus
//
// The transport/servicebus package converts azservicebus.ReceivedMessage values
// into exchanges or Watermill messages carrying the header.
//
// Config can be filled in code or read from PROPFLOW_* environment variables
// with ConfigFromEnv.
package propflow
