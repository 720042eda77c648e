// Package servicebus adapts Azure Service Bus received messages to propflow
// exchanges and Watermill messages.
package servicebus

import (
	"fmt"
	"strconv"

	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/propflow/internal/runtime/exchange"
	idspkg "github.com/drblury/propflow/internal/runtime/ids"
	metadatapkg "github.com/drblury/propflow/internal/runtime/metadata"
)

// Metadata keys copied from the received message by ToMessage.
const (
	MetadataKeySubject       = "servicebus_subject"
	MetadataKeyContentType   = "servicebus_content_type"
	MetadataKeyDeliveryCount = "servicebus_delivery_count"
)

// ApplicationProperties flattens the application properties of rm. It returns
// nil when rm carries none. Nil values are dropped.
func ApplicationProperties(rm *azservicebus.ReceivedMessage) map[string]string {
	if rm == nil || rm.ApplicationProperties == nil {
		return nil
	}
	return metadatapkg.FromAny(rm.ApplicationProperties)
}

// Exchange exposes a received message to processors. Only the application
// properties header is readable; every other header is absent.
type Exchange struct {
	rm         *azservicebus.ReceivedMessage
	header     string
	properties *exchange.Properties
}

// NewExchange wraps rm. An empty header selects HeaderApplicationProperties.
func NewExchange(rm *azservicebus.ReceivedMessage, header string) *Exchange {
	if header == "" {
		header = metadatapkg.HeaderApplicationProperties
	}
	return &Exchange{rm: rm, header: header, properties: exchange.NewProperties()}
}

func (e *Exchange) ID() string {
	if e.rm == nil {
		return ""
	}
	return e.rm.MessageID
}

func (e *Exchange) MapHeader(name string) (map[string]string, error) {
	if name != e.header {
		return nil, nil
	}
	return ApplicationProperties(e.rm), nil
}

func (e *Exchange) SetProperty(name, value string) {
	e.properties.Set(name, value)
}

// Properties returns the properties written by processors.
func (e *Exchange) Properties() *exchange.Properties {
	return e.properties
}

// ToMessage converts rm into a Watermill message. The message UUID is the
// Service Bus message id, or a fresh ULID when that is empty. Application
// properties are JSON encoded under HeaderApplicationProperties when present.
func ToMessage(rm *azservicebus.ReceivedMessage) (*message.Message, error) {
	if rm == nil {
		return nil, fmt.Errorf("servicebus: received message is nil")
	}

	uuid := rm.MessageID
	if uuid == "" {
		uuid = idspkg.CreateULID()
	}
	md := metadatapkg.Metadata{
		MetadataKeyDeliveryCount: strconv.FormatUint(uint64(rm.DeliveryCount), 10),
	}
	if rm.CorrelationID != nil && *rm.CorrelationID != "" {
		md[metadatapkg.MetadataKeyCorrelationID] = *rm.CorrelationID
	}
	if rm.Subject != nil {
		md[MetadataKeySubject] = *rm.Subject
	}
	if rm.ContentType != nil {
		md[MetadataKeyContentType] = *rm.ContentType
	}
	if props := ApplicationProperties(rm); props != nil {
		encoded, err := metadatapkg.EncodeApplicationProperties(props)
		if err != nil {
			return nil, fmt.Errorf("servicebus: message %s: %w", uuid, err)
		}
		md[metadatapkg.HeaderApplicationProperties] = encoded
	}

	msg := message.NewMessage(uuid, rm.Body)
	msg.Metadata = metadatapkg.ToWatermill(md)
	return msg, nil
}
