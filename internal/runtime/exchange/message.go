package exchange

import (
	"github.com/ThreeDotsLabs/watermill/message"

	metadatapkg "github.com/drblury/propflow/internal/runtime/metadata"
)

// Message adapts a Watermill message. Map-valued headers travel JSON encoded
// in the message metadata; properties live on the message context.
type Message struct {
	msg        *message.Message
	properties *Properties
}

// FromMessage wraps msg. If the message context already carries a property
// set it is reused, otherwise a new one is attached to the context.
func FromMessage(msg *message.Message) *Message {
	ctx := msg.Context()
	props, ok := PropertiesFromContext(ctx)
	if !ok {
		props = NewProperties()
		msg.SetContext(WithProperties(ctx, props))
	}
	return &Message{msg: msg, properties: props}
}

func (m *Message) ID() string { return m.msg.UUID }

func (m *Message) MapHeader(name string) (map[string]string, error) {
	props, err := metadatapkg.ApplicationPropertiesFrom(m.msg.Metadata, name)
	if err != nil {
		return nil, err
	}
	if props == nil {
		return nil, nil
	}
	return props, nil
}

func (m *Message) SetProperty(name, value string) {
	m.properties.Set(name, value)
}

func (m *Message) Properties() *Properties {
	return m.properties
}

// PropertiesFromMessage returns a snapshot of the exchange properties attached
// to msg, or an empty map when no processor has run.
func PropertiesFromMessage(msg *message.Message) metadatapkg.Metadata {
	props, ok := PropertiesFromContext(msg.Context())
	if !ok {
		return metadatapkg.Metadata{}
	}
	return props.Snapshot()
}
