package metadata

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/propflow/internal/runtime/jsoncodec"
)

// HeaderApplicationProperties is the header under which the broker
// integration attaches the Azure Service Bus application properties map.
const HeaderApplicationProperties = "CamelAzureServiceBusApplicationProperties"

// EncodeApplicationProperties renders the properties map as the JSON string
// carried in message metadata.
func EncodeApplicationProperties(props Metadata) (string, error) {
	if props == nil {
		props = Metadata{}
	}
	encoded, err := jsoncodec.MarshalToString(map[string]string(props))
	if err != nil {
		return "", fmt.Errorf("encode application properties: %w", err)
	}
	return encoded, nil
}

// DecodeApplicationProperties parses a header produced by
// EncodeApplicationProperties or by any publisher writing a flat JSON object.
// Null values are dropped and scalars are rendered as strings. Numbers keep
// their source digits.
func DecodeApplicationProperties(raw string) (Metadata, error) {
	var values map[string]any
	if err := jsoncodec.UnmarshalFromStringUseNumber(raw, &values); err != nil {
		return nil, fmt.Errorf("decode application properties: %w", err)
	}
	if values == nil {
		return nil, fmt.Errorf("decode application properties: header holds null")
	}

	md := make(Metadata, len(values))
	for k, v := range values {
		switch v.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("decode application properties: property %q is not a scalar", k)
		}
		if s, ok := StringValue(v); ok {
			md[k] = s
		}
	}
	return md, nil
}

// SetApplicationProperties encodes props into md under key.
func SetApplicationProperties(md message.Metadata, key string, props Metadata) error {
	encoded, err := EncodeApplicationProperties(props)
	if err != nil {
		return err
	}
	md.Set(key, encoded)
	return nil
}

// ApplicationPropertiesFrom reads the map stored under key. A missing key
// returns a nil map and no error.
func ApplicationPropertiesFrom(md message.Metadata, key string) (Metadata, error) {
	raw, ok := md[key]
	if !ok {
		return nil, nil
	}
	return DecodeApplicationProperties(raw)
}
