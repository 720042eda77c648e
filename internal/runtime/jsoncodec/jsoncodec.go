package jsoncodec

import (
	"github.com/bytedance/sonic"
)

var defaultConfig = sonic.ConfigStd

func Marshal(v any) ([]byte, error) {
	return defaultConfig.Marshal(v)
}

func Unmarshal(data []byte, v any) error {
	return defaultConfig.Unmarshal(data, v)
}

// MarshalToString encodes v directly into a string, which is how map-valued
// headers travel inside string-only message metadata.
func MarshalToString(v any) (string, error) {
	return defaultConfig.MarshalToString(v)
}

// UnmarshalFromString is the inverse of MarshalToString.
func UnmarshalFromString(data string, v any) error {
	return defaultConfig.UnmarshalFromString(data, v)
}

// numberConfig keeps JSON numbers as json.Number so their source digits
// survive decoding into interface values.
var numberConfig = sonic.Config{
	UseNumber:      true,
	CopyString:     true,
	ValidateString: true,
}.Froze()

// UnmarshalFromStringUseNumber decodes like UnmarshalFromString, except that
// numbers held in interface values become json.Number instead of float64.
func UnmarshalFromStringUseNumber(data string, v any) error {
	return numberConfig.UnmarshalFromString(data, v)
}
