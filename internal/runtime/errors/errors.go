package errors

import (
	sterrors "errors"
	"fmt"
)

var (
	ErrExchangeRequired  = sterrors.New("propflow: exchange is required")
	ErrProcessorRequired = sterrors.New("propflow: processor is required")
	ErrRouterRequired    = sterrors.New("propflow: router is required")
	ErrPublisherRequired = sterrors.New("propflow: publisher is required")
	ErrTopicRequired     = sterrors.New("propflow: topic is required")
	ErrConfigRequired    = sterrors.New("propflow: configuration is required")
)

var (
	// ErrInvalidState is matched by every extraction failure. The exchange
	// cannot continue through the pipeline in its current state.
	ErrInvalidState = sterrors.New("propflow: invalid exchange state")

	// ErrMissingMetadata is matched by MissingMetadataError.
	ErrMissingMetadata = sterrors.New("propflow: no application properties found in the Azure Service Bus message")

	// ErrMissingProperty is matched by MissingPropertyError.
	ErrMissingProperty = sterrors.New("propflow: required application property not found in Azure Service Bus message")
)

// MissingMetadataError reports an exchange that carries no application
// properties map under Header. Err is set when the header was present but
// could not be decoded.
type MissingMetadataError struct {
	Header string
	Err    error
}

func (e *MissingMetadataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: header %q: %v", ErrMissingMetadata.Error(), e.Header, e.Err)
	}
	return ErrMissingMetadata.Error()
}

func (e *MissingMetadataError) Unwrap() error {
	return e.Err
}

func (e *MissingMetadataError) Is(target error) bool {
	return target == ErrMissingMetadata || target == ErrInvalidState
}

// MissingPropertyError names the first required property absent from the
// application properties map.
type MissingPropertyError struct {
	Property string
}

func (e *MissingPropertyError) Error() string {
	return ErrMissingProperty.Error() + ": " + e.Property
}

func (e *MissingPropertyError) Is(target error) bool {
	return target == ErrMissingProperty || target == ErrInvalidState
}

// IsExtractionError reports whether err is, or wraps, a MissingMetadataError
// or a MissingPropertyError.
func IsExtractionError(err error) bool {
	var metadataErr *MissingMetadataError
	if sterrors.As(err, &metadataErr) {
		return true
	}
	var propertyErr *MissingPropertyError
	return sterrors.As(err, &propertyErr)
}

// Kind returns a short label for err suitable for metrics and log fields.
func Kind(err error) string {
	var metadataErr *MissingMetadataError
	var propertyErr *MissingPropertyError
	switch {
	case err == nil:
		return "none"
	case sterrors.As(err, &metadataErr):
		return "missing_metadata"
	case sterrors.As(err, &propertyErr):
		return "missing_property"
	default:
		return "other"
	}
}

// ConfigValidationError wraps the joined validation failures of a Config.
type ConfigValidationError struct {
	Err error
}

func (e ConfigValidationError) Error() string {
	return "propflow: invalid configuration: " + e.Err.Error()
}

func (e ConfigValidationError) Unwrap() error {
	return e.Err
}

// NewConfigValidationError returns nil for a nil err.
func NewConfigValidationError(err error) error {
	if err == nil {
		return nil
	}
	return ConfigValidationError{Err: err}
}
