package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"ErrExchangeRequired", ErrExchangeRequired, "propflow: exchange is required"},
		{"ErrProcessorRequired", ErrProcessorRequired, "propflow: processor is required"},
		{"ErrRouterRequired", ErrRouterRequired, "propflow: router is required"},
		{"ErrPublisherRequired", ErrPublisherRequired, "propflow: publisher is required"},
		{"ErrTopicRequired", ErrTopicRequired, "propflow: topic is required"},
		{"ErrConfigRequired", ErrConfigRequired, "propflow: configuration is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestMissingMetadataError(t *testing.T) {
	err := &MissingMetadataError{Header: "CamelAzureServiceBusApplicationProperties"}

	assert.Equal(t, "propflow: no application properties found in the Azure Service Bus message", err.Error())
	assert.ErrorIs(t, err, ErrMissingMetadata)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.NotErrorIs(t, err, ErrMissingProperty)

	t.Run("with decode cause", func(t *testing.T) {
		cause := errors.New("unexpected end of input")
		err := &MissingMetadataError{Header: "props", Err: cause}

		assert.Contains(t, err.Error(), `header "props"`)
		assert.Contains(t, err.Error(), "unexpected end of input")
		assert.ErrorIs(t, err, cause)
		assert.ErrorIs(t, err, ErrMissingMetadata)
	})
}

func TestMissingPropertyError(t *testing.T) {
	err := &MissingPropertyError{Property: "property2"}

	assert.Equal(t, "propflow: required application property not found in Azure Service Bus message: property2", err.Error())
	assert.ErrorIs(t, err, ErrMissingProperty)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.NotErrorIs(t, err, ErrMissingMetadata)

	wrapped := fmt.Errorf("stage failed: %w", err)
	var target *MissingPropertyError
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "property2", target.Property)
}

func TestIsExtractionErrorAndKind(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		extraction bool
		kind       string
	}{
		{"nil", nil, false, "none"},
		{"metadata", &MissingMetadataError{}, true, "missing_metadata"},
		{"property", &MissingPropertyError{Property: "a"}, true, "missing_property"},
		{"wrapped property", fmt.Errorf("wrap: %w", &MissingPropertyError{Property: "a"}), true, "missing_property"},
		{"other", errors.New("boom"), false, "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.extraction, IsExtractionError(tt.err))
			assert.Equal(t, tt.kind, Kind(tt.err))
		})
	}
}

func TestConfigValidationError(t *testing.T) {
	inner := errors.New("required property names cannot be blank")
	err := ConfigValidationError{Err: inner}

	want := "propflow: invalid configuration: required property names cannot be blank"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if unwrapped := err.Unwrap(); unwrapped != inner {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, inner)
	}
}

func TestNewConfigValidationError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if err := NewConfigValidationError(nil); err != nil {
			t.Errorf("NewConfigValidationError(nil) = %v, want nil", err)
		}
	})

	t.Run("errors.Is works with wrapped error", func(t *testing.T) {
		inner := errors.New("specific error")
		err := NewConfigValidationError(inner)

		var cfgErr ConfigValidationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigValidationError, got %T", err)
		}
		if !errors.Is(err, inner) {
			t.Error("errors.Is should match wrapped error")
		}
	})
}
