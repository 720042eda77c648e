package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	metadatapkg "github.com/drblury/propflow/internal/runtime/metadata"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}
	assert.Equal(t, metadatapkg.HeaderApplicationProperties, cfg.HeaderKey())
	assert.Equal(t, DefaultMetricsNamespace, cfg.Namespace())

	cfg.ApplicationPropertiesHeader = "custom"
	cfg.MetricsNamespace = "orders"
	assert.Equal(t, "custom", cfg.HeaderKey())
	assert.Equal(t, "orders", cfg.Namespace())
}

func TestConfigString(t *testing.T) {
	cfg := Config{RequiredProperties: []string{"tenant"}, PoisonQueue: "orders.poison"}
	str := cfg.String()
	assert.True(t, strings.Contains(str, "tenant"))
	assert.True(t, strings.Contains(str, "orders.poison"))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{name: "empty config", config: Config{}},
		{name: "valid properties", config: Config{RequiredProperties: []string{"property1", "property2"}}},
		{name: "blank property", config: Config{RequiredProperties: []string{"property1", " "}}, wantErr: "entry 1 is blank"},
		{name: "duplicate property", config: Config{RequiredProperties: []string{"a", "a"}}, wantErr: `"a" listed more than once`},
		{name: "negative retries", config: Config{RetryMaxRetries: -1}, wantErr: "max retries cannot be negative"},
		{name: "negative initial interval", config: Config{RetryInitialInterval: -time.Second}, wantErr: "initial interval cannot be negative"},
		{name: "negative max interval", config: Config{RetryMaxInterval: -time.Second}, wantErr: "max interval cannot be negative"},
		{
			name:    "initial exceeds max",
			config:  Config{RetryInitialInterval: 10 * time.Second, RetryMaxInterval: time.Second},
			wantErr: "initial interval cannot exceed max interval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigValidateJoinsErrors(t *testing.T) {
	cfg := Config{RequiredProperties: []string{""}, RetryMaxRetries: -1}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blank")
	assert.Contains(t, err.Error(), "max retries")
}

func TestValidateConfigNil(t *testing.T) {
	assert.EqualError(t, ValidateConfig(nil), "config is nil")
	assert.NoError(t, ValidateConfig(&Config{}))
}

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookup(t *testing.T) {
	cfg, err := fromLookup("", mapLookup(map[string]string{
		"PROPFLOW_REQUIRED_PROPERTIES":           " property1, property2 ,,",
		"PROPFLOW_APPLICATION_PROPERTIES_HEADER": "custom",
		"PROPFLOW_POISON_QUEUE":                  "orders.poison",
		"PROPFLOW_RETRY_MAX_RETRIES":             "3",
		"PROPFLOW_RETRY_INITIAL_INTERVAL":        "250ms",
		"PROPFLOW_RETRY_MAX_INTERVAL":            "5s",
		"PROPFLOW_METRICS_ENABLED":               "true",
		"PROPFLOW_METRICS_NAMESPACE":             "orders",
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"property1", "property2"}, cfg.RequiredProperties)
	assert.Equal(t, "custom", cfg.ApplicationPropertiesHeader)
	assert.Equal(t, "orders.poison", cfg.PoisonQueue)
	assert.Equal(t, 3, cfg.RetryMaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryInitialInterval)
	assert.Equal(t, 5*time.Second, cfg.RetryMaxInterval)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, "orders", cfg.MetricsNamespace)
}

func TestFromLookupCustomPrefixAndUnset(t *testing.T) {
	cfg, err := fromLookup("BILLING", mapLookup(map[string]string{
		"BILLING_REQUIRED_PROPERTIES":  "tenant",
		"PROPFLOW_REQUIRED_PROPERTIES": "ignored",
		"BILLING_POISON_QUEUE":         "   ",
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"tenant"}, cfg.RequiredProperties)
	assert.Empty(t, cfg.PoisonQueue)
	assert.Zero(t, cfg.RetryMaxRetries)
}

func TestFromLookupInvalidValues(t *testing.T) {
	_, err := fromLookup("", mapLookup(map[string]string{
		"PROPFLOW_RETRY_MAX_RETRIES":      "many",
		"PROPFLOW_RETRY_INITIAL_INTERVAL": "soon",
		"PROPFLOW_METRICS_ENABLED":        "maybe",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROPFLOW_RETRY_MAX_RETRIES")
	assert.Contains(t, err.Error(), "PROPFLOW_RETRY_INITIAL_INTERVAL")
	assert.Contains(t, err.Error(), "PROPFLOW_METRICS_ENABLED")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("PROPFLOW_REQUIRED_PROPERTIES", "property1,property2")
	cfg, err := FromEnv("")
	require.NoError(t, err)
	assert.Equal(t, []string{"property1", "property2"}, cfg.RequiredProperties)
}
