package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	metadatapkg "github.com/drblury/propflow/internal/runtime/metadata"
)

// DefaultEnvPrefix prefixes every variable read by FromEnv.
const DefaultEnvPrefix = "PROPFLOW"

// DefaultMetricsNamespace is used when MetricsNamespace is empty.
const DefaultMetricsNamespace = "propflow"

// Config groups the settings of the property extraction stage and the
// middleware around it.
type Config struct {
	// RequiredProperties lists, in order, the application properties that
	// must be present and are copied onto the exchange. Nil means none.
	RequiredProperties []string

	// ApplicationPropertiesHeader overrides the header the properties map is
	// read from. Defaults to metadata.HeaderApplicationProperties.
	ApplicationPropertiesHeader string

	// PoisonQueue receives messages that fail extraction.
	PoisonQueue string

	// RetryMiddleware tuning. Zero values fall back to library defaults.
	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration

	MetricsEnabled   bool
	MetricsNamespace string
}

// HeaderKey returns the configured header or the Azure Service Bus default.
func (c *Config) HeaderKey() string {
	if c.ApplicationPropertiesHeader == "" {
		return metadatapkg.HeaderApplicationProperties
	}
	return c.ApplicationPropertiesHeader
}

// Namespace returns the configured metrics namespace or the default.
func (c *Config) Namespace() string {
	if c.MetricsNamespace == "" {
		return DefaultMetricsNamespace
	}
	return c.MetricsNamespace
}

func (c Config) String() string {
	type configAlias Config
	return fmt.Sprintf("%+v", configAlias(c))
}

// Validate checks the configuration and joins every problem found.
func (c *Config) Validate() error {
	var errs []error

	errs = append(errs, c.validateRequiredProperties()...)
	errs = append(errs, c.validateRetry()...)

	return errors.Join(errs...)
}

func (c *Config) validateRequiredProperties() []error {
	var errs []error
	seen := make(map[string]struct{}, len(c.RequiredProperties))
	for i, name := range c.RequiredProperties {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Errorf("required properties: entry %d is blank", i))
			continue
		}
		if _, dup := seen[name]; dup {
			errs = append(errs, fmt.Errorf("required properties: %q listed more than once", name))
		}
		seen[name] = struct{}{}
	}
	return errs
}

func (c *Config) validateRetry() []error {
	var errs []error
	if c.RetryMaxRetries < 0 {
		errs = append(errs, errors.New("retry: max retries cannot be negative"))
	}
	if c.RetryInitialInterval < 0 {
		errs = append(errs, errors.New("retry: initial interval cannot be negative"))
	}
	if c.RetryMaxInterval < 0 {
		errs = append(errs, errors.New("retry: max interval cannot be negative"))
	}
	if c.RetryMaxInterval > 0 && c.RetryInitialInterval > 0 && c.RetryInitialInterval > c.RetryMaxInterval {
		errs = append(errs, errors.New("retry: initial interval cannot exceed max interval"))
	}
	return errs
}

// ValidateConfig is a convenience function to validate a config pointer.
func ValidateConfig(c *Config) error {
	if c == nil {
		return errors.New("config is nil")
	}
	return c.Validate()
}

// FromEnv builds a Config from environment variables named
// {prefix}_REQUIRED_PROPERTIES (comma separated), {prefix}_APPLICATION_PROPERTIES_HEADER,
// {prefix}_POISON_QUEUE, {prefix}_RETRY_MAX_RETRIES, {prefix}_RETRY_INITIAL_INTERVAL,
// {prefix}_RETRY_MAX_INTERVAL, {prefix}_METRICS_ENABLED and {prefix}_METRICS_NAMESPACE.
// An empty prefix means DefaultEnvPrefix. Unset variables keep zero values.
func FromEnv(prefix string) (*Config, error) {
	return fromLookup(prefix, os.LookupEnv)
}

func fromLookup(prefix string, lookup func(string) (string, bool)) (*Config, error) {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	get := func(name string) (string, bool) {
		v, ok := lookup(prefix + "_" + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	cfg := &Config{}
	var errs []error

	if v, ok := get("REQUIRED_PROPERTIES"); ok {
		cfg.RequiredProperties = splitList(v)
	}
	if v, ok := get("APPLICATION_PROPERTIES_HEADER"); ok {
		cfg.ApplicationPropertiesHeader = v
	}
	if v, ok := get("POISON_QUEUE"); ok {
		cfg.PoisonQueue = v
	}
	if v, ok := get("RETRY_MAX_RETRIES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s_RETRY_MAX_RETRIES: %w", prefix, err))
		}
		cfg.RetryMaxRetries = n
	}
	if v, ok := get("RETRY_INITIAL_INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s_RETRY_INITIAL_INTERVAL: %w", prefix, err))
		}
		cfg.RetryInitialInterval = d
	}
	if v, ok := get("RETRY_MAX_INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s_RETRY_MAX_INTERVAL: %w", prefix, err))
		}
		cfg.RetryMaxInterval = d
	}
	if v, ok := get("METRICS_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s_METRICS_ENABLED: %w", prefix, err))
		}
		cfg.MetricsEnabled = b
	}
	if v, ok := get("METRICS_NAMESPACE"); ok {
		cfg.MetricsNamespace = v
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
