package extension

import (
	"time"

	"github.com/pepay-io/pepay-go"
)

// Config holds the Pepay extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.pepay" or "pepay" keys).
type Config struct {
	// APIKey authenticates every request. Required.
	APIKey string `json:"api_key" mapstructure:"api_key" yaml:"api_key"`

	// BaseURL is the API origin (default: "https://api.pepay.io").
	BaseURL string `json:"base_url" mapstructure:"base_url" yaml:"base_url"`

	// Timeout bounds each HTTP round trip. Zero leaves requests unbounded,
	// which matches the bare client.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout" yaml:"timeout"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL: pepay.DefaultBaseURL,
	}
}
