package extension

import (
	"time"

	"github.com/pepay-io/pepay-go"
	"github.com/pepay-io/pepay-go/plugin"
)

// Option configures the Pepay Forge extension.
type Option func(*Extension)

// WithClientOption passes a pepay.Option through to the underlying client.
func WithClientOption(opt pepay.Option) Option {
	return func(e *Extension) {
		e.clientOpts = append(e.clientOpts, opt)
	}
}

// WithPlugin registers a client plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.clientOpts = append(e.clientOpts, pepay.WithPlugin(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(e *Extension) { e.config.APIKey = key }
}

// WithBaseURL sets the API origin.
func WithBaseURL(url string) Option {
	return func(e *Extension) { e.config.BaseURL = url }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Extension) { e.config.Timeout = d }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}
