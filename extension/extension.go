// Package extension provides the Forge extension adapter for the Pepay client.
//
// It implements the forge.Extension interface to make a configured
// *pepay.Client available through the DI container of a Forge application.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.pepay" or "pepay" keys.
package extension

import (
	"context"
	"errors"
	"net/http"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	"github.com/pepay-io/pepay-go"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "pepay"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Pepay invoicing API client"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// ErrMissingAPIKey is returned by Register when no API key was configured.
var ErrMissingAPIKey = errors.New("pepay: api_key is required")

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts the Pepay client as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	client     *pepay.Client
	clientOpts []pepay.Option
}

// New creates a new Pepay Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Client returns the underlying client.
// This is nil until Register is called.
func (e *Extension) Client() *pepay.Client { return e.client }

// Register implements [forge.Extension]. It loads configuration,
// builds the client, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	client, err := e.buildClient()
	if err != nil {
		return err
	}
	e.client = client

	return vessel.Provide(fapp.Container(), func() (*pepay.Client, error) {
		return e.client, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(_ context.Context) error {
	if e.client == nil {
		return errors.New("pepay: extension not initialized")
	}
	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension]. The client holds no resources of its
// own; idle connections belong to the HTTP client.
func (e *Extension) Stop(_ context.Context) error {
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension]. It does not call the API.
func (e *Extension) Health(_ context.Context) error {
	if e.client == nil {
		return errors.New("pepay: client not initialized")
	}
	return nil
}

// buildClient constructs the client from the resolved config.
func (e *Extension) buildClient() (*pepay.Client, error) {
	if e.config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return pepay.New(e.config.APIKey, e.buildClientOpts()...), nil
}

// buildClientOpts constructs pepay.Option values from the resolved config.
func (e *Extension) buildClientOpts() []pepay.Option {
	opts := make([]pepay.Option, 0, len(e.clientOpts)+2)

	opts = append(opts, pepay.WithBaseURL(e.config.BaseURL))
	if e.config.Timeout > 0 {
		opts = append(opts, pepay.WithHTTPClient(&http.Client{Timeout: e.config.Timeout}))
	}

	// Pass-through options come last so they can override config.
	opts = append(opts, e.clientOpts...)

	return opts
}

// --- Config Loading ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("pepay: configuration is required but not found in config files; " +
				"ensure 'extensions.pepay' or 'pepay' key exists in your config")
		}

		e.config = mergeWithDefaults(programmaticConfig)
	} else {
		e.config = mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("pepay: configuration loaded",
		forge.F("api_key_set", e.config.APIKey != ""),
		forge.F("base_url", e.config.BaseURL),
		forge.F("timeout", e.config.Timeout),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	for _, key := range []string{"extensions.pepay", "pepay"} {
		if !cm.IsSet(key) {
			continue
		}
		if err := cm.Bind(key, &cfg); err == nil {
			e.Logger().Debug("pepay: loaded config from file",
				forge.F("key", key),
			)
			return cfg, true
		}
		e.Logger().Warn("pepay: failed to bind config",
			forge.F("key", key),
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence; programmatic values fill gaps.
func mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	if yamlConfig.APIKey == "" {
		yamlConfig.APIKey = programmaticConfig.APIKey
	}
	if yamlConfig.BaseURL == "" {
		yamlConfig.BaseURL = programmaticConfig.BaseURL
	}
	if yamlConfig.Timeout == 0 {
		yamlConfig.Timeout = programmaticConfig.Timeout
	}

	return mergeWithDefaults(yamlConfig)
}
