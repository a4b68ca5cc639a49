package pepay

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/pepay-io/pepay-go/plugin"
)

// DefaultBaseURL is the production API origin.
const DefaultBaseURL = "https://api.pepay.io"

// Header names sent with every request.
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderContentType    = "Content-Type"
)

// Client talks to the Pepay invoicing API.
// All fields are fixed at construction; a Client is safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	plugins    *plugin.Registry
	logger     *slog.Logger
}

// New creates a Client authenticating with apiKey.
// The key is not checked locally; the API rejects bad keys with INVALID_API_KEY.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		plugins:    plugin.NewRegistry(),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Option configures a Client instance.
type Option func(*Client)

// WithBaseURL overrides the API origin. An empty url keeps the default.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithHTTPClient sets the HTTP client used for requests. Timeouts and
// transport tuning belong there; the client adds none of its own.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger == nil {
			return
		}
		c.logger = logger
		c.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(c *Client) {
		_ = c.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// BaseURL returns the API origin requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// Plugins returns the plugin registry.
func (c *Client) Plugins() *plugin.Registry { return c.plugins }
