// Package plugin provides an extensible plugin system for the Pepay client.
// Plugins can hook into request and invoice lifecycle events to add metrics,
// auditing or custom logging without touching the client itself.
package plugin

import (
	"context"
	"time"

	"github.com/pepay-io/pepay-go/invoice"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// RequestInfo describes one round trip to the API.
type RequestInfo struct {
	Operation      string // e.g. "create_invoice"
	Method         string
	Path           string // relative to the base URL, query included
	StatusCode     int    // 0 when no response was received
	Duration       time.Duration
	IdempotencyKey string // set for invoice creation only
}

// ──────────────────────────────────────────────────
// Request hooks
// ──────────────────────────────────────────────────

// OnRequestCompleted is called after every round trip, successful or not.
type OnRequestCompleted interface {
	Plugin
	OnRequestCompleted(ctx context.Context, info RequestInfo) error
}

// OnRequestFailed is called when a round trip ends in an error. err is either
// a *pepay.Error built from the API response or the transport error.
type OnRequestFailed interface {
	Plugin
	OnRequestFailed(ctx context.Context, info RequestInfo, err error) error
}

// ──────────────────────────────────────────────────
// Invoice hooks
// ──────────────────────────────────────────────────

// OnInvoiceCreated is called when the API confirms a new invoice.
type OnInvoiceCreated interface {
	Plugin
	OnInvoiceCreated(ctx context.Context, inv *invoice.Invoice) error
}
