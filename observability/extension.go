// Package observability provides a metrics plugin for the Pepay client that
// records request and invoice lifecycle counts via a MetricFactory.
package observability

import (
	"context"

	"github.com/pepay-io/pepay-go"
	"github.com/pepay-io/pepay-go/invoice"
	"github.com/pepay-io/pepay-go/plugin"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin             = (*MetricsExtension)(nil)
	_ plugin.OnRequestCompleted = (*MetricsExtension)(nil)
	_ plugin.OnRequestFailed    = (*MetricsExtension)(nil)
	_ plugin.OnInvoiceCreated   = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records client-wide lifecycle metrics.
// Register it with pepay.WithPlugin to track API usage.
type MetricsExtension struct {
	factory MetricFactory

	// Request metrics
	Requests        Counter
	RequestsFailed  Counter
	RequestLatency  Histogram
	APIErrors       Counter
	MalformedErrors Counter
	TransportErrors Counter

	// Invoice metrics
	InvoicesCreated Counter
	InvoiceAmount   Histogram
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		Requests:        factory.Counter("pepay.requests"),
		RequestsFailed:  factory.Counter("pepay.requests.failed"),
		RequestLatency:  factory.Histogram("pepay.request.latency_ms"),
		APIErrors:       factory.Counter("pepay.api.errors"),
		MalformedErrors: factory.Counter("pepay.api.errors.malformed"),
		TransportErrors: factory.Counter("pepay.transport.errors"),

		InvoicesCreated: factory.Counter("pepay.invoices.created"),
		InvoiceAmount:   factory.Histogram("pepay.invoice.amount_usd"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// ──────────────────────────────────────────────────
// Request hooks
// ──────────────────────────────────────────────────

// OnRequestCompleted implements plugin.OnRequestCompleted.
func (m *MetricsExtension) OnRequestCompleted(_ context.Context, info plugin.RequestInfo) error {
	m.Requests.Inc()
	m.RequestLatency.Observe(float64(info.Duration.Milliseconds()))
	return nil
}

// OnRequestFailed implements plugin.OnRequestFailed.
func (m *MetricsExtension) OnRequestFailed(_ context.Context, _ plugin.RequestInfo, err error) error {
	m.RequestsFailed.Inc()

	apiErr, ok := pepay.AsError(err)
	switch {
	case ok && apiErr.Code == pepay.ErrCodeMalformedResponse:
		m.MalformedErrors.Inc()
	case ok:
		m.APIErrors.Inc()
	default:
		m.TransportErrors.Inc()
	}
	return nil
}

// ──────────────────────────────────────────────────
// Invoice hooks
// ──────────────────────────────────────────────────

// OnInvoiceCreated implements plugin.OnInvoiceCreated.
func (m *MetricsExtension) OnInvoiceCreated(_ context.Context, inv *invoice.Invoice) error {
	m.InvoicesCreated.Inc()
	if inv != nil {
		m.InvoiceAmount.Observe(inv.AmountUSD)
	}
	return nil
}
