package observability

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/pepay-io/pepay-go"
	"github.com/pepay-io/pepay-go/invoice"
	"github.com/pepay-io/pepay-go/plugin"
)

type memCounter struct{ v float64 }

func (c *memCounter) Inc()          { c.v++ }
func (c *memCounter) Add(d float64) { c.v += d }

type memHistogram struct{ obs []float64 }

func (h *memHistogram) Observe(v float64) { h.obs = append(h.obs, v) }

type memFactory struct {
	counters   map[string]*memCounter
	histograms map[string]*memHistogram
}

func newMemFactory() *memFactory {
	return &memFactory{
		counters:   make(map[string]*memCounter),
		histograms: make(map[string]*memHistogram),
	}
}

func (f *memFactory) Counter(name string) Counter {
	c := &memCounter{}
	f.counters[name] = c
	return c
}

func (f *memFactory) Histogram(name string) Histogram {
	h := &memHistogram{}
	f.histograms[name] = h
	return h
}

func TestMetricsExtensionRequests(t *testing.T) {
	f := newMemFactory()
	m := NewMetricsExtension(f)
	ctx := context.Background()

	_ = m.OnRequestCompleted(ctx, plugin.RequestInfo{Duration: 42 * time.Millisecond})
	_ = m.OnRequestCompleted(ctx, plugin.RequestInfo{Duration: 8 * time.Millisecond})

	if got := f.counters["pepay.requests"].v; got != 2 {
		t.Errorf("requests: got %v, want 2", got)
	}
	obs := f.histograms["pepay.request.latency_ms"].obs
	if len(obs) != 2 || obs[0] != 42 || obs[1] != 8 {
		t.Errorf("latency observations: got %v", obs)
	}
}

func TestMetricsExtensionFailures(t *testing.T) {
	f := newMemFactory()
	m := NewMetricsExtension(f)
	ctx := context.Background()

	apiErr := &pepay.Error{Code: pepay.ErrCodeInvalidAPIKey, Message: "Invalid API key", StatusCode: 401}
	malformed := fmt.Errorf("wrapped: %w", &pepay.Error{Code: pepay.ErrCodeMalformedResponse, StatusCode: 502})

	_ = m.OnRequestFailed(ctx, plugin.RequestInfo{}, apiErr)
	_ = m.OnRequestFailed(ctx, plugin.RequestInfo{}, errors.New("dial tcp: connection refused"))

	tests := []struct {
		name string
		want float64
	}{
		{"pepay.requests.failed", 2},
		{"pepay.api.errors", 1},
		{"pepay.transport.errors", 1},
		{"pepay.api.errors.malformed", 0},
	}
	for _, tt := range tests {
		if got := f.counters[tt.name].v; got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}

	_ = m.OnRequestFailed(ctx, plugin.RequestInfo{}, malformed)
	if got := f.counters["pepay.api.errors.malformed"].v; got != 1 {
		t.Errorf("malformed errors: got %v, want 1", got)
	}
	if got := f.counters["pepay.api.errors"].v; got != 1 {
		t.Errorf("api errors: got %v, want 1", got)
	}
}

func TestMetricsExtensionInvoiceCreated(t *testing.T) {
	f := newMemFactory()
	m := NewMetricsExtension(f)

	_ = m.OnInvoiceCreated(context.Background(), &invoice.Invoice{ID: "inv_1", AmountUSD: 25})
	_ = m.OnInvoiceCreated(context.Background(), nil)

	if got := f.counters["pepay.invoices.created"].v; got != 2 {
		t.Errorf("invoices created: got %v, want 2", got)
	}
	if obs := f.histograms["pepay.invoice.amount_usd"].obs; len(obs) != 1 || obs[0] != 25 {
		t.Errorf("amount observations: got %v", obs)
	}
}

func TestPrometheusFactory(t *testing.T) {
	reg := prometheus.NewRegistry()
	f := NewPrometheusFactory(reg)

	c := f.Counter("pepay.requests")
	c.Inc()
	c.Add(2)

	// Same name, same collector; registering twice would panic.
	if again := f.Counter("pepay.requests"); again != c {
		t.Error("expected the cached counter")
	}

	pc, ok := c.(prometheus.Counter)
	if !ok {
		t.Fatalf("expected prometheus.Counter, got %T", c)
	}
	if got := testutil.ToFloat64(pc); got != 3 {
		t.Errorf("counter: got %v, want 3", got)
	}

	f.Histogram("pepay.request.latency_ms").Observe(12)

	if n, err := testutil.GatherAndCount(reg, "pepay_requests_total", "pepay_request_latency_ms"); err != nil || n != 2 {
		t.Errorf("GatherAndCount: got %d, %v; want 2 metrics", n, err)
	}
}

func TestPrometheusFactoryWithMetricsExtension(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsExtension(NewPrometheusFactory(reg))

	_ = m.OnInvoiceCreated(context.Background(), &invoice.Invoice{AmountUSD: 10})

	count, err := testutil.GatherAndCount(reg)
	if err != nil {
		t.Fatal(err)
	}
	if count != 8 {
		t.Errorf("expected 8 registered metrics, got %d", count)
	}
	if got := testutil.ToFloat64(m.InvoicesCreated.(prometheus.Counter)); got != 1 {
		t.Errorf("invoices created: got %v, want 1", got)
	}
}

func TestPromName(t *testing.T) {
	if got := promName("pepay.request.latency_ms"); got != "pepay_request_latency_ms" {
		t.Errorf("got %q", got)
	}
}
