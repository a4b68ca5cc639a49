// Package audithook bridges Pepay client events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not depend on any
// particular audit system. Callers inject a RecorderFunc adapter at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pepay-io/pepay-go"
	"github.com/pepay-io/pepay-go/invoice"
	"github.com/pepay-io/pepay-go/plugin"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin           = (*Extension)(nil)
	_ plugin.OnInvoiceCreated = (*Extension)(nil)
	_ plugin.OnRequestFailed  = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a single audit trail entry.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges client lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// OnInvoiceCreated implements plugin.OnInvoiceCreated.
func (e *Extension) OnInvoiceCreated(ctx context.Context, inv *invoice.Invoice) error {
	if inv == nil {
		return nil
	}
	kv := []any{
		"amount_usd", inv.AmountUSD,
		"status", string(inv.Status),
		"expires_at", inv.ExpiresAt,
	}
	if inv.CustomerID != "" {
		kv = append(kv, "customer_id", inv.CustomerID)
	}
	return e.record(ctx, ActionInvoiceCreated, SeverityInfo, OutcomeSuccess,
		ResourceInvoice, inv.ID, CategoryPayment, nil,
		kv...,
	)
}

// OnRequestFailed implements plugin.OnRequestFailed.
// API errors are recorded with their code; 5xx and transport failures are
// raised to error severity.
func (e *Extension) OnRequestFailed(ctx context.Context, info plugin.RequestInfo, err error) error {
	severity := SeverityError
	kv := []any{
		"operation", info.Operation,
		"method", info.Method,
		"path", info.Path,
	}

	if apiErr, ok := pepay.AsError(err); ok {
		if apiErr.StatusCode < 500 {
			severity = SeverityWarning
		}
		kv = append(kv,
			"code", string(apiErr.Code),
			"status", apiErr.StatusCode,
		)
	}
	if info.IdempotencyKey != "" {
		kv = append(kv, "idempotency_key", info.IdempotencyKey)
	}

	return e.record(ctx, ActionRequestFailed, severity, OutcomeFailure,
		ResourceRequest, info.Operation, CategoryIntegration, err,
		kv...,
	)
}

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
