package pepay

import (
	"github.com/pepay-io/pepay-go/invoice"
	"github.com/pepay-io/pepay-go/webhook"
)

// Re-export common types for convenience so users don't have to import the
// invoice and webhook packages for simple calls.

// Invoice is re-exported from the invoice package.
type Invoice = invoice.Invoice

// InvoiceTotals is re-exported from the invoice package.
type InvoiceTotals = invoice.Totals

// CreateInvoiceParams is re-exported from the invoice package.
type CreateInvoiceParams = invoice.CreateParams

// ListInvoicesParams is re-exported from the invoice package.
type ListInvoicesParams = invoice.ListParams

// WebhookEvent is re-exported from the webhook package.
type WebhookEvent = webhook.Event
