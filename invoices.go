package pepay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/pepay-io/pepay-go/invoice"
)

const invoicesPath = "/api/v1/invoices"

// Operation names reported to plugins.
const (
	OpCreateInvoice       = "create_invoice"
	OpListInvoices        = "list_invoices"
	OpGetCustomerInvoices = "get_customer_invoices"
	OpGetInvoiceTotals    = "get_invoice_totals"
)

// CreateInvoice creates an invoice. Every call carries a fresh UUID v4
// idempotency key; the client never retries, so re-sending the same params
// is an explicit second creation attempt.
func (c *Client) CreateInvoice(ctx context.Context, params invoice.CreateParams) (*invoice.Invoice, error) {
	key, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("pepay: generate idempotency key: %w", err)
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("pepay: encode invoice params: %w", err)
	}

	header := http.Header{}
	header.Set(HeaderIdempotencyKey, key.String())

	var inv invoice.Invoice
	if err := c.do(ctx, request{
		operation: OpCreateInvoice,
		method:    http.MethodPost,
		path:      invoicesPath,
		body:      body,
		header:    header,
	}, &inv); err != nil {
		return nil, err
	}

	c.plugins.EmitInvoiceCreated(context.WithoutCancel(ctx), &inv)

	return &inv, nil
}

// ListInvoices returns one page of invoices. Only the params that are set are
// sent. The body is returned undecoded because the API does not commit to a
// listing shape.
func (c *Client) ListInvoices(ctx context.Context, params invoice.ListParams) (json.RawMessage, error) {
	path := invoicesPath
	if q := params.Query().Encode(); q != "" {
		path += "?" + q
	}

	var out json.RawMessage
	if err := c.do(ctx, request{
		operation: OpListInvoices,
		method:    http.MethodGet,
		path:      path,
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCustomerInvoices returns the invoices of one customer, undecoded.
func (c *Client) GetCustomerInvoices(ctx context.Context, customerID string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, request{
		operation: OpGetCustomerInvoices,
		method:    http.MethodGet,
		path:      invoicesPath + "/customer/" + url.PathEscape(customerID),
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetInvoiceTotals returns aggregate amounts and counts for the merchant.
func (c *Client) GetInvoiceTotals(ctx context.Context) (*invoice.Totals, error) {
	var totals invoice.Totals
	if err := c.do(ctx, request{
		operation: OpGetInvoiceTotals,
		method:    http.MethodGet,
		path:      invoicesPath + "/totals",
	}, &totals); err != nil {
		return nil, err
	}
	return &totals, nil
}
