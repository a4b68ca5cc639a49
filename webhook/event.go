// Package webhook declares the shape of webhook notifications sent by the
// Pepay API. The client never receives webhooks itself; these types exist so
// that receivers can decode request bodies. Signature checking is left to the
// receiver.
package webhook

// Status is the payment outcome carried by a webhook. It is a different
// vocabulary from invoice.Status.
type Status string

const (
	StatusPaid           Status = "paid"
	StatusExpired        Status = "expired"
	StatusPartialPayment Status = "partial_payment"
	StatusOverpaid       Status = "overpaid"
)

// Valid reports whether s is a known webhook status.
func (s Status) Valid() bool {
	switch s {
	case StatusPaid, StatusExpired, StatusPartialPayment, StatusOverpaid:
		return true
	}
	return false
}

// Event is a webhook notification about an invoice.
type Event struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Created int64  `json:"created"` // unix seconds
	Data    Data   `json:"data"`
}

// Data is the invoice-specific payload of an Event.
type Data struct {
	InvoiceID       string   `json:"invoice_id"`
	Status          Status   `json:"status"`
	AmountPaid      *float64 `json:"amount_paid,omitempty"`
	PaymentNetwork  string   `json:"payment_network,omitempty"`
	TransactionHash string   `json:"transaction_hash,omitempty"`
}
