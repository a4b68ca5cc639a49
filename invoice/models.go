package invoice

import "encoding/json"

// Status is the lifecycle state of an invoice as reported by the API.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusUnpaid  Status = "unpaid"
	StatusExpired Status = "expired"
)

// Valid reports whether s is one of the statuses the API assigns to invoices.
func (s Status) Valid() bool {
	switch s {
	case StatusPaid, StatusUnpaid, StatusExpired:
		return true
	}
	return false
}

// Invoice is a payment request created by the API.
//
// The typed fields cover the documented shape. Raw keeps the document exactly
// as the API sent it, including fields not declared here, and is what
// MarshalJSON writes back out.
type Invoice struct {
	ID          string  `json:"invoice_id"`
	PaymentURL  string  `json:"payment_url"`
	ExpiresAt   string  `json:"expires_at"` // ISO-8601, kept as sent
	Status      Status  `json:"status"`
	AmountUSD   float64 `json:"amount_usd"`
	CustomerID  string  `json:"customer_id,omitempty"`
	Description string  `json:"description,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the typed fields and keeps a copy of data in Raw.
func (i *Invoice) UnmarshalJSON(data []byte) error {
	type plain Invoice
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*i = Invoice(v)
	i.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON writes Raw when set, otherwise the typed fields.
func (i Invoice) MarshalJSON() ([]byte, error) {
	if len(i.Raw) > 0 {
		return i.Raw, nil
	}
	type plain Invoice
	return json.Marshal(plain(i))
}

// Totals aggregates invoice amounts and counts for the merchant.
// Raw holds the document as sent, the same as Invoice.Raw.
type Totals struct {
	TotalAmountUSD  float64 `json:"total_amount_usd"`
	TotalPaidUSD    float64 `json:"total_paid_usd"`
	TotalUnpaidUSD  float64 `json:"total_unpaid_usd"`
	TotalExpiredUSD float64 `json:"total_expired_usd"`
	InvoiceCount    Counts  `json:"invoice_count"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the typed fields and keeps a copy of data in Raw.
func (t *Totals) UnmarshalJSON(data []byte) error {
	type plain Totals
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = Totals(v)
	t.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON writes Raw when set, otherwise the typed fields.
func (t Totals) MarshalJSON() ([]byte, error) {
	if len(t.Raw) > 0 {
		return t.Raw, nil
	}
	type plain Totals
	return json.Marshal(plain(t))
}

// Counts holds invoice counts per status. They are JSON numbers on the wire
// and are kept as float64 so any number the API sends decodes unchanged.
type Counts struct {
	Total   float64 `json:"total"`
	Paid    float64 `json:"paid"`
	Unpaid  float64 `json:"unpaid"`
	Expired float64 `json:"expired"`
}

// Consistent reports whether the totals add up: total = paid + unpaid + expired,
// for both amounts and counts. The client never enforces this; it is up to the
// caller to decide what an inconsistent response means.
func (t Totals) Consistent() bool {
	c := t.InvoiceCount
	if c.Total != c.Paid+c.Unpaid+c.Expired {
		return false
	}
	sum := t.TotalPaidUSD + t.TotalUnpaidUSD + t.TotalExpiredUSD
	diff := t.TotalAmountUSD - sum
	return diff < 0.005 && diff > -0.005
}
