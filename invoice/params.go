package invoice

import (
	"net/url"
	"strconv"
)

// CreateParams is the request body for creating an invoice.
// The API validates every field; nothing is checked client-side.
//
// Optional fields left at their zero value are omitted from the body, so an
// empty Description, an empty Metadata map or a zero ExpiresIn cannot be sent
// explicitly. The API applies its own defaults for omitted fields.
type CreateParams struct {
	AmountUSD   float64        `json:"amount_usd"`
	Description string         `json:"description,omitempty"`
	CustomerID  string         `json:"customer_id,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	ExpiresIn   int64          `json:"expires_in,omitempty"` // seconds
}

// ListStatus filters invoice listings.
type ListStatus string

const (
	ListPaid    ListStatus = "paid"
	ListUnpaid  ListStatus = "unpaid"
	ListExpired ListStatus = "expired"
	ListAll     ListStatus = "all"
)

// Valid reports whether s is an accepted listing filter.
func (s ListStatus) Valid() bool {
	switch s {
	case ListPaid, ListUnpaid, ListExpired, ListAll:
		return true
	}
	return false
}

// ListParams selects a page of invoices. Zero values are not sent, and
// neither is a negative Page: only pages > 0 reach the query string.
type ListParams struct {
	Page   int
	Status ListStatus
}

// Query encodes only the parameters that were set.
func (p ListParams) Query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Status != "" {
		q.Set("status", string(p.Status))
	}
	return q
}
