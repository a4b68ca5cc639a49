package audithook

// Action constants for audit events.
const (
	ActionInvoiceCreated = "invoice.created"
	ActionRequestFailed  = "request.failed"
)

// Resource constants for audit events.
const (
	ResourceInvoice = "invoice"
	ResourceRequest = "request"
)

// Category constants for audit events.
const (
	CategoryPayment     = "payment"
	CategoryIntegration = "integration"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
