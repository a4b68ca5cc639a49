package pepay

import (
	"errors"
	"fmt"
)

// ErrorCode is a machine-readable error code reported by the API.
type ErrorCode string

// Error codes the API reports in failure responses.
const (
	// Network validation (400)
	ErrCodeNetworkNotSupported ErrorCode = "NETWORK_NOT_SUPPORTED"
	ErrCodeNetworkNotEnabled   ErrorCode = "NETWORK_NOT_ENABLED"

	// Authentication (401)
	ErrCodeSessionExpired   ErrorCode = "SESSION_EXPIRED"
	ErrCodeInvalidSignature ErrorCode = "INVALID_SIGNATURE"
	ErrCodeInvalidAPIKey    ErrorCode = "INVALID_API_KEY"

	// Resource errors (404)
	ErrCodeInvoiceNotFound  ErrorCode = "INVOICE_NOT_FOUND"
	ErrCodeMerchantNotFound ErrorCode = "MERCHANT_NOT_FOUND"

	// Invoice validation (400)
	ErrCodeInvalidAmountFormat     ErrorCode = "INVALID_AMOUNT_FORMAT"
	ErrCodeInvalidAmountRange      ErrorCode = "INVALID_AMOUNT_RANGE"
	ErrCodeMetadataTooLarge        ErrorCode = "METADATA_TOO_LARGE"
	ErrCodeIdempotencyKeyMissing   ErrorCode = "IDEMPOTENCY_KEY_MISSING"
	ErrCodeInvalidExpirationFormat ErrorCode = "INVALID_EXPIRATION_FORMAT"
	ErrCodeInvalidExpirationRange  ErrorCode = "INVALID_EXPIRATION_RANGE"

	// Processing errors (500)
	ErrCodeWalletGenerationFailed ErrorCode = "WALLET_GENERATION_FAILED"
	ErrCodeEncryptionFailed       ErrorCode = "ENCRYPTION_FAILED"
	ErrCodeDatabaseError          ErrorCode = "DATABASE_ERROR"
	ErrCodeInvoiceCreateFailed    ErrorCode = "INVOICE_CREATE_FAILED"
)

// ErrCodeMalformedResponse is set by the client, never by the API, when a
// failure response does not carry a decodable {error, code} body.
const ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"

// Error categories, grouping codes by the kind of failure.
const (
	CategoryNetwork        = "network"
	CategoryAuthentication = "authentication"
	CategoryNotFound       = "not_found"
	CategoryValidation     = "validation"
	CategoryProcessing     = "processing"
	CategoryUnknown        = "unknown"
)

var catalog = []ErrorCode{
	ErrCodeNetworkNotSupported,
	ErrCodeNetworkNotEnabled,
	ErrCodeSessionExpired,
	ErrCodeInvalidSignature,
	ErrCodeInvalidAPIKey,
	ErrCodeInvoiceNotFound,
	ErrCodeMerchantNotFound,
	ErrCodeInvalidAmountFormat,
	ErrCodeInvalidAmountRange,
	ErrCodeMetadataTooLarge,
	ErrCodeIdempotencyKeyMissing,
	ErrCodeInvalidExpirationFormat,
	ErrCodeInvalidExpirationRange,
	ErrCodeWalletGenerationFailed,
	ErrCodeEncryptionFailed,
	ErrCodeDatabaseError,
	ErrCodeInvoiceCreateFailed,
}

// ErrorCodes returns every code the API is documented to report.
func ErrorCodes() []ErrorCode {
	result := make([]ErrorCode, len(catalog))
	copy(result, catalog)
	return result
}

// Known reports whether c belongs to the API's documented catalog.
func (c ErrorCode) Known() bool {
	return c.Category() != CategoryUnknown
}

// Category returns the group c belongs to, or CategoryUnknown.
func (c ErrorCode) Category() string {
	switch c {
	case ErrCodeNetworkNotSupported, ErrCodeNetworkNotEnabled:
		return CategoryNetwork
	case ErrCodeSessionExpired, ErrCodeInvalidSignature, ErrCodeInvalidAPIKey:
		return CategoryAuthentication
	case ErrCodeInvoiceNotFound, ErrCodeMerchantNotFound:
		return CategoryNotFound
	case ErrCodeInvalidAmountFormat, ErrCodeInvalidAmountRange, ErrCodeMetadataTooLarge,
		ErrCodeIdempotencyKeyMissing, ErrCodeInvalidExpirationFormat, ErrCodeInvalidExpirationRange:
		return CategoryValidation
	case ErrCodeWalletGenerationFailed, ErrCodeEncryptionFailed, ErrCodeDatabaseError,
		ErrCodeInvoiceCreateFailed:
		return CategoryProcessing
	}
	return CategoryUnknown
}

// NominalStatus is the HTTP status the API is expected to pair with c.
// The client does not check responses against it.
func (c ErrorCode) NominalStatus() int {
	switch c.Category() {
	case CategoryNetwork, CategoryValidation:
		return 400
	case CategoryAuthentication:
		return 401
	case CategoryNotFound:
		return 404
	case CategoryProcessing:
		return 500
	}
	return 0
}

// ErrMalformedResponse is wrapped by an *Error whose failure response body
// could not be decoded.
var ErrMalformedResponse = errors.New("pepay: malformed error response")

// Error is returned when the API answers with a non-2xx status.
type Error struct {
	Message    string
	Code       ErrorCode
	StatusCode int // 0 when unknown

	err error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("pepay: %s: %s (status %d)", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("pepay: %s: %s", e.Code, e.Message)
}

// Unwrap returns the decode failure behind a MALFORMED_RESPONSE error.
func (e *Error) Unwrap() error { return e.err }

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func hasCategory(err error, category string) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Code.Category() == category
}

// IsNotFound returns true if the API reported a missing invoice or merchant.
func IsNotFound(err error) bool { return hasCategory(err, CategoryNotFound) }

// IsAuthError returns true if the API rejected the credentials or session.
func IsAuthError(err error) bool { return hasCategory(err, CategoryAuthentication) }

// IsValidationError returns true if the API rejected the invoice fields.
func IsValidationError(err error) bool { return hasCategory(err, CategoryValidation) }

// IsNetworkError returns true if the API rejected the payment network.
// Transport failures are not API errors and return false.
func IsNetworkError(err error) bool { return hasCategory(err, CategoryNetwork) }

// IsProcessingError returns true if the API failed internally.
func IsProcessingError(err error) bool { return hasCategory(err, CategoryProcessing) }
