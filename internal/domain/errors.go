package domain

import "errors"

// ErrInvalidInput marks malformed request fields
var ErrInvalidInput = errors.New("invalid input")

// Statement errors
var (
	ErrMissingCustomer      = errors.New("no customer data found in statement")
	ErrNoLoanData           = errors.New("no loan data available for statement generation")
	ErrInvalidLoanTerms     = errors.New("loan term must be at least 1 month")
	ErrUnsupportedFormat    = errors.New("unsupported statement format")
	ErrInvalidBillingPeriod = errors.New("billing period start must not be after its end")
)

// IsValidationError reports whether err is a caller mistake rather than a server fault
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingCustomer) ||
		errors.Is(err, ErrNoLoanData) ||
		errors.Is(err, ErrInvalidLoanTerms) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrInvalidBillingPeriod) ||
		errors.Is(err, ErrLoanNotOwned) ||
		errors.Is(err, ErrInvalidInput)
}
