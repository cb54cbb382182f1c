package query

import "fmt"

// ValidationError is a user-correctable problem with a query
// configuration. Handlers surface the message verbatim with a 400
// status; it is never logged as a system error.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Validation messages reused by tests and callers.
const (
	msgRunRequirement = "Select at least one dimension or turn on count to run a query."
	msgLimitBounds    = "Row limit must be between 1 and 5000."
	msgDateOrder      = "Start date must be before or equal to end date."
	msgDateNPositive  = "Number of days must be greater than 0."
)
