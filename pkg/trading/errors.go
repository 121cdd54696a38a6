package trading

import "errors"

// Rejection reasons returned to clients verbatim.
const (
	ReasonMissingFields   = "All fields are required"
	ReasonInvalidQuantity = "Invalid quantity"
	ReasonInvalidPrice    = "Invalid price"
	ReasonInvalidType     = `Invalid trade type. It must be "buy" or "sell".`
)

// ErrMissingParameter is returned by Execute when no symbol is given.
var ErrMissingParameter = errors.New("missing parameter: symbol")

// ValidationError rejects an order submission.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func reject(reason string) error {
	return &ValidationError{Reason: reason}
}

