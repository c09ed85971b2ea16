package market

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every construction error.
var ErrInvalidConfig = errors.New("invalid market configuration")

// IterationError reports the firm whose best response failed and the
// round it failed in.
type IterationError struct {
	Firm             int       // Index of the failing firm
	Iteration        int       // 1-based round number
	CompetitorPrices []float64 // Prices the firm was responding to
	Err              error
}

func (e *IterationError) Error() string {
	return fmt.Sprintf("iteration %d: firm %d (competitor prices %v): %v", e.Iteration, e.Firm, e.CompetitorPrices, e.Err)
}

// Unwrap returns the best-response error.
func (e *IterationError) Unwrap() error {
	return e.Err
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
