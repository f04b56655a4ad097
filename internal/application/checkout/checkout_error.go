package checkout

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
)

// CheckoutError reports a failed reservation, naming every product that
// lacked stock. It unwraps to shared.ErrInsufficientStock so callers
// can match it with errors.Is.
type CheckoutError struct {
	FailingProductIDs []uuid.UUID
}

// Error implements the error interface
func (e *CheckoutError) Error() string {
	return fmt.Sprintf("insufficient stock for %d product(s)", len(e.FailingProductIDs))
}

// Unwrap returns the underlying domain error
func (e *CheckoutError) Unwrap() error {
	return shared.ErrInsufficientStock
}
