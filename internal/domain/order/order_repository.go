package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
)

// OrderRepository defines the persistence interface for the Order ledger.
// Orders are create-only; there is no update or delete.
type OrderRepository interface {
	// Create persists a new order together with its lines
	Create(ctx context.Context, o *Order) error

	// FindByID finds an order by its ID including its lines
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByUserID finds a user's orders, newest first, with pagination
	FindByUserID(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)

	// CountByUserID counts a user's orders
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}
