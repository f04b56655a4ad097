package cart

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the persistence interface for the Cart aggregate
type CartRepository interface {
	// FindByUserID finds a user's cart including its lines.
	// Returns shared.ErrNotFound when the user has no cart yet.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// GetOrCreateByUserID returns the user's cart, creating an empty one
	// if none exists. Concurrent callers observe the same cart row.
	GetOrCreateByUserID(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// Save persists the cart and reconciles its lines (inserts, updates
	// and deletes so the stored lines match the aggregate)
	Save(ctx context.Context, cart *Cart) error

	// Delete removes a cart and its lines
	Delete(ctx context.Context, id uuid.UUID) error
}
