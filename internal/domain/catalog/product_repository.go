package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
)

// ProductRepository defines the persistence interface for the Product aggregate.
//
// DecrementStock and IncrementStock are the inventory guard primitives: they
// mutate stock through a single conditional update so that concurrent
// checkouts against the same product serialize on the product row and can
// never drive the quantity negative.
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds products with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Count counts products matching the filter (ignoring pagination)
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock updates a product using optimistic locking (checks version)
	SaveWithLock(ctx context.Context, product *Product) error

	// Delete removes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementStock atomically checks that at least amount units are
	// available and, if so, decrements quantity and increments sold by
	// amount. Returns shared.ErrInsufficientStock (and makes no change)
	// when the product exists but stock is short, shared.ErrNotFound when
	// the product does not exist.
	DecrementStock(ctx context.Context, id uuid.UUID, amount int64) error

	// IncrementStock adds amount units back to the available quantity.
	// Used for restocking; checkout rollback is handled by the surrounding
	// transaction, not by compensating increments.
	IncrementStock(ctx context.Context, id uuid.UUID, amount int64) error
}
