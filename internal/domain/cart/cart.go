package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
)

// CartLine represents one product entry in a cart.
// A cart holds at most one line per product; merging happens on add.
type CartLine struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CartID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_lines_cart_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_lines_cart_product"`
	Quantity  int64     `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (CartLine) TableName() string {
	return "cart_lines"
}

func newCartLine(cartID, productID uuid.UUID, quantity int64) CartLine {
	now := time.Now()
	return CartLine{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Cart is the aggregate root for a user's pending selection.
// There is exactly one cart per user; it survives checkout failures
// untouched and is emptied by a successful checkout.
type Cart struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Lines  []CartLine `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// NewCart creates an empty cart for the given user
func NewCart(userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Lines:             make([]CartLine, 0),
	}, nil
}

// AddOrMergeLine adds quantity units of a product to the cart.
// If a line for the product already exists its quantity is increased,
// never overwritten. Returns the resulting line state.
func (c *Cart) AddOrMergeLine(productID uuid.UUID, quantity int64) (*CartLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}

	for idx := range c.Lines {
		if c.Lines[idx].ProductID == productID {
			c.Lines[idx].Quantity += quantity
			c.Lines[idx].UpdatedAt = time.Now()
			c.touch()
			return &c.Lines[idx], nil
		}
	}

	line := newCartLine(c.ID, productID, quantity)
	c.Lines = append(c.Lines, line)
	c.touch()

	return &c.Lines[len(c.Lines)-1], nil
}

// SetLineQuantity sets a line's quantity directly (overwrite semantics).
// A quantity of zero or less removes the line. Setting a quantity for a
// product not yet in the cart creates the line.
func (c *Cart) SetLineQuantity(productID uuid.UUID, quantity int64) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	if quantity <= 0 {
		c.RemoveLine(productID)
		return nil
	}

	for idx := range c.Lines {
		if c.Lines[idx].ProductID == productID {
			c.Lines[idx].Quantity = quantity
			c.Lines[idx].UpdatedAt = time.Now()
			c.touch()
			return nil
		}
	}

	c.Lines = append(c.Lines, newCartLine(c.ID, productID, quantity))
	c.touch()

	return nil
}

// RemoveLine removes the line for the given product.
// Removing a line that does not exist is a no-op.
func (c *Cart) RemoveLine(productID uuid.UUID) {
	for idx := range c.Lines {
		if c.Lines[idx].ProductID == productID {
			c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
			c.touch()
			return
		}
	}
}

// Clear removes all lines. Safe to call on an empty cart.
func (c *Cart) Clear() {
	if len(c.Lines) == 0 {
		return
	}
	c.Lines = c.Lines[:0]
	c.touch()
}

// GetLineByProduct returns the line for a product, or nil
func (c *Cart) GetLineByProduct(productID uuid.UUID) *CartLine {
	for idx := range c.Lines {
		if c.Lines[idx].ProductID == productID {
			return &c.Lines[idx]
		}
	}
	return nil
}

// IsEmpty returns true when the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// LineCount returns the number of distinct products in the cart
func (c *Cart) LineCount() int {
	return len(c.Lines)
}

// TotalQuantity returns the sum of all line quantities
func (c *Cart) TotalQuantity() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
