package catalog

import (
	"time"

	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Product represents a sellable item in the catalog.
// It is the aggregate root for catalog operations and the source of
// truth for available stock.
type Product struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Unit selling price
	Quantity    int64           `gorm:"not null;default:0"`                    // Units available for sale
	Sold        int64           `gorm:"not null;default:0"`                    // Cumulative units sold
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with an initial price and stock level
func NewProduct(name, description string, price valueobject.Money, quantity int64) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Initial stock cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Price:             price.Amount(),
		Quantity:          quantity,
		Sold:              0,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPrice updates the selling price.
// Orders already committed keep the price they were created with.
func (p *Product) SetPrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	oldPrice := p.Price
	p.Price = price.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPrice))

	return nil
}

// Restock increases the available quantity
func (p *Product) Restock(amount int64) error {
	if amount <= 0 {
		return shared.ErrInvalidQuantity
	}

	p.Quantity += amount
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// CanFulfill reports whether the requested amount is currently in stock.
// This is an advisory read; the authoritative check happens in the
// conditional stock decrement at reservation time.
func (p *Product) CanFulfill(amount int64) bool {
	return amount > 0 && p.Quantity >= amount
}

// IsOutOfStock returns true when no units remain
func (p *Product) IsOutOfStock() bool {
	return p.Quantity <= 0
}

// GetPriceMoney returns the selling price as a Money value object
func (p *Product) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Price)
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
