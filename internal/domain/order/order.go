package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OrderLine is one product entry on a placed order. The unit price is a
// snapshot taken at checkout time; later catalog price changes never
// alter it.
type OrderLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Quantity * UnitPrice
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "order_lines"
}

// NewOrderLine creates an order line from checkout-time product state
func NewOrderLine(orderID, productID uuid.UUID, productName string, quantity int64, unitPrice valueobject.Money) (*OrderLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	qty := decimal.NewFromInt(quantity)

	return &OrderLine{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		Amount:      qty.Mul(unitPrice.Amount()),
		CreatedAt:   time.Now(),
	}, nil
}

// GetUnitPriceMoney returns the snapshotted unit price as Money
func (l *OrderLine) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(l.UnitPrice)
}

// GetAmountMoney returns the line amount as Money
func (l *OrderLine) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(l.Amount)
}

// Order is the ledger record of a completed checkout. Orders are
// append-only: once placed they are never mutated, only read.
type Order struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Lines  []OrderLine     `gorm:"foreignKey:OrderID"`
	Total  decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Sum of line amounts
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// LineInput carries checkout-time product state for one order line
type LineInput struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int64
	UnitPrice   valueobject.Money
}

// NewOrder creates an order from the validated cart contents. The order
// total is computed from the lines; an order with no lines is invalid.
func NewOrder(userID uuid.UUID, inputs []LineInput) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if len(inputs) == 0 {
		return nil, shared.ErrEmptyCart
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Lines:             make([]OrderLine, 0, len(inputs)),
		Total:             decimal.Zero,
	}

	for _, in := range inputs {
		line, err := NewOrderLine(o.ID, in.ProductID, in.ProductName, in.Quantity, in.UnitPrice)
		if err != nil {
			return nil, err
		}
		o.Lines = append(o.Lines, *line)
		o.Total = o.Total.Add(line.Amount)
	}

	o.AddDomainEvent(NewOrderPlacedEvent(o))

	return o, nil
}

// GetTotalMoney returns the order total as Money
func (o *Order) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.Total)
}

// LineCount returns the number of lines on the order
func (o *Order) LineCount() int {
	return len(o.Lines)
}

// TotalQuantity returns the sum of all line quantities
func (o *Order) TotalQuantity() int64 {
	var total int64
	for _, line := range o.Lines {
		total += line.Quantity
	}
	return total
}

// GetLineByProduct returns the line for a product, or nil
func (o *Order) GetLineByProduct(productID uuid.UUID) *OrderLine {
	for idx := range o.Lines {
		if o.Lines[idx].ProductID == productID {
			return &o.Lines[idx]
		}
	}
	return nil
}
