package cart

import (
	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/cart"
	"github.com/shopfront/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// AddItemRequest represents a request to add a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required"`
}

// UpdateItemQuantityRequest represents a request to set a line's quantity
type UpdateItemQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

// CartLineResponse represents one cart line with product display data
// resolved from the catalog at read time
type CartLineResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
	Available   int64           `json:"available"`
	InStock     bool            `json:"in_stock"`
}

// CartResponse represents the full cart in API responses
type CartResponse struct {
	ID            uuid.UUID          `json:"id"`
	UserID        uuid.UUID          `json:"user_id"`
	Lines         []CartLineResponse `json:"lines"`
	TotalQuantity int64              `json:"total_quantity"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
}

// ToCartLineResponse joins a cart line with its catalog product.
// A nil product means the product was removed from the catalog after
// the line was added; the line is shown as unavailable.
func ToCartLineResponse(line *cart.CartLine, product *catalog.Product) CartLineResponse {
	resp := CartLineResponse{
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
		Amount:    decimal.Zero,
	}
	if product != nil {
		resp.ProductName = product.Name
		resp.UnitPrice = product.Price
		resp.Amount = product.Price.Mul(decimal.NewFromInt(line.Quantity))
		resp.Available = product.Quantity
		resp.InStock = product.CanFulfill(line.Quantity)
	}
	return resp
}

// ToCartResponse builds the full cart view from the aggregate and the
// catalog products referenced by its lines (keyed by product ID)
func ToCartResponse(c *cart.Cart, products map[uuid.UUID]*catalog.Product) CartResponse {
	resp := CartResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		Lines:       make([]CartLineResponse, 0, len(c.Lines)),
		TotalAmount: decimal.Zero,
	}
	for idx := range c.Lines {
		line := ToCartLineResponse(&c.Lines[idx], products[c.Lines[idx].ProductID])
		resp.Lines = append(resp.Lines, line)
		resp.TotalQuantity += line.Quantity
		resp.TotalAmount = resp.TotalAmount.Add(line.Amount)
	}
	return resp
}
