package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// CheckoutLineResponse represents one line of a placed order
type CheckoutLineResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// CheckoutResponse represents the outcome of a successful checkout
type CheckoutResponse struct {
	OrderID   uuid.UUID              `json:"order_id"`
	UserID    uuid.UUID              `json:"user_id"`
	Total     decimal.Decimal        `json:"total"`
	Lines     []CheckoutLineResponse `json:"lines"`
	CreatedAt time.Time              `json:"created_at"`
}

// ToCheckoutResponse converts a placed order to the checkout result
func ToCheckoutResponse(o *order.Order) CheckoutResponse {
	lines := make([]CheckoutLineResponse, len(o.Lines))
	for i, line := range o.Lines {
		lines[i] = CheckoutLineResponse{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Amount:      line.Amount,
		}
	}
	return CheckoutResponse{
		OrderID:   o.ID,
		UserID:    o.UserID,
		Total:     o.Total,
		Lines:     lines,
		CreatedAt: o.CreatedAt,
	}
}
