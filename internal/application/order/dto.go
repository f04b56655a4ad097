package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// OrderLineResponse represents one line of an order in API responses
type OrderLineResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID        uuid.UUID           `json:"id"`
	UserID    uuid.UUID           `json:"user_id"`
	Total     decimal.Decimal     `json:"total"`
	Lines     []OrderLineResponse `json:"lines"`
	CreatedAt time.Time           `json:"created_at"`
}

// OrderSummaryResponse represents an order in history listings,
// without its lines
type OrderSummaryResponse struct {
	ID        uuid.UUID       `json:"id"`
	Total     decimal.Decimal `json:"total"`
	LineCount int             `json:"line_count"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *order.Order) OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i, line := range o.Lines {
		lines[i] = OrderLineResponse{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Amount:      line.Amount,
		}
	}
	return OrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		Total:     o.Total,
		Lines:     lines,
		CreatedAt: o.CreatedAt,
	}
}

// ToOrderSummaryResponses converts domain Orders to history summaries
func ToOrderSummaryResponses(orders []order.Order) []OrderSummaryResponse {
	summaries := make([]OrderSummaryResponse, len(orders))
	for i := range orders {
		summaries[i] = OrderSummaryResponse{
			ID:        orders[i].ID,
			Total:     orders[i].Total,
			LineCount: orders[i].LineCount(),
			CreatedAt: orders[i].CreatedAt,
		}
	}
	return summaries
}
