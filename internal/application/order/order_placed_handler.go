package order

import (
	"context"

	"github.com/shopfront/backend/internal/domain/order"
	"github.com/shopfront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderPlacedHandler reacts to completed checkouts. It currently writes
// a structured notification log entry; a mail or webhook notifier can
// hang off the same subscription.
type OrderPlacedHandler struct {
	logger *zap.Logger
}

// NewOrderPlacedHandler creates a new OrderPlacedHandler
func NewOrderPlacedHandler(logger *zap.Logger) *OrderPlacedHandler {
	return &OrderPlacedHandler{logger: logger}
}

// EventTypes returns the event types this handler subscribes to
func (h *OrderPlacedHandler) EventTypes() []string {
	return []string{order.EventTypeOrderPlaced}
}

// Handle processes a single OrderPlaced event
func (h *OrderPlacedHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	placed, ok := event.(*order.OrderPlacedEvent)
	if !ok {
		return nil
	}

	h.logger.Info("order placed",
		zap.String("order_id", placed.OrderID.String()),
		zap.String("user_id", placed.UserID.String()),
		zap.String("total", placed.Total.String()),
		zap.Int("line_count", placed.LineCount),
	)
	return nil
}

var _ shared.EventHandler = (*OrderPlacedHandler)(nil)
