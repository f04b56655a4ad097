package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/order"
	"github.com/shopfront/backend/internal/domain/shared"
)

// OrderService is the read side of the order ledger. Orders are written
// exclusively by the checkout engine.
type OrderService struct {
	orderRepo       order.OrderRepository
	defaultPageSize int
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.OrderRepository, defaultPageSize int) *OrderService {
	if defaultPageSize <= 0 {
		defaultPageSize = 20
	}
	return &OrderService{
		orderRepo:       orderRepo,
		defaultPageSize: defaultPageSize,
	}
}

// GetByID returns one of the user's orders with its lines. An order
// belonging to a different user is reported as not found rather than
// leaking its existence.
func (s *OrderService) GetByID(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, shared.ErrNotFound
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// ListByUser returns a page of the user's order history, newest first
func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) (*shared.Paginated[OrderSummaryResponse], error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}

	filter := shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}

	orders, err := s.orderRepo.FindByUserID(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.orderRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToOrderSummaryResponses(orders), total, page, pageSize)
	return &result, nil
}
