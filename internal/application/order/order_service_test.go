package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/order"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockOrderRepository is a mock implementation of order.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

var _ order.OrderRepository = (*MockOrderRepository)(nil)

func newTestOrder(t *testing.T, userID uuid.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(userID, []order.LineInput{
		{ProductID: uuid.New(), ProductName: "Widget", Quantity: 2, UnitPrice: valueobject.NewMoneyUSDFromFloat(10.00)},
	})
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func TestOrderServiceGetByID(t *testing.T) {
	repo := new(MockOrderRepository)
	service := NewOrderService(repo, 20)

	userID := uuid.New()
	o := newTestOrder(t, userID)
	repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	resp, err := service.GetByID(context.Background(), userID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, resp.ID)
	assert.Equal(t, "20.00", resp.Total.StringFixed(2))
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "Widget", resp.Lines[0].ProductName)
}

func TestOrderServiceGetByIDWrongUser(t *testing.T) {
	repo := new(MockOrderRepository)
	service := NewOrderService(repo, 20)

	o := newTestOrder(t, uuid.New())
	repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	// Another user's order looks like it does not exist.
	_, err := service.GetByID(context.Background(), uuid.New(), o.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOrderServiceListByUser(t *testing.T) {
	repo := new(MockOrderRepository)
	service := NewOrderService(repo, 10)

	userID := uuid.New()
	orders := []order.Order{*newTestOrder(t, userID), *newTestOrder(t, userID)}

	expected := shared.Filter{Page: 1, PageSize: 10, OrderBy: "created_at", OrderDir: "desc"}
	repo.On("FindByUserID", mock.Anything, userID, expected).Return(orders, nil)
	repo.On("CountByUserID", mock.Anything, userID).Return(int64(2), nil)

	// Non-positive pages normalize to the first page.
	result, err := service.ListByUser(context.Background(), userID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, int64(2), result.Total)
	require.Len(t, result.Items, 2)
	assert.Equal(t, 1, result.Items[0].LineCount)
}

func TestOrderPlacedHandler(t *testing.T) {
	handler := NewOrderPlacedHandler(zap.NewNop())
	assert.Equal(t, []string{order.EventTypeOrderPlaced}, handler.EventTypes())

	o := newTestOrder(t, uuid.New())
	event := order.NewOrderPlacedEvent(o)
	require.NoError(t, handler.Handle(context.Background(), event))
}
