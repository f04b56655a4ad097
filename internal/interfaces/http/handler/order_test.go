package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/application/order"
	domainorder "github.com/shopfront/backend/internal/domain/order"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
	"github.com/shopfront/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupOrderRouter(repo *MockOrderRepository, userID uuid.UUID) *gin.Engine {
	service := order.NewOrderService(repo, 20)
	h := NewOrderHandler(service)

	r := gin.New()
	r.Use(authAs(userID))
	r.GET("/orders", h.ListOrders)
	r.GET("/orders/:id", h.GetOrder)
	return r
}

func newTestOrder(t *testing.T, userID uuid.UUID, name, price string, quantity int64) *domainorder.Order {
	t.Helper()
	unitPrice, err := valueobject.NewMoneyUSDFromString(price)
	require.NoError(t, err)
	o, err := domainorder.NewOrder(userID, []domainorder.LineInput{{
		ProductID:   uuid.New(),
		ProductName: name,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}})
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func TestOrderHandler_ListOrders(t *testing.T) {
	repo := new(MockOrderRepository)
	userID := uuid.New()
	router := setupOrderRouter(repo, userID)

	orders := []domainorder.Order{
		*newTestOrder(t, userID, "Keyboard", "49.99", 2),
		*newTestOrder(t, userID, "Mouse", "19.99", 1),
	}
	repo.On("FindByUserID", mock.Anything, userID, mock.Anything).Return(orders, nil)
	repo.On("CountByUserID", mock.Anything, userID).Return(int64(2), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(2), resp.Meta.Total)
	assert.Equal(t, 20, resp.Meta.PageSize)

	items, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, items, 2)

	summary := items[0].(map[string]interface{})
	assert.Equal(t, "99.98", summary["total"])
	assert.Equal(t, float64(1), summary["line_count"])

	repo.AssertExpectations(t)
}

func TestOrderHandler_ListOrders_Empty(t *testing.T) {
	repo := new(MockOrderRepository)
	userID := uuid.New()
	router := setupOrderRouter(repo, userID)

	repo.On("FindByUserID", mock.Anything, userID, mock.Anything).
		Return([]domainorder.Order{}, nil)
	repo.On("CountByUserID", mock.Anything, userID).Return(int64(0), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(0), resp.Meta.Total)
}

func TestOrderHandler_GetOrder(t *testing.T) {
	repo := new(MockOrderRepository)
	userID := uuid.New()
	router := setupOrderRouter(repo, userID)

	o := newTestOrder(t, userID, "Keyboard", "49.99", 2)
	repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/"+o.ID.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, o.ID.String(), data["id"])
	assert.Equal(t, "99.98", data["total"])

	lines, ok := data["lines"].([]interface{})
	require.True(t, ok)
	require.Len(t, lines, 1)
	assert.Equal(t, "Keyboard", lines[0].(map[string]interface{})["product_name"])
}

func TestOrderHandler_GetOrder_NotFound(t *testing.T) {
	repo := new(MockOrderRepository)
	userID := uuid.New()
	router := setupOrderRouter(repo, userID)

	repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/"+uuid.NewString(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_GetOrder_OtherUsersOrder(t *testing.T) {
	repo := new(MockOrderRepository)
	userID := uuid.New()
	router := setupOrderRouter(repo, userID)

	// The order exists but belongs to someone else. It must look like it
	// does not exist at all.
	other := newTestOrder(t, uuid.New(), "Keyboard", "49.99", 1)
	repo.On("FindByID", mock.Anything, other.ID).Return(other, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/"+other.ID.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}

func TestOrderHandler_GetOrder_InvalidID(t *testing.T) {
	repo := new(MockOrderRepository)
	router := setupOrderRouter(repo, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "FindByID")
}
