package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/application/checkout"
	domaincatalog "github.com/shopfront/backend/internal/domain/catalog"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	productRepo *MockProductRepository
	cartRepo    *MockCartRepository
	orderRepo   *MockOrderRepository
	store       *memIdempotencyStore
	router      *gin.Engine
}

func setupCheckoutRouter(userID uuid.UUID) *checkoutFixture {
	f := &checkoutFixture{
		productRepo: new(MockProductRepository),
		cartRepo:    new(MockCartRepository),
		orderRepo:   new(MockOrderRepository),
		store:       newMemIdempotencyStore(),
	}

	txScope := checkout.NewNoOpTransactionScope(f.productRepo, f.cartRepo, f.orderRepo)
	service := checkout.NewCheckoutService(txScope, f.cartRepo, f.productRepo, noopPublisher{}, f.store, 1, nil)
	h := NewCheckoutHandler(service)

	f.router = gin.New()
	f.router.Use(authAs(userID))
	f.router.POST("/checkout", h.Checkout)
	return f
}

func (f *checkoutFixture) post(headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	f.router.ServeHTTP(w, req)
	return w
}

func TestCheckoutHandler_Checkout(t *testing.T) {
	userID := uuid.New()
	f := setupCheckoutRouter(userID)

	product := newTestProduct(t, "Keyboard", "49.99", 10)
	userCart := newTestCart(t, userID)
	_, err := userCart.AddOrMergeLine(product.ID, 2)
	require.NoError(t, err)

	f.cartRepo.On("FindByUserID", mock.Anything, userID).Return(userCart, nil)
	f.productRepo.On("FindByIDs", mock.Anything, []uuid.UUID{product.ID}).
		Return([]domaincatalog.Product{*product}, nil)
	f.productRepo.On("DecrementStock", mock.Anything, product.ID, int64(2)).Return(nil)
	f.orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
	f.cartRepo.On("Save", mock.Anything, userCart).Return(nil)

	w := f.post(nil)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["order_id"])
	assert.Equal(t, userID.String(), data["user_id"])
	assert.Equal(t, "99.98", data["total"])

	lines, ok := data["lines"].([]interface{})
	require.True(t, ok)
	require.Len(t, lines, 1)

	line := lines[0].(map[string]interface{})
	assert.Equal(t, product.ID.String(), line["product_id"])
	assert.Equal(t, "Keyboard", line["product_name"])
	assert.Equal(t, float64(2), line["quantity"])
	assert.Equal(t, "49.99", line["unit_price"])

	// The cart is emptied by the successful checkout.
	assert.True(t, userCart.IsEmpty())

	f.productRepo.AssertExpectations(t)
	f.orderRepo.AssertExpectations(t)
	f.cartRepo.AssertExpectations(t)
}

func TestCheckoutHandler_Checkout_EmptyCart(t *testing.T) {
	userID := uuid.New()
	f := setupCheckoutRouter(userID)

	f.cartRepo.On("FindByUserID", mock.Anything, userID).Return(newTestCart(t, userID), nil)

	w := f.post(nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeEmptyCart, resp.Error.Code)

	f.orderRepo.AssertNotCalled(t, "Create")
}

func TestCheckoutHandler_Checkout_NoCartYet(t *testing.T) {
	userID := uuid.New()
	f := setupCheckoutRouter(userID)

	f.cartRepo.On("FindByUserID", mock.Anything, userID).Return(nil, shared.ErrNotFound)

	w := f.post(nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeEmptyCart, resp.Error.Code)
}

func TestCheckoutHandler_Checkout_InsufficientStock(t *testing.T) {
	userID := uuid.New()
	f := setupCheckoutRouter(userID)

	inStock := newTestProduct(t, "Keyboard", "49.99", 10)
	outOfStock := newTestProduct(t, "Monitor", "299.00", 1)

	userCart := newTestCart(t, userID)
	_, err := userCart.AddOrMergeLine(inStock.ID, 2)
	require.NoError(t, err)
	_, err = userCart.AddOrMergeLine(outOfStock.ID, 5)
	require.NoError(t, err)

	f.cartRepo.On("FindByUserID", mock.Anything, userID).Return(userCart, nil)
	f.productRepo.On("FindByIDs", mock.Anything, mock.Anything).
		Return([]domaincatalog.Product{*inStock, *outOfStock}, nil)
	f.productRepo.On("DecrementStock", mock.Anything, inStock.ID, int64(2)).Return(nil)
	f.productRepo.On("DecrementStock", mock.Anything, outOfStock.ID, int64(5)).
		Return(shared.ErrInsufficientStock)

	key := uuid.NewString()
	w := f.post(map[string]string{IdempotencyKeyHeader: key})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInsufficientStock, resp.Error.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	failing, ok := data["failing_product_ids"].([]interface{})
	require.True(t, ok)
	require.Len(t, failing, 1)
	assert.Equal(t, outOfStock.ID.String(), failing[0])

	// A failed checkout never writes an order and leaves the cart alone.
	f.orderRepo.AssertNotCalled(t, "Create")
	f.cartRepo.AssertNotCalled(t, "Save")
	assert.Equal(t, 2, userCart.LineCount())

	// The key is released on failure so the client can retry with it.
	fresh, err := f.store.PutIfAbsent(context.Background(), key, 0)
	require.NoError(t, err)
	assert.True(t, fresh)
}

func TestCheckoutHandler_Checkout_DuplicateIdempotencyKey(t *testing.T) {
	userID := uuid.New()
	f := setupCheckoutRouter(userID)

	product := newTestProduct(t, "Keyboard", "49.99", 10)
	userCart := newTestCart(t, userID)
	_, err := userCart.AddOrMergeLine(product.ID, 1)
	require.NoError(t, err)

	f.cartRepo.On("FindByUserID", mock.Anything, userID).Return(userCart, nil)
	f.productRepo.On("FindByIDs", mock.Anything, mock.Anything).
		Return([]domaincatalog.Product{*product}, nil)
	f.productRepo.On("DecrementStock", mock.Anything, product.ID, int64(1)).Return(nil)
	f.orderRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.cartRepo.On("Save", mock.Anything, userCart).Return(nil)

	key := uuid.NewString()

	first := f.post(map[string]string{IdempotencyKeyHeader: key})
	assert.Equal(t, http.StatusCreated, first.Code)

	second := f.post(map[string]string{IdempotencyKeyHeader: key})
	assert.Equal(t, http.StatusConflict, second.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeDuplicateRequest, resp.Error.Code)

	// Only one order was placed.
	f.orderRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestCheckoutHandler_Checkout_ProductVanished(t *testing.T) {
	userID := uuid.New()
	f := setupCheckoutRouter(userID)

	userCart := newTestCart(t, userID)
	_, err := userCart.AddOrMergeLine(uuid.New(), 1)
	require.NoError(t, err)

	f.cartRepo.On("FindByUserID", mock.Anything, userID).Return(userCart, nil)
	f.productRepo.On("FindByIDs", mock.Anything, mock.Anything).
		Return([]domaincatalog.Product{}, nil)

	w := f.post(nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	f.productRepo.AssertNotCalled(t, "DecrementStock")
}

func TestCheckoutHandler_Checkout_Unauthenticated(t *testing.T) {
	f := &checkoutFixture{
		productRepo: new(MockProductRepository),
		cartRepo:    new(MockCartRepository),
		orderRepo:   new(MockOrderRepository),
		store:       newMemIdempotencyStore(),
	}
	txScope := checkout.NewNoOpTransactionScope(f.productRepo, f.cartRepo, f.orderRepo)
	service := checkout.NewCheckoutService(txScope, f.cartRepo, f.productRepo, noopPublisher{}, f.store, 1, nil)
	h := NewCheckoutHandler(service)

	r := gin.New()
	r.POST("/checkout", h.Checkout)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	f.cartRepo.AssertNotCalled(t, "FindByUserID")
}
