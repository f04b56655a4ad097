package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/application/checkout"
	"github.com/shopfront/backend/internal/interfaces/http/dto"
)

// IdempotencyKeyHeader carries the client's checkout deduplication key
const IdempotencyKeyHeader = "Idempotency-Key"

// CheckoutHandler handles checkout HTTP requests
type CheckoutHandler struct {
	BaseHandler
	service *checkout.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(service *checkout.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// insufficientStockResponse names every product that blocked a checkout
type insufficientStockResponse struct {
	FailingProductIDs []uuid.UUID `json:"failing_product_ids"`
}

// Checkout handles POST /checkout.
// The whole cart is converted into an order or nothing happens at all.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	idempotencyKey := c.GetHeader(IdempotencyKeyHeader)

	result, err := h.service.Checkout(c.Request.Context(), userID, idempotencyKey)
	if err != nil {
		h.handleCheckoutError(c, err)
		return
	}

	h.Created(c, result)
}

// handleCheckoutError special-cases the stock failure so the client
// learns which products to fix before retrying
func (h *CheckoutHandler) handleCheckoutError(c *gin.Context, err error) {
	var checkoutErr *checkout.CheckoutError
	if errors.As(err, &checkoutErr) {
		resp := dto.NewErrorResponseWithRequestID(
			dto.ErrCodeInsufficientStock,
			checkoutErr.Error(),
			getRequestID(c),
		)
		resp.Data = insufficientStockResponse{FailingProductIDs: checkoutErr.FailingProductIDs}
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}

	h.HandleError(c, err)
}
