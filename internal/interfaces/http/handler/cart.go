package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/application/cart"
)

// CartHandler handles cart HTTP requests.
// All routes operate on the authenticated user's own cart.
type CartHandler struct {
	BaseHandler
	service *cart.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(service *cart.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// ListItems handles GET /cart
func (h *CartHandler) ListItems(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	view, err := h.service.ListItems(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req cart.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	line, err := h.service.AddItem(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, line)
}

// UpdateItemQuantity handles PUT /cart/items/:productId
func (h *CartHandler) UpdateItemQuantity(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, ok := h.parseProductID(c)
	if !ok {
		return
	}

	var req cart.UpdateItemQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.service.UpdateItemQuantity(c.Request.Context(), userID, productID, req.Quantity); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RemoveItem handles DELETE /cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, ok := h.parseProductID(c)
	if !ok {
		return
	}

	if err := h.service.RemoveItem(c.Request.Context(), userID, productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Clear handles DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.service.Clear(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// parseProductID parses the :productId path parameter
func (h *CartHandler) parseProductID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return uuid.Nil, false
	}
	return id, true
}
