package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/cart"
	"github.com/shopfront/backend/internal/domain/catalog"
	"github.com/shopfront/backend/internal/domain/shared"
)

// CartService handles a user's pending selection. Every user has at
// most one cart; it is created lazily on first write.
type CartService struct {
	cartRepo    cart.CartRepository
	productRepo catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(cartRepo cart.CartRepository, productRepo catalog.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddItem adds quantity units of a product to the user's cart. Adding a
// product already in the cart increases the existing line's quantity.
func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int64) (*CartLineResponse, error) {
	if quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	userCart, err := s.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	line, err := userCart.AddOrMergeLine(productID, quantity)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, userCart); err != nil {
		return nil, err
	}

	response := ToCartLineResponse(line, product)
	return &response, nil
}

// UpdateItemQuantity sets a line's quantity directly. A quantity of zero
// or less removes the line.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int64) error {
	if quantity > 0 {
		// The line may be created by this call, so the product must exist.
		if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
			return err
		}
	}

	userCart, err := s.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if err := userCart.SetLineQuantity(productID, quantity); err != nil {
		return err
	}

	return s.cartRepo.Save(ctx, userCart)
}

// RemoveItem removes a product's line from the cart. Removing a line
// that does not exist, or from a user with no cart, succeeds.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	userCart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	if userCart.GetLineByProduct(productID) == nil {
		return nil
	}

	userCart.RemoveLine(productID)
	return s.cartRepo.Save(ctx, userCart)
}

// ListItems returns the cart contents with product name, price and
// availability resolved from the catalog. A user without a cart gets an
// empty view.
func (s *CartService) ListItems(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	userCart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &CartResponse{UserID: userID, Lines: []CartLineResponse{}}, nil
		}
		return nil, err
	}

	products, err := s.resolveProducts(ctx, userCart)
	if err != nil {
		return nil, err
	}

	response := ToCartResponse(userCart, products)
	return &response, nil
}

// Clear removes all lines from the user's cart. Safe to call when the
// cart is already empty or does not exist.
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	userCart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	if userCart.IsEmpty() {
		return nil
	}

	userCart.Clear()
	return s.cartRepo.Save(ctx, userCart)
}

func (s *CartService) resolveProducts(ctx context.Context, userCart *cart.Cart) (map[uuid.UUID]*catalog.Product, error) {
	if userCart.IsEmpty() {
		return map[uuid.UUID]*catalog.Product{}, nil
	}

	ids := make([]uuid.UUID, 0, len(userCart.Lines))
	for _, line := range userCart.Lines {
		ids = append(ids, line.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for idx := range products {
		byID[products[idx].ID] = &products[idx]
	}
	return byID, nil
}
