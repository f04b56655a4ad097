package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/catalog"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
)

// CatalogService handles product browsing and administration
type CatalogService struct {
	productRepo     catalog.ProductRepository
	eventPublisher  shared.EventPublisher
	defaultPageSize int
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(productRepo catalog.ProductRepository, eventPublisher shared.EventPublisher, defaultPageSize int) *CatalogService {
	if defaultPageSize <= 0 {
		defaultPageSize = 20
	}
	return &CatalogService{
		productRepo:     productRepo,
		eventPublisher:  eventPublisher,
		defaultPageSize: defaultPageSize,
	}
}

// GetProduct returns a single product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// ListProducts returns one page of the catalog ordered by product ID.
// Pages start at 1; a page of zero or less is treated as the first page.
func (s *CatalogService) ListProducts(ctx context.Context, page, pageSize int) (*shared.Paginated[ProductResponse], error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}

	filter := shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  "id",
		OrderDir: "asc",
	}

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToProductResponses(products), total, page, pageSize)
	return &result, nil
}

// CreateProduct creates a new catalog product
func (s *CatalogService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	price, err := valueobject.NewMoney(req.Price, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, req.Description, price, req.Quantity)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// UpdateProduct updates a product's name, description or price
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := product.Name
		description := product.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.Price != nil {
		price, err := valueobject.NewMoney(*req.Price, valueobject.DefaultCurrency)
		if err != nil {
			return nil, err
		}
		if err := product.SetPrice(price); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// DeleteProduct removes a product from the catalog
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// RestockProduct adds stock to a product through the guarded update path
func (s *CatalogService) RestockProduct(ctx context.Context, id uuid.UUID, amount int64) (*ProductResponse, error) {
	if amount <= 0 {
		return nil, shared.ErrInvalidQuantity
	}

	if err := s.productRepo.IncrementStock(ctx, id, amount); err != nil {
		return nil, err
	}

	return s.GetProduct(ctx, id)
}

// publishEvents publishes and clears the aggregate's buffered events.
// Publish failures are not fatal to the operation; the write has already
// been committed.
func (s *CatalogService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		return
	}
	events := product.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	product.ClearDomainEvents()
}
