package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/cart"
	"github.com/shopfront/backend/internal/domain/catalog"
	"github.com/shopfront/backend/internal/domain/order"
	"github.com/shopfront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultConflictRetries bounds how often a checkout contended at the
// storage level is re-attempted before the conflict is surfaced.
const DefaultConflictRetries = 3

// idempotencyKeyTTL is how long a consumed Idempotency-Key blocks
// duplicate checkout requests.
const idempotencyKeyTTL = 24 * time.Hour

// CheckoutService turns a user's cart into an order. The reserve and
// commit steps run inside a single database transaction, so a checkout
// either fully succeeds (order created, stock reduced, ordered lines
// removed from the cart) or leaves no durable trace.
type CheckoutService struct {
	txScope          TransactionScope
	cartRepo         cart.CartRepository
	productRepo      catalog.ProductRepository
	eventPublisher   shared.EventPublisher
	idempotencyStore IdempotencyStore
	conflictRetries  int
	logger           *zap.Logger
}

// NewCheckoutService creates a new CheckoutService. eventPublisher and
// idempotencyStore may be nil, which disables the respective feature;
// a nil logger falls back to a no-op logger.
func NewCheckoutService(
	txScope TransactionScope,
	cartRepo cart.CartRepository,
	productRepo catalog.ProductRepository,
	eventPublisher shared.EventPublisher,
	idempotencyStore IdempotencyStore,
	conflictRetries int,
	logger *zap.Logger,
) *CheckoutService {
	if conflictRetries <= 0 {
		conflictRetries = DefaultConflictRetries
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		txScope:          txScope,
		cartRepo:         cartRepo,
		productRepo:      productRepo,
		eventPublisher:   eventPublisher,
		idempotencyStore: idempotencyStore,
		conflictRetries:  conflictRetries,
		logger:           logger,
	}
}

// Checkout places an order from the user's current cart contents.
// idempotencyKey may be empty; when set, a key seen before fails with
// shared.ErrDuplicateRequest instead of placing a second order.
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, idempotencyKey string) (*CheckoutResponse, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	if idempotencyKey != "" && s.idempotencyStore != nil {
		fresh, err := s.idempotencyStore.PutIfAbsent(ctx, idempotencyKey, idempotencyKeyTTL)
		if err != nil {
			return nil, err
		}
		if !fresh {
			return nil, shared.ErrDuplicateRequest
		}
	}

	attempt := NewCheckout(userID)
	placed, err := s.run(ctx, attempt)
	if err != nil {
		attempt.Abort()
		s.releaseKey(ctx, idempotencyKey)
		return nil, err
	}

	response := ToCheckoutResponse(placed)
	return &response, nil
}

// releaseKey frees a claimed idempotency key so the client can retry
// after a failure. A key that cannot be freed blocks that client for
// the key TTL, so the failure is logged rather than swallowed.
func (s *CheckoutService) releaseKey(ctx context.Context, idempotencyKey string) {
	if idempotencyKey == "" || s.idempotencyStore == nil {
		return
	}
	if err := s.idempotencyStore.Remove(ctx, idempotencyKey); err != nil {
		s.logger.Warn("Failed to release idempotency key",
			zap.String("idempotency_key", idempotencyKey),
			zap.Error(err),
		)
	}
}

func (s *CheckoutService) run(ctx context.Context, attempt *Checkout) (*order.Order, error) {
	// Started: snapshot the cart lines.
	userCart, err := s.cartRepo.FindByUserID(ctx, attempt.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrEmptyCart
		}
		return nil, err
	}
	if userCart.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}

	// Validating: advisory existence check. Final correctness is
	// enforced by the conditional decrements during Reserving.
	if err := attempt.Advance(StatusValidating); err != nil {
		return nil, err
	}
	if _, err := s.loadLineProducts(ctx, s.productRepo, userCart); err != nil {
		return nil, err
	}

	if err := attempt.Advance(StatusReserving); err != nil {
		return nil, err
	}

	// A storage-level conflict aborts the enclosing transaction, so the
	// retry re-runs the whole reserve-and-commit attempt against fresh
	// state instead of re-issuing a statement into a dead transaction.
	var placed *order.Order
	for try := 0; ; try++ {
		placed, err = s.reserveAndCommit(ctx, attempt, userCart)
		if !errors.Is(err, shared.ErrConcurrencyConflict) || try+1 >= s.conflictRetries {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	if err := attempt.Advance(StatusCompleted); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, placed)

	return placed, nil
}

// reserveAndCommit runs the Reserving and Committing steps inside one
// database transaction and returns the placed order.
func (s *CheckoutService) reserveAndCommit(ctx context.Context, attempt *Checkout, userCart *cart.Cart) (*order.Order, error) {
	var placed *order.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		// Reserving: conditional decrement per line. Failures do not
		// stop the loop; the caller gets the complete list of products
		// that lacked stock, and the error rolls everything back.
		var failing []uuid.UUID
		for _, line := range userCart.Lines {
			err := repos.ProductRepo().DecrementStock(ctx, line.ProductID, line.Quantity)
			switch {
			case err == nil:
			case errors.Is(err, shared.ErrInsufficientStock), errors.Is(err, shared.ErrNotFound):
				failing = append(failing, line.ProductID)
			default:
				return err
			}
		}
		if len(failing) > 0 {
			return &CheckoutError{FailingProductIDs: failing}
		}

		// A conflicted earlier try may already have advanced.
		if attempt.Status == StatusReserving {
			if err := attempt.Advance(StatusCommitting); err != nil {
				return err
			}
		}

		// Committing: snapshot prices from the in-transaction read and
		// write the order, all in this transaction.
		products, err := s.loadLineProducts(ctx, repos.ProductRepo(), userCart)
		if err != nil {
			return err
		}

		inputs := make([]order.LineInput, 0, len(userCart.Lines))
		for _, line := range userCart.Lines {
			product := products[line.ProductID]
			inputs = append(inputs, order.LineInput{
				ProductID:   line.ProductID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   product.GetPriceMoney(),
			})
		}

		o, err := order.NewOrder(attempt.UserID, inputs)
		if err != nil {
			return err
		}
		if err := repos.OrderRepo().Create(ctx, o); err != nil {
			return err
		}

		// Remove only the snapshotted lines from the cart. A line the
		// user added while this checkout was in flight was not ordered
		// and stays in the cart.
		txCart, err := repos.CartRepo().FindByUserID(ctx, attempt.UserID)
		if err != nil {
			return err
		}
		for _, line := range userCart.Lines {
			txCart.RemoveLine(line.ProductID)
		}
		if err := repos.CartRepo().Save(ctx, txCart); err != nil {
			return err
		}

		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

// loadLineProducts resolves every cart line's product, failing with
// shared.ErrNotFound if any product has disappeared from the catalog.
func (s *CheckoutService) loadLineProducts(ctx context.Context, repo catalog.ProductRepository, userCart *cart.Cart) (map[uuid.UUID]*catalog.Product, error) {
	ids := make([]uuid.UUID, 0, len(userCart.Lines))
	for _, line := range userCart.Lines {
		ids = append(ids, line.ProductID)
	}

	products, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for idx := range products {
		byID[products[idx].ID] = &products[idx]
	}
	for _, line := range userCart.Lines {
		if _, ok := byID[line.ProductID]; !ok {
			return nil, shared.ErrNotFound
		}
	}
	return byID, nil
}

func (s *CheckoutService) publishEvents(ctx context.Context, placed *order.Order) {
	if s.eventPublisher == nil {
		return
	}
	events := placed.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	placed.ClearDomainEvents()
}
