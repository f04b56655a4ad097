package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/cart"
	"github.com/shopfront/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements cart.CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByUserID finds a user's cart including its lines
func (r *GormCartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	var c cart.Cart
	err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&c, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetOrCreateByUserID returns the user's cart, creating an empty one if
// none exists. The unique index on user_id plus DoNothing makes the
// create race-safe; the loser of the race re-reads the winner's row.
func (r *GormCartRepository) GetOrCreateByUserID(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	existing, err := r.FindByUserID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	fresh, err := cart.NewCart(userID)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).
		Omit("Lines").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(fresh)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		// Lost the race; another request created the cart.
		return r.FindByUserID(ctx, userID)
	}
	return fresh, nil
}

// Save persists the cart and reconciles its lines so the stored rows
// match the aggregate. Runs in a transaction unless one is already open.
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(c).Error; err != nil {
			return err
		}

		keep := make([]uuid.UUID, 0, len(c.Lines))
		for idx := range c.Lines {
			line := &c.Lines[idx]
			line.CartID = c.ID
			keep = append(keep, line.ID)

			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
			}).Create(line).Error
			if err != nil {
				return err
			}
		}

		query := tx.Where("cart_id = ?", c.ID)
		if len(keep) > 0 {
			query = query.Where("id NOT IN ?", keep)
		}
		return query.Delete(&cart.CartLine{}).Error
	})
}

// Delete removes a cart and its lines
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&cart.CartLine{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&cart.Cart{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormCartRepository implements CartRepository
var _ cart.CartRepository = (*GormCartRepository)(nil)
