package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct {
	db *gorm.DB
}

// ErrCartItemNotFound is returned when a cart item is not found.
var ErrCartItemNotFound = errors.New("cart item not found")

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// GetBySession returns the session's cart lines in insertion order.
func (r *CartRepository) GetBySession(ctx context.Context, sessionID string) ([]CartItem, error) {
	items := []CartItem{}
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return items, nil
}

// AddItem inserts a cart line or, when the session already holds the
// product, adds item.Quantity to the stored quantity. The upsert and the
// reload share a transaction so a concurrent checkout cannot remove the row
// in between. On return item reflects the stored row.
func (r *CartRepository) AddItem(ctx context.Context, item *CartItem) error {
	item.ID = 0
	item.PublicID = uuid.NewString()

	var stored CartItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "product_id"}, {Name: "session_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity": incrementQuantity(tx),
			}),
		}).Create(item).Error; err != nil {
			return fmt.Errorf("failed to add cart item: %w", err)
		}

		if err := tx.
			Where("product_id = ? AND session_id = ?", item.ProductID, item.SessionID).
			First(&stored).Error; err != nil {
			return fmt.Errorf("failed to reload cart item: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	*item = stored
	return nil
}

// incrementQuantity builds the conflict update expression. MySQL has no
// EXCLUDED pseudo-table and reads the proposed row through VALUES().
func incrementQuantity(db *gorm.DB) clause.Expr {
	if db.Dialector.Name() == "mysql" {
		return gorm.Expr("quantity + VALUES(quantity)")
	}
	return gorm.Expr("cart_items.quantity + excluded.quantity")
}

func (r *CartRepository) DeleteItem(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("public_id = ?", id).Delete(&CartItem{})
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// clearSession removes every cart line of the session and reports how many
// were deleted.
func clearSession(db *gorm.DB, sessionID string) (int64, error) {
	result := db.Where("session_id = ?", sessionID).Delete(&CartItem{})
	if err := result.Error; err != nil {
		return 0, fmt.Errorf("failed to clear cart: %w", err)
	}
	return result.RowsAffected, nil
}
