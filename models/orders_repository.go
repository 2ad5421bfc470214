package models

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrdersRepository struct {
	db *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{db: db}
}

// PlaceOrder stores the order with its items and empties the cart of the
// order's session in the same transaction. Orders without a session leave
// every cart untouched.
func (r *OrdersRepository) PlaceOrder(ctx context.Context, order *Order) error {
	order.ID = 0
	order.PublicID = uuid.NewString()
	if order.Status == "" {
		order.Status = OrderStatusPending
	}
	for i := range order.Items {
		order.Items[i].ID = 0
		order.Items[i].Position = i
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		if order.SessionID == "" {
			return nil
		}
		if _, err := clearSession(tx, order.SessionID); err != nil {
			return err
		}
		return nil
	})
}

// GetAllOrders returns every order, newest first, with items in their
// original order.
func (r *OrdersRepository) GetAllOrders(ctx context.Context) ([]Order, error) {
	orders := []Order{}
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Order("created_at DESC").
		Order("id DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
