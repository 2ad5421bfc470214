package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusPending is the only status an order is created with. No
// transitions are defined.
const OrderStatusPending = "pending"

// Order is a checkout snapshot. Items and Total are stored exactly as the
// client sent them.
type Order struct {
	ID            uint            `gorm:"primaryKey"`
	PublicID      string          `gorm:"size:36;uniqueIndex;not null"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CustomerEmail string          `gorm:"size:255;not null"`
	Status        string          `gorm:"size:32;not null;default:'pending'"`
	SessionID     string          `gorm:"size:255;index"`
	CreatedAt     time.Time       `gorm:"index"`
}

func (o *Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order. Position keeps the order in which the
// client listed the lines.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey"`
	OrderID     uint            `gorm:"index;not null"`
	Position    int             `gorm:"not null"`
	CartItemID  string          `gorm:"size:36"`
	ProductID   string          `gorm:"size:36;index"`
	ProductName string          `gorm:"size:255"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2)"`
	ImageURL    string          `gorm:"size:1024"`
	Quantity    int             `gorm:"not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(10,2)"`
}

func (i *OrderItem) TableName() string {
	return "order_items"
}
