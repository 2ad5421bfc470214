package models

// CartItem is one line of an anonymous shopper's cart. ProductID holds the
// product's public id and is not a foreign key: products may be deleted
// while still referenced by carts.
type CartItem struct {
	ID        uint   `gorm:"primaryKey"`
	PublicID  string `gorm:"size:36;uniqueIndex;not null"`
	ProductID string `gorm:"size:36;not null;uniqueIndex:idx_cart_product_session"`
	SessionID string `gorm:"size:255;not null;uniqueIndex:idx_cart_product_session;index"`
	Quantity  int    `gorm:"not null"`
}

func (c *CartItem) TableName() string {
	return "cart_items"
}
