package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// PublicID is the identifier exposed to clients; ID is the row id and never
// leaves the store.
type Product struct {
	ID          uint            `gorm:"primaryKey"`
	PublicID    string          `gorm:"size:36;uniqueIndex;not null"`
	Name        string          `gorm:"size:255;not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Category    string          `gorm:"size:100;index"`
	ImageURL    string          `gorm:"size:1024"`
	Stock       int             `gorm:"not null;default:0"`
	CreatedAt   time.Time
}

func (p *Product) TableName() string {
	return "products"
}
