package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A second pooled connection would open a different, empty database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&Product{}, &CartItem{}, &Order{}, &OrderItem{}))
	return db
}

func newTestProduct(name, category string, price float64) *Product {
	return &Product{
		Name:     name,
		Category: category,
		Price:    decimal.NewFromFloat(price),
		ImageURL: "https://example.com/" + name + ".jpg",
		Stock:    5,
	}
}
