// Package databasetest provides migrated in-memory databases for tests.
package databasetest

import (
	"testing"

	"github.com/mytheresa/go-storefront/app/config"
	"github.com/mytheresa/go-storefront/app/database"
	"gorm.io/gorm"
)

// New returns an empty, migrated in-memory SQLite database that is closed
// when the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{
		Driver:   "sqlite",
		URL:      ":memory:",
		LogLevel: "silent",
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}
