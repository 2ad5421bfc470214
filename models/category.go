package models

import (
	"context"
	"fmt"
)

// GetCategories returns the distinct, non-empty categories used by the
// catalog, sorted by name.
func (r *ProductsRepository) GetCategories(ctx context.Context) ([]string, error) {
	categories := []string{}
	if err := r.db.WithContext(ctx).
		Model(&Product{}).
		Where("category <> ?", "").
		Distinct().
		Order("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
