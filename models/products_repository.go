package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// GetAllProducts returns every product in insertion order.
func (r *ProductsRepository) GetAllProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := r.db.WithContext(ctx).
		Order("id").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *ProductsRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Where("public_id = ?", id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

// GetByIDs returns the products matching the given public ids. Unknown ids
// are skipped, so the result may be shorter than ids.
func (r *ProductsRepository) GetByIDs(ctx context.Context, ids []string) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	var products []Product
	if err := r.db.WithContext(ctx).
		Where("public_id IN ?", ids).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	return products, nil
}

// CreateProduct assigns a fresh public id and stores the product.
func (r *ProductsRepository) CreateProduct(ctx context.Context, product *Product) error {
	product.ID = 0
	product.PublicID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateProduct replaces every mutable field of the product identified by id.
func (r *ProductsRepository) UpdateProduct(ctx context.Context, id string, product *Product) error {
	result := r.db.WithContext(ctx).
		Model(&Product{}).
		Where("public_id = ?", id).
		Select("name", "description", "price", "category", "image_url", "stock").
		Updates(product)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	product.PublicID = id
	return nil
}

func (r *ProductsRepository) DeleteProduct(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("public_id = ?", id).Delete(&Product{})
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
