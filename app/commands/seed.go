package commands

import (
	"context"
	"fmt"

	"github.com/mytheresa/go-storefront/app/database"
	"github.com/mytheresa/go-storefront/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample products into an empty catalog",
	Long: `Load a small set of sample products, one or more per storefront
category. Nothing is inserted when the catalog already holds products.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, db, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer database.Close(db)

		n, err := seedProducts(cmd.Context(), models.NewProductsRepository(db))
		if err != nil {
			return err
		}
		logger.Info("seed finished", "inserted", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

type productCatalog interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
}

var sampleProducts = []struct {
	name, description, category, image, price string
	stock                                     int
}{
	{"Test Laptop", "High-performance laptop", "Electronics", "https://images.unsplash.com/photo-1629198688000-71f23e745b6e", "999.99", 10},
	{"Wireless Headphones", "Noise-cancelling over-ear headphones", "Electronics", "https://images.unsplash.com/photo-1505740420928-5e560c06d30e", "199.00", 25},
	{"Matte Lipstick", "Long-lasting matte finish", "Beauty", "https://images.unsplash.com/photo-1586495777744-4413f21062fa", "18.50", 60},
	{"Denim Jacket", "Classic fit denim jacket", "Fashion", "https://images.unsplash.com/photo-1551537482-f2075a1d41f2", "79.90", 15},
	{"Ceramic Vase", "Hand-glazed ceramic vase", "Home", "https://images.unsplash.com/photo-1578500494198-246f612d3b3d", "34.00", 8},
	{"Yoga Mat", "Non-slip 6mm yoga mat", "Sports", "https://images.unsplash.com/photo-1592432678016-e910b452f9a2", "29.99", 40},
}

// seedProducts inserts the sample products when the catalog is empty and
// returns how many were inserted.
func seedProducts(ctx context.Context, repo productCatalog) (int, error) {
	existing, err := repo.GetAllProducts(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, s := range sampleProducts {
		price, err := decimal.NewFromString(s.price)
		if err != nil {
			return i, fmt.Errorf("invalid sample price %q: %w", s.price, err)
		}
		if err := repo.CreateProduct(ctx, &models.Product{
			Name:        s.name,
			Description: s.description,
			Category:    s.category,
			ImageURL:    s.image,
			Price:       price,
			Stock:       s.stock,
		}); err != nil {
			return i, err
		}
	}
	return len(sampleProducts), nil
}
