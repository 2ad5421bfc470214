package cart

import (
	"context"

	"github.com/mytheresa/go-storefront/models"
	"github.com/shopspring/decimal"
)

type ItemStore interface {
	GetBySession(ctx context.Context, sessionID string) ([]models.CartItem, error)
	AddItem(ctx context.Context, item *models.CartItem) error
	DeleteItem(ctx context.Context, id string) error
}

type ProductLookup interface {
	GetByIDs(ctx context.Context, ids []string) ([]models.Product, error)
}

// Line is a cart entry priced against the current catalog.
type Line struct {
	ItemID   string
	Product  models.Product
	Quantity int
	Subtotal decimal.Decimal
}

type Summary struct {
	Lines []Line
	Total decimal.Decimal
}

// Service aggregates carts and applies cart mutations.
type Service struct {
	items    ItemStore
	products ProductLookup
}

func NewService(items ItemStore, products ProductLookup) *Service {
	return &Service{items: items, products: products}
}

// Summary joins the session's cart entries with their products, in the
// order the entries were added. Entries whose product has been deleted are
// left out.
func (s *Service) Summary(ctx context.Context, sessionID string) (*Summary, error) {
	items, err := s.items.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}
	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.PublicID] = p
	}

	summary := &Summary{Lines: make([]Line, 0, len(items)), Total: decimal.Zero}
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		summary.Lines = append(summary.Lines, Line{
			ItemID:   item.PublicID,
			Product:  product,
			Quantity: item.Quantity,
			Subtotal: subtotal,
		})
		summary.Total = summary.Total.Add(subtotal)
	}
	return summary, nil
}

// Add puts quantity units of the product in the session's cart, adding to
// an existing line for the same product. The product id is not checked
// against the catalog.
func (s *Service) Add(ctx context.Context, productID string, quantity int, sessionID string) (*models.CartItem, error) {
	item := &models.CartItem{
		ProductID: productID,
		SessionID: sessionID,
		Quantity:  quantity,
	}
	if err := s.items.AddItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove deletes one cart entry by its id.
func (s *Service) Remove(ctx context.Context, itemID string) error {
	return s.items.DeleteItem(ctx, itemID)
}
