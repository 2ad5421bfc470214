package orders

import (
	"context"
	"log/slog"

	"github.com/mytheresa/go-storefront/models"
)

type OrderStore interface {
	PlaceOrder(ctx context.Context, order *models.Order) error
	GetAllOrders(ctx context.Context) ([]models.Order, error)
}

type OrderPublisher interface {
	PublishOrder(ctx context.Context, order *models.Order) error
}

type Service struct {
	store     OrderStore
	publisher OrderPublisher
	logger    *slog.Logger
}

func NewService(store OrderStore, publisher OrderPublisher, logger *slog.Logger) *Service {
	return &Service{store: store, publisher: publisher, logger: logger}
}

// Place stores the order as given and empties the cart of its session.
// Items and total are not checked against the catalog. Once the order is
// stored it is announced to the publisher; a failed announcement is logged
// and does not fail the order.
func (s *Service) Place(ctx context.Context, order *models.Order) error {
	order.Status = models.OrderStatusPending
	if err := s.store.PlaceOrder(ctx, order); err != nil {
		return err
	}

	if err := s.publisher.PublishOrder(ctx, order); err != nil {
		s.logger.WarnContext(ctx, "order event not published",
			"order_id", order.PublicID,
			"error", err,
		)
	}
	return nil
}

// List returns every order, newest first.
func (s *Service) List(ctx context.Context) ([]models.Order, error) {
	return s.store.GetAllOrders(ctx)
}
