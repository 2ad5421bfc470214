package orders

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mytheresa/go-storefront/app/render"
	"github.com/mytheresa/go-storefront/models"
	"github.com/shopspring/decimal"
)

// PlaceOrderRequest mirrors what the storefront sends at checkout: the cart
// lines as returned by GET /api/cart plus the customer's email.
type PlaceOrderRequest struct {
	Items         []OrderItemRequest `json:"items" validate:"required,dive"`
	Total         float64            `json:"total" validate:"gte=0,lte=99999999.99"`
	CustomerEmail string             `json:"customer_email" validate:"required,email"`
	SessionID     string             `json:"session_id"`
}

// OrderItemRequest accepts the product either nested, as in cart lines, or
// as a flat product_id.
type OrderItemRequest struct {
	ID        string     `json:"id"`
	ProductID string     `json:"product_id"`
	Product   ProductRef `json:"product"`
	Quantity  int        `json:"quantity" validate:"gte=1"`
	Subtotal  float64    `json:"subtotal" validate:"gte=0,lte=99999999.99"`
}

type ProductRef struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price" validate:"lte=99999999.99"`
	ImageURL string  `json:"image_url"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	Items         []OrderItemResponse `json:"items"`
	Total         float64             `json:"total"`
	CustomerEmail string              `json:"customer_email"`
	Status        string              `json:"status"`
	SessionID     string              `json:"session_id"`
	CreatedAt     time.Time           `json:"created_at"`
}

type OrderItemResponse struct {
	ID       string     `json:"id,omitempty"`
	Product  ProductRef `json:"product"`
	Quantity int        `json:"quantity"`
	Subtotal float64    `json:"subtotal"`
}

type CreateResponse struct {
	Message string        `json:"message"`
	Order   OrderResponse `json:"order"`
}

type ListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

type OrderService interface {
	Place(ctx context.Context, order *models.Order) error
	List(ctx context.Context) ([]models.Order, error)
}

type OrderHandler struct {
	service OrderService
}

func NewOrderHandler(s OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

func (h *OrderHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input PlaceOrderRequest
	if !render.Decode(w, r, &input) {
		return
	}

	order, err := input.toModel()
	if err != nil {
		render.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.service.Place(r.Context(), order); err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	render.JSON(w, http.StatusOK, CreateResponse{
		Message: "Order created successfully",
		Order:   toOrderResponse(order),
	})
}

func (h *OrderHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.List(r.Context())
	if err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	orders := make([]OrderResponse, len(res))
	for i := range res {
		orders[i] = toOrderResponse(&res[i])
	}

	render.JSON(w, http.StatusOK, ListResponse{Orders: orders})
}

func (in PlaceOrderRequest) toModel() (*models.Order, error) {
	items := make([]models.OrderItem, len(in.Items))
	for i, it := range in.Items {
		productID := it.ProductID
		if productID == "" {
			productID = it.Product.ID
		}
		if productID == "" {
			return nil, fmt.Errorf("items[%d].product_id is required", i)
		}
		items[i] = models.OrderItem{
			CartItemID:  it.ID,
			ProductID:   productID,
			ProductName: it.Product.Name,
			UnitPrice:   decimal.NewFromFloat(it.Product.Price),
			ImageURL:    it.Product.ImageURL,
			Quantity:    it.Quantity,
			Subtotal:    decimal.NewFromFloat(it.Subtotal),
		}
	}

	return &models.Order{
		Items:         items,
		Total:         decimal.NewFromFloat(in.Total),
		CustomerEmail: in.CustomerEmail,
		SessionID:     in.SessionID,
	}, nil
}

func toOrderResponse(o *models.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemResponse{
			ID: it.CartItemID,
			Product: ProductRef{
				ID:       it.ProductID,
				Name:     it.ProductName,
				Price:    it.UnitPrice.InexactFloat64(),
				ImageURL: it.ImageURL,
			},
			Quantity: it.Quantity,
			Subtotal: it.Subtotal.InexactFloat64(),
		}
	}

	return OrderResponse{
		ID:            o.PublicID,
		Items:         items,
		Total:         o.Total.InexactFloat64(),
		CustomerEmail: o.CustomerEmail,
		Status:        o.Status,
		SessionID:     o.SessionID,
		CreatedAt:     o.CreatedAt,
	}
}
