package cart

import (
	"context"
	"errors"
	"net/http"

	"github.com/mytheresa/go-storefront/app/render"
	"github.com/mytheresa/go-storefront/models"
)

type Response struct {
	CartItems []CartLine `json:"cart_items"`
	Total     float64    `json:"total"`
}

type CartLine struct {
	ID       string  `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
}

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
	SessionID string `json:"session_id" validate:"required"`
}

type CartService interface {
	Summary(ctx context.Context, sessionID string) (*Summary, error)
	Add(ctx context.Context, productID string, quantity int, sessionID string) (*models.CartItem, error)
	Remove(ctx context.Context, itemID string) error
}

type CartHandler struct {
	service CartService
}

func NewCartHandler(s CartService) *CartHandler {
	return &CartHandler{service: s}
}

func (h *CartHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), r.PathValue("session_id"))
	if err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	lines := make([]CartLine, len(summary.Lines))
	for i, l := range summary.Lines {
		lines[i] = CartLine{
			ID: l.ItemID,
			Product: Product{
				ID:       l.Product.PublicID,
				Name:     l.Product.Name,
				Price:    l.Product.Price.InexactFloat64(),
				ImageURL: l.Product.ImageURL,
			},
			Quantity: l.Quantity,
			Subtotal: l.Subtotal.InexactFloat64(),
		}
	}

	render.JSON(w, http.StatusOK, Response{
		CartItems: lines,
		Total:     summary.Total.InexactFloat64(),
	})
}

func (h *CartHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var input AddItemRequest
	if !render.Decode(w, r, &input) {
		return
	}

	if _, err := h.service.Add(r.Context(), input.ProductID, input.Quantity, input.SessionID); err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	render.Message(w, "Item added to cart")
}

func (h *CartHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), r.PathValue("item_id")); err != nil {
		if errors.Is(err, models.ErrCartItemNotFound) {
			render.Error(w, http.StatusNotFound, "Cart item not found")
			return
		}
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	render.Message(w, "Item removed from cart")
}
