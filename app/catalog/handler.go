package catalog

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mytheresa/go-storefront/app/render"
	"github.com/mytheresa/go-storefront/models"
	"github.com/shopspring/decimal"
)

type Response struct {
	Products []Product `json:"products"`
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductInput is the body of create and update requests. Any id or
// created_at sent by the client is ignored.
type ProductInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0,lte=99999999.99"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

type CreateResponse struct {
	Message string  `json:"message"`
	Product Product `json:"product"`
}

type ProductProvider interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, id string, product *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

type CatalogHandler struct {
	repo ProductProvider
}

func NewCatalogHandler(r ProductProvider) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	res, err := h.repo.GetAllProducts(r.Context())
	if err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	products := make([]Product, len(res))
	for i := range res {
		products[i] = toProduct(&res[i])
	}

	render.JSON(w, http.StatusOK, Response{Products: products})
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.repo.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeRepoError(w, err)
		return
	}

	render.JSON(w, http.StatusOK, toProduct(product))
}

func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input ProductInput
	if !render.Decode(w, r, &input) {
		return
	}

	product := input.toModel()
	if err := h.repo.CreateProduct(r.Context(), product); err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	render.JSON(w, http.StatusOK, CreateResponse{
		Message: "Product created successfully",
		Product: toProduct(product),
	})
}

func (h *CatalogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input ProductInput
	if !render.Decode(w, r, &input) {
		return
	}

	if err := h.repo.UpdateProduct(r.Context(), r.PathValue("id"), input.toModel()); err != nil {
		writeRepoError(w, err)
		return
	}

	render.Message(w, "Product updated successfully")
}

func (h *CatalogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		writeRepoError(w, err)
		return
	}

	render.Message(w, "Product deleted successfully")
}

func writeRepoError(w http.ResponseWriter, err error) {
	if errors.Is(err, models.ErrProductNotFound) {
		render.Error(w, http.StatusNotFound, "Product not found")
		return
	}
	render.Error(w, http.StatusInternalServerError, err.Error())
}

func (in ProductInput) toModel() *models.Product {
	return &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       decimal.NewFromFloat(in.Price).Round(2),
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		Stock:       in.Stock,
	}
}

func toProduct(p *models.Product) Product {
	return Product{
		ID:          p.PublicID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
	}
}
