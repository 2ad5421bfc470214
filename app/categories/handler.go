package categories

import (
	"context"
	"net/http"

	"github.com/mytheresa/go-storefront/app/render"
)

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

type CategoryProvider interface {
	GetCategories(ctx context.Context) ([]string, error)
}

type CategoryHandler struct {
	repo CategoryProvider
}

func NewCategoryHandler(r CategoryProvider) *CategoryHandler {
	return &CategoryHandler{repo: r}
}

// HandleGetAll lists the categories currently used by at least one product.
func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetCategories(r.Context())
	if err != nil {
		render.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if categories == nil {
		categories = []string{}
	}

	render.JSON(w, http.StatusOK, CategoriesResponse{Categories: categories})
}
