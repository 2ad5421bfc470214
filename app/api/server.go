package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mytheresa/go-storefront/app/cart"
	"github.com/mytheresa/go-storefront/app/catalog"
	"github.com/mytheresa/go-storefront/app/categories"
	"github.com/mytheresa/go-storefront/app/database"
	"github.com/mytheresa/go-storefront/app/orders"
	"github.com/mytheresa/go-storefront/app/render"
	"github.com/mytheresa/go-storefront/models"
	"gorm.io/gorm"
)

// NewHandler wires repositories, services and handlers on top of db and
// returns the complete HTTP handler of the API.
func NewHandler(db *gorm.DB, publisher orders.OrderPublisher, logger *slog.Logger) http.Handler {
	products := models.NewProductsRepository(db)
	cartService := cart.NewService(models.NewCartRepository(db), products)
	orderService := orders.NewService(models.NewOrdersRepository(db), publisher, logger)

	catalogHandler := catalog.NewCatalogHandler(products)
	categoryHandler := categories.NewCategoryHandler(products)
	cartHandler := cart.NewCartHandler(cartService)
	orderHandler := orders.NewOrderHandler(orderService)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", handleRoot)
	mux.HandleFunc("GET /api", handleRoot)
	mux.HandleFunc("GET /api/{$}", handleRoot)
	mux.HandleFunc("GET /health", healthCheck(db))

	mux.HandleFunc("GET /api/products", catalogHandler.HandleGet)
	mux.HandleFunc("GET /api/products/{id}", catalogHandler.HandleGetProduct)
	mux.HandleFunc("POST /api/admin/products", catalogHandler.HandleCreate)
	mux.HandleFunc("PUT /api/admin/products/{id}", catalogHandler.HandleUpdate)
	mux.HandleFunc("DELETE /api/admin/products/{id}", catalogHandler.HandleDelete)

	mux.HandleFunc("GET /api/categories", categoryHandler.HandleGetAll)

	mux.HandleFunc("GET /api/cart/{session_id}", cartHandler.HandleGet)
	mux.HandleFunc("POST /api/cart", cartHandler.HandleAdd)
	mux.HandleFunc("DELETE /api/cart/{item_id}", cartHandler.HandleRemove)

	mux.HandleFunc("POST /api/orders", orderHandler.HandleCreate)
	mux.HandleFunc("GET /api/admin/orders", orderHandler.HandleList)

	mux.HandleFunc("/", unmatched(mux))

	return accessLog(logger, allowAllOrigins(mux))
}

func handleRoot(w http.ResponseWriter, _ *http.Request) {
	render.Message(w, "Ecommerce API is running")
}

var routeMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
}

// unmatched answers requests no route claims with a JSON error: 405 when the
// path is served under another method, 404 otherwise.
func unmatched(mux *http.ServeMux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var allowed []string
		for _, method := range routeMethods {
			if method == r.Method {
				continue
			}
			alt := r.Clone(r.Context())
			alt.Method = method
			if _, pattern := mux.Handler(alt); pattern != "" && pattern != "/" {
				allowed = append(allowed, method)
			}
		}

		if len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
			render.Error(w, http.StatusMethodNotAllowed, "Method Not Allowed")
			return
		}
		render.Error(w, http.StatusNotFound, "Not Found")
	}
}

func healthCheck(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := database.Ping(ctx, db); err != nil {
			render.JSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "error",
				"error":  "database connection failed",
			})
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
