package get_products

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	shopRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/shop"
)

const (
	msgInvalidBestseller = "некорректное значение bestseller"
	msgInvalidInStock    = "некорректное значение inStock"
)

type Handler struct {
	service ShopService
	logger  Logger
}

func NewHandler(service ShopService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/products
// Query params: category, bestseller, inStock (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var filter shopRepo.ProductFilter

	if category := r.URL.Query().Get("category"); category != "" {
		filter.Category = &category
	}

	if bestsellerStr := r.URL.Query().Get("bestseller"); bestsellerStr != "" {
		bestseller, err := strconv.ParseBool(bestsellerStr)
		if err != nil {
			h.logger.Warn("GET /products - Invalid bestseller value: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBestseller)
			return
		}
		filter.Bestseller = &bestseller
	}

	if inStockStr := r.URL.Query().Get("inStock"); inStockStr != "" {
		inStock, err := strconv.ParseBool(inStockStr)
		if err != nil {
			h.logger.Warn("GET /products - Invalid inStock value: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInStock)
			return
		}
		filter.InStock = &inStock
	}

	products, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /products - Failed to list products: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /products - Retrieved %d products", len(products.Products))
	handlers.RespondJSON(w, http.StatusOK, products)
}
