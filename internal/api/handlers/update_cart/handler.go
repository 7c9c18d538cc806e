package update_cart

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/shop"
	"github.com/m04kA/SMC-SalonService/internal/service/shop/models"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgExactlyOneAction   = "запрос должен содержать ровно одно действие"
	msgMissingQuantity    = "количество обязательно"
	msgProductNotFound    = "товар не найден"
	msgOutOfStock         = "товара нет в наличии"
	msgInvalidQuantity    = "некорректное количество"
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

// Handle PATCH /api/v1/cart
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /cart - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateCartRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /cart - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.actionCount() != 1 {
		h.logger.Warn("PATCH /cart - Expected exactly one action: user_id=%q", userID)
		handlers.RespondBadRequest(w, msgExactlyOneAction)
		return
	}

	var (
		cart *models.CartResponse
		err  error
	)

	switch {
	case req.Clear:
		h.service.ClearCart(userID)
		cart = h.service.GetCart(userID)

	case req.RemoveProductID != nil:
		cart = h.service.RemoveFromCart(userID, *req.RemoveProductID)

	case req.AddProductID != nil:
		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}
		cart, err = h.service.AddToCart(r.Context(), userID, *req.AddProductID, quantity)

	case req.SetProductID != nil:
		if req.Quantity == nil {
			h.logger.Warn("PATCH /cart - Missing quantity: user_id=%q", userID)
			handlers.RespondBadRequest(w, msgMissingQuantity)
			return
		}
		cart, err = h.service.UpdateQuantity(userID, *req.SetProductID, *req.Quantity)
	}

	if err != nil {
		switch {
		case errors.Is(err, shop.ErrProductNotFound):
			h.logger.Warn("PATCH /cart - Product not found: user_id=%q", userID)
			handlers.RespondNotFound(w, msgProductNotFound)

		case errors.Is(err, shop.ErrProductOutOfStock):
			h.logger.Warn("PATCH /cart - Product out of stock: user_id=%q", userID)
			handlers.RespondBadRequest(w, msgOutOfStock)

		case errors.Is(err, shop.ErrInvalidInput):
			h.logger.Warn("PATCH /cart - Invalid input: user_id=%q, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidQuantity)

		default:
			h.logger.Error("PATCH /cart - Failed to update cart: user_id=%q, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /cart - Cart updated: user_id=%q, items=%d", userID, len(cart.Items))
	handlers.RespondJSON(w, http.StatusOK, cart)
}
