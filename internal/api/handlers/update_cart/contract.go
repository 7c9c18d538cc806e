package update_cart

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/shop/models"
)

type ShopService interface {
	GetCart(userID string) *models.CartResponse
	AddToCart(ctx context.Context, userID string, productID int64, quantity int) (*models.CartResponse, error)
	UpdateQuantity(userID string, productID int64, quantity int) (*models.CartResponse, error)
	RemoveFromCart(userID string, productID int64) *models.CartResponse
	ClearCart(userID string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
