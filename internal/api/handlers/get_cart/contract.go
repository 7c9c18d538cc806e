package get_cart

import (
	"github.com/m04kA/SMC-SalonService/internal/service/shop/models"
)

type ShopService interface {
	GetCart(userID string) *models.CartResponse
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
