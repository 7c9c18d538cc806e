package checkout_order

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/shop/models"
)

type ShopService interface {
	Checkout(ctx context.Context, req *models.CheckoutRequest) (*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
