package get_products

import (
	"context"

	shopRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/shop"
	"github.com/m04kA/SMC-SalonService/internal/service/shop/models"
)

type ShopService interface {
	ListProducts(ctx context.Context, filter shopRepo.ProductFilter) (*models.ProductListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
