package shop

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	shopRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/shop"
)

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	ListProducts(ctx context.Context, filter shopRepo.ProductFilter) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetOrdersByUserID(ctx context.Context, userID string) ([]*domain.Order, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
