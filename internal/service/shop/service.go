package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	shopRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/shop"
	"github.com/m04kA/SMC-SalonService/internal/service/shop/models"
)

// Service сервис магазина: каталог товаров, корзина и оформление заказов.
// Корзины живут в памяти процесса и не переживают рестарт - это
// осознанный компромисс, заказы при этом персистентны.
type Service struct {
	productRepo ProductRepository
	orderRepo   OrderRepository
	logger      Logger

	mu    sync.Mutex
	carts map[string][]domain.CartItem
}

// NewService создает новый экземпляр сервиса магазина
func NewService(
	productRepo ProductRepository,
	orderRepo OrderRepository,
	logger Logger,
) *Service {
	return &Service{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		logger:      logger,
		carts:       make(map[string][]domain.CartItem),
	}
}

// ListProducts возвращает товары каталога с фильтрацией
func (s *Service) ListProducts(ctx context.Context, filter shopRepo.ProductFilter) (*models.ProductListResponse, error) {
	products, err := s.productRepo.ListProducts(ctx, filter)
	if err != nil {
		s.logger.Error("ListProducts: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListProducts - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainProductList(products), nil
}

// GetCart возвращает текущее содержимое корзины пользователя
func (s *Service) GetCart(userID string) *models.CartResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.FromDomainCart(s.carts[userID])
}

// AddToCart добавляет товар в корзину пользователя.
// Повторное добавление того же товара увеличивает количество.
func (s *Service) AddToCart(ctx context.Context, userID string, productID int64, quantity int) (*models.CartResponse, error) {
	s.logger.Info("AddToCart: user=%q product=%d quantity=%d", userID, productID, quantity)

	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	product, err := s.productRepo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, shopRepo.ErrProductNotFound) {
			s.logger.Warn("AddToCart: product id=%d not found", productID)
			return nil, ErrProductNotFound
		}
		s.logger.Error("AddToCart: repository error for product id=%d: %v", productID, err)
		return nil, fmt.Errorf("%w: AddToCart - repository error: %v", ErrInternal, err)
	}

	if !product.InStock {
		s.logger.Warn("AddToCart: product id=%d is out of stock", productID)
		return nil, ErrProductOutOfStock
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[userID]
	found := false
	for i := range items {
		if items[i].Product.ID == productID {
			items[i].Quantity += quantity
			if items[i].Quantity > domain.MaxCartItemQuantity {
				items[i].Quantity = domain.MaxCartItemQuantity
			}
			found = true
			break
		}
	}

	if !found {
		if quantity > domain.MaxCartItemQuantity {
			quantity = domain.MaxCartItemQuantity
		}
		items = append(items, domain.CartItem{Product: *product, Quantity: quantity})
	}

	s.carts[userID] = items
	return models.FromDomainCart(items), nil
}

// UpdateQuantity устанавливает количество товара в корзине.
// Количество меньше единицы удаляет позицию.
func (s *Service) UpdateQuantity(userID string, productID int64, quantity int) (*models.CartResponse, error) {
	s.logger.Info("UpdateQuantity: user=%q product=%d quantity=%d", userID, productID, quantity)

	if quantity < 1 {
		return s.RemoveFromCart(userID, productID), nil
	}

	if quantity > domain.MaxCartItemQuantity {
		quantity = domain.MaxCartItemQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[userID]
	for i := range items {
		if items[i].Product.ID == productID {
			items[i].Quantity = quantity
			return models.FromDomainCart(items), nil
		}
	}

	s.logger.Warn("UpdateQuantity: product id=%d not in cart of user=%q", productID, userID)
	return nil, ErrProductNotFound
}

// RemoveFromCart удаляет позицию из корзины.
// Удаление отсутствующего товара - no-op.
func (s *Service) RemoveFromCart(userID string, productID int64) *models.CartResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[userID]
	filtered := items[:0]
	for _, item := range items {
		if item.Product.ID != productID {
			filtered = append(filtered, item)
		}
	}

	s.carts[userID] = filtered
	return models.FromDomainCart(filtered)
}

// ClearCart очищает корзину пользователя
func (s *Service) ClearCart(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
}

// Checkout оформляет заказ из корзины пользователя.
// Цены фиксируются на момент оформления (действующая цена с учётом скидки).
// Корзина очищается только после успешного сохранения заказа.
func (s *Service) Checkout(ctx context.Context, req *models.CheckoutRequest) (*models.OrderResponse, error) {
	s.logger.Info("Checkout: user=%q", req.UserID)

	if err := validateShipping(req); err != nil {
		s.logger.Warn("Checkout: validation failed for user=%q: %v", req.UserID, err)
		return nil, err
	}

	s.mu.Lock()
	items := make([]domain.CartItem, len(s.carts[req.UserID]))
	copy(items, s.carts[req.UserID])
	s.mu.Unlock()

	if len(items) == 0 {
		s.logger.Warn("Checkout: empty cart for user=%q", req.UserID)
		return nil, ErrEmptyCart
	}

	order := &domain.Order{
		UserID:   req.UserID,
		Items:    make([]domain.OrderItem, 0, len(items)),
		Status:   domain.OrderStatusPlaced,
		Shipping: req.ToDomainShipping(),
	}

	for _, item := range items {
		unitPrice := item.Product.EffectivePrice()
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Brand:     item.Product.Brand,
			UnitPrice: unitPrice,
			Quantity:  item.Quantity,
		})
		order.TotalPrice += unitPrice * float64(item.Quantity)
	}

	created, err := s.orderRepo.CreateOrder(ctx, order)
	if err != nil {
		s.logger.Error("Checkout: failed to create order for user=%q: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Checkout - repository error: %v", ErrInternal, err)
	}

	// Корзина потреблена заказом
	s.ClearCart(req.UserID)

	s.logger.Info("Checkout: successfully created order id=%s for user=%q", created.ID, req.UserID)
	return models.FromDomainOrder(created), nil
}

// GetOrders возвращает историю заказов пользователя
func (s *Service) GetOrders(ctx context.Context, userID string) (*models.OrderListResponse, error) {
	orders, err := s.orderRepo.GetOrdersByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetOrders: repository error for user=%q: %v", userID, err)
		return nil, fmt.Errorf("%w: GetOrders - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOrderList(orders), nil
}

// validateShipping проверяет обязательные поля формы доставки
func validateShipping(req *models.CheckoutRequest) error {
	required := map[string]string{
		"firstName": req.FirstName,
		"lastName":  req.LastName,
		"email":     req.Email,
		"address":   req.Address,
		"city":      req.City,
		"zipCode":   req.ZipCode,
		"country":   req.Country,
	}

	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
		}
	}

	return nil
}
