package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модели

// CheckoutRequest запрос на оформление заказа.
// Поля карты принимаются формой, но не сохраняются и не передаются дальше.
type CheckoutRequest struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

// ToDomainShipping конвертирует request в domain модель доставки
func (r *CheckoutRequest) ToDomainShipping() domain.ShippingInfo {
	return domain.ShippingInfo{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Address:   r.Address,
		City:      r.City,
		ZipCode:   r.ZipCode,
		Country:   r.Country,
	}
}

// Response модели

// ProductResponse ответ с данными товара
type ProductResponse struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Brand      string   `json:"brand"`
	Price      float64  `json:"price"`
	SalePrice  *float64 `json:"salePrice,omitempty"`
	Image      string   `json:"image"`
	Category   string   `json:"category"`
	Bestseller bool     `json:"bestseller"`
	IsNew      bool     `json:"isNew"`
	InStock    bool     `json:"inStock"`
}

// ProductListResponse ответ со списком товаров
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

// CartItemResponse одна позиция корзины
type CartItemResponse struct {
	Product   ProductResponse `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal float64         `json:"lineTotal"` // EffectivePrice * Quantity
}

// CartResponse ответ с содержимым корзины
type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalItems int                `json:"totalItems"`
	TotalPrice float64            `json:"totalPrice"`
}

// OrderResponse ответ с данными заказа
type OrderResponse struct {
	ID         string             `json:"id"`
	UserID     string             `json:"userId"`
	Items      []domain.OrderItem `json:"items"`
	TotalPrice float64            `json:"totalPrice"`
	Status     string             `json:"status"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// OrderListResponse ответ со списком заказов
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// Методы конвертации

// FromDomainProduct конвертирует domain модель в DTO
func FromDomainProduct(p *domain.Product) *ProductResponse {
	if p == nil {
		return nil
	}

	return &ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Brand:      p.Brand,
		Price:      p.Price,
		SalePrice:  p.SalePrice,
		Image:      p.Image,
		Category:   p.Category,
		Bestseller: p.Bestseller,
		IsNew:      p.IsNew,
		InStock:    p.InStock,
	}
}

// FromDomainProductList конвертирует список domain моделей в DTO
func FromDomainProductList(products []*domain.Product) *ProductListResponse {
	resp := &ProductListResponse{
		Products: make([]ProductResponse, 0, len(products)),
	}

	for _, p := range products {
		if productResp := FromDomainProduct(p); productResp != nil {
			resp.Products = append(resp.Products, *productResp)
		}
	}

	return resp
}

// FromDomainCart конвертирует содержимое корзины в DTO с подсчётом итогов
func FromDomainCart(items []domain.CartItem) *CartResponse {
	resp := &CartResponse{
		Items: make([]CartItemResponse, 0, len(items)),
	}

	for _, item := range items {
		lineTotal := item.Product.EffectivePrice() * float64(item.Quantity)
		resp.Items = append(resp.Items, CartItemResponse{
			Product:   *FromDomainProduct(&item.Product),
			Quantity:  item.Quantity,
			LineTotal: lineTotal,
		})
		resp.TotalItems += item.Quantity
		resp.TotalPrice += lineTotal
	}

	return resp
}

// FromDomainOrder конвертирует domain модель заказа в DTO
func FromDomainOrder(o *domain.Order) *OrderResponse {
	if o == nil {
		return nil
	}

	return &OrderResponse{
		ID:         o.ID,
		UserID:     o.UserID,
		Items:      o.Items,
		TotalPrice: o.TotalPrice,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
	}
}

// FromDomainOrderList конвертирует список domain моделей заказов в DTO
func FromDomainOrderList(orders []*domain.Order) *OrderListResponse {
	resp := &OrderListResponse{
		Orders: make([]OrderResponse, 0, len(orders)),
	}

	for _, o := range orders {
		if orderResp := FromDomainOrder(o); orderResp != nil {
			resp.Orders = append(resp.Orders, *orderResp)
		}
	}

	return resp
}
