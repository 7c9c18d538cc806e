package domain

import "time"

// OrderStatus represents the status of a shop order
type OrderStatus string

const (
	OrderStatusPlaced OrderStatus = "placed"
)

// Product represents a retail product from the shop catalog
type Product struct {
	ID         int64
	Name       string
	Brand      string
	Price      float64
	SalePrice  *float64
	Image      string
	Category   string
	Bestseller bool
	IsNew      bool
	InStock    bool
}

// EffectivePrice returns the sale price when present, the regular price otherwise
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// CartItem is one product line in a user's cart
type CartItem struct {
	Product  Product
	Quantity int
}

// OrderItem is a priced line of a placed order, copied from the cart at checkout
type OrderItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// ShippingInfo is the checkout shipping form.
// Card fields from the form are accepted at the API boundary and discarded:
// the shop never charges or stores card data.
type ShippingInfo struct {
	FirstName string
	LastName  string
	Email     string
	Address   string
	City      string
	ZipCode   string
	Country   string
}

// Order represents a placed shop order
type Order struct {
	ID         string
	UserID     string
	Items      []OrderItem
	TotalPrice float64
	Status     OrderStatus
	Shipping   ShippingInfo
	CreatedAt  time.Time
}
