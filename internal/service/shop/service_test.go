package shop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	shopRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/shop"
	"github.com/m04kA/SMC-SalonService/internal/service/shop/models"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeShopRepo struct {
	products map[int64]*domain.Product
	orders   []*domain.Order

	createOrderErr error
}

func (f *fakeShopRepo) ListProducts(_ context.Context, filter shopRepo.ProductFilter) ([]*domain.Product, error) {
	var result []*domain.Product
	for _, p := range f.products {
		if filter.Category != nil && p.Category != *filter.Category {
			continue
		}
		if filter.Bestseller != nil && p.Bestseller != *filter.Bestseller {
			continue
		}
		if filter.InStock != nil && p.InStock != *filter.InStock {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (f *fakeShopRepo) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, shopRepo.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeShopRepo) CreateOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if f.createOrderErr != nil {
		return nil, f.createOrderErr
	}

	created := *order
	created.ID = "order-1"
	created.CreatedAt = time.Now()
	f.orders = append(f.orders, &created)
	return &created, nil
}

func (f *fakeShopRepo) GetOrdersByUserID(_ context.Context, userID string) ([]*domain.Order, error) {
	var result []*domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			result = append(result, o)
		}
	}
	return result, nil
}

func newShopFixture() (*Service, *fakeShopRepo) {
	repo := &fakeShopRepo{products: map[int64]*domain.Product{
		1: {ID: 1, Name: "Hydrating Shampoo", Brand: "Kerastase", Price: 28.99, Category: "shampoo", Bestseller: true, InStock: true},
		2: {ID: 2, Name: "Styling Pomade", Brand: "Aveda", Price: 24.99, SalePrice: ptr.Ptr(19.99), Category: "styling", InStock: true},
		3: {ID: 3, Name: "Curl Defining Cream", Brand: "DevaCurl", Price: 26.99, Category: "styling", InStock: false},
	}}
	return NewService(repo, repo, nopLogger{}), repo
}

func checkoutRequest(userID string) *models.CheckoutRequest {
	return &models.CheckoutRequest{
		UserID:    userID,
		FirstName: "Sam",
		LastName:  "Carter",
		Email:     "sam@example.com",
		Address:   "1 Main St",
		City:      "Springfield",
		ZipCode:   "12345",
		Country:   "US",
	}
}

func TestListProducts_Filters(t *testing.T) {
	svc, _ := newShopFixture()

	all, err := svc.ListProducts(context.Background(), shopRepo.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all.Products, 3)

	styling, err := svc.ListProducts(context.Background(), shopRepo.ProductFilter{Category: ptr.Ptr("styling")})
	require.NoError(t, err)
	assert.Len(t, styling.Products, 2)

	inStock, err := svc.ListProducts(context.Background(), shopRepo.ProductFilter{
		Category: ptr.Ptr("styling"),
		InStock:  ptr.Ptr(true),
	})
	require.NoError(t, err)
	require.Len(t, inStock.Products, 1)
	assert.Equal(t, "Styling Pomade", inStock.Products[0].Name)
}

func TestAddToCart_AccumulatesQuantity(t *testing.T) {
	svc, _ := newShopFixture()

	_, err := svc.AddToCart(context.Background(), "u1", 1, 1)
	require.NoError(t, err)

	cart, err := svc.AddToCart(context.Background(), "u1", 1, 2)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 3, cart.TotalItems)
}

func TestAddToCart_QuantityCap(t *testing.T) {
	svc, _ := newShopFixture()

	cart, err := svc.AddToCart(context.Background(), "u1", 1, domain.MaxCartItemQuantity+50)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxCartItemQuantity, cart.Items[0].Quantity)

	cart, err = svc.AddToCart(context.Background(), "u1", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxCartItemQuantity, cart.Items[0].Quantity)
}

func TestAddToCart_OutOfStock(t *testing.T) {
	svc, _ := newShopFixture()

	_, err := svc.AddToCart(context.Background(), "u1", 3, 1)
	assert.ErrorIs(t, err, ErrProductOutOfStock)

	_, err = svc.AddToCart(context.Background(), "u1", 404, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCart_SalePriceInLineTotals(t *testing.T) {
	svc, _ := newShopFixture()

	cart, err := svc.AddToCart(context.Background(), "u1", 2, 2)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.InDelta(t, 39.98, cart.Items[0].LineTotal, 0.001, "sale price wins over the list price")
	assert.InDelta(t, 39.98, cart.TotalPrice, 0.001)
}

func TestUpdateQuantity(t *testing.T) {
	svc, _ := newShopFixture()

	_, err := svc.AddToCart(context.Background(), "u1", 1, 2)
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity("u1", 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	// Количество меньше единицы удаляет позицию
	cart, err = svc.UpdateQuantity("u1", 1, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.UpdateQuantity("u1", 404, 2)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRemoveFromCart_MissingIsNoop(t *testing.T) {
	svc, _ := newShopFixture()

	_, err := svc.AddToCart(context.Background(), "u1", 1, 1)
	require.NoError(t, err)

	cart := svc.RemoveFromCart("u1", 404)
	assert.Len(t, cart.Items, 1)
}

func TestGetCart_EmptyForUnknownUser(t *testing.T) {
	svc, _ := newShopFixture()

	cart := svc.GetCart("nobody")
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalItems)
	assert.Zero(t, cart.TotalPrice)
}

func TestCheckout_Success(t *testing.T) {
	svc, repo := newShopFixture()

	_, err := svc.AddToCart(context.Background(), "u1", 1, 1)
	require.NoError(t, err)
	_, err = svc.AddToCart(context.Background(), "u1", 2, 2)
	require.NoError(t, err)

	order, err := svc.Checkout(context.Background(), checkoutRequest("u1"))

	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, string(domain.OrderStatusPlaced), order.Status)
	require.Len(t, order.Items, 2)
	// 28.99 + 2 * 19.99 по действующим ценам
	assert.InDelta(t, 68.97, order.TotalPrice, 0.001)

	assert.Empty(t, svc.GetCart("u1").Items, "the cart is consumed by the order")
	require.Len(t, repo.orders, 1)
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc, _ := newShopFixture()

	_, err := svc.Checkout(context.Background(), checkoutRequest("u1"))
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckout_MissingShippingField(t *testing.T) {
	svc, _ := newShopFixture()

	_, err := svc.AddToCart(context.Background(), "u1", 1, 1)
	require.NoError(t, err)

	req := checkoutRequest("u1")
	req.Email = "  "
	_, err = svc.Checkout(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Len(t, svc.GetCart("u1").Items, 1, "failed checkout keeps the cart")
}

func TestCheckout_RepoErrorKeepsCart(t *testing.T) {
	svc, repo := newShopFixture()
	repo.createOrderErr = assert.AnError

	_, err := svc.AddToCart(context.Background(), "u1", 1, 1)
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), checkoutRequest("u1"))
	assert.ErrorIs(t, err, ErrInternal)
	assert.Len(t, svc.GetCart("u1").Items, 1)
}

func TestGetOrders(t *testing.T) {
	svc, _ := newShopFixture()

	_, err := svc.AddToCart(context.Background(), "u1", 1, 1)
	require.NoError(t, err)
	_, err = svc.Checkout(context.Background(), checkoutRequest("u1"))
	require.NoError(t, err)

	orders, err := svc.GetOrders(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, orders.Orders, 1)

	other, err := svc.GetOrders(context.Background(), "u2")
	require.NoError(t, err)
	assert.Empty(t, other.Orders)
}
