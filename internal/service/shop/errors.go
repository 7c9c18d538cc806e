package shop

import "errors"

var (
	// ErrProductNotFound возвращается, когда товар не найден
	ErrProductNotFound = errors.New("product not found")

	// ErrProductOutOfStock возвращается при попытке добавить в корзину
	// товар, которого нет в наличии
	ErrProductOutOfStock = errors.New("product is out of stock")

	// ErrEmptyCart возвращается при попытке оформить заказ с пустой корзиной
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
