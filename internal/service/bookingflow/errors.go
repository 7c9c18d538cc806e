package bookingflow

import "errors"

var (
	// ErrTooManyServices возвращается при превышении лимита выбранных услуг
	ErrTooManyServices = errors.New("bookingflow: too many services selected")
)
