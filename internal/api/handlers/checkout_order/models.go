package checkout_order

import (
	"github.com/m04kA/SMC-SalonService/internal/service/shop/models"
)

// CheckoutRequest HTTP request model.
// Поля карты принимаются для совместимости с формой, но отбрасываются:
// сервис не списывает и не хранит платёжные данные.
type CheckoutRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`

	CardNumber *string `json:"cardNumber,omitempty"`
	CardExpiry *string `json:"cardExpiry,omitempty"`
	CardCVC    *string `json:"cardCvc,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса.
// Платёжные поля не передаются дальше.
func (r *CheckoutRequest) ToServiceRequest(userID string) *models.CheckoutRequest {
	return &models.CheckoutRequest{
		UserID:    userID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Address:   r.Address,
		City:      r.City,
		ZipCode:   r.ZipCode,
		Country:   r.Country,
	}
}
