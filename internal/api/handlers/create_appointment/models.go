package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	createAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model.
// Выборы (услуги, мастер, дата, время) берутся из booking-сессии.
type CreateAppointmentRequest struct {
	Notes *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID string) *createAppointment.Request {
	return &createAppointment.Request{
		UserID: userID,
		Notes:  r.Notes,
	}
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                   string                   `json:"id"`
	UserID               string                   `json:"userId"`
	StylistID            int64                    `json:"stylistId"`
	Services             []domain.ServiceSnapshot `json:"services"`
	Date                 string                   `json:"date"`
	StartTime            string                   `json:"startTime"`
	EndTime              string                   `json:"endTime"`
	TotalDurationMinutes int                      `json:"totalDurationMinutes"`
	TotalPrice           float64                  `json:"totalPrice"`
	Status               string                   `json:"status"`
	Notes                *string                  `json:"notes,omitempty"`
	CreatedAt            time.Time                `json:"createdAt"`
	UpdatedAt            time.Time                `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                   resp.ID,
		UserID:               resp.UserID,
		StylistID:            resp.StylistID,
		Services:             resp.Services,
		Date:                 resp.Date.Format(domain.DateFormat),
		StartTime:            resp.StartTime.String(),
		EndTime:              resp.EndTime.String(),
		TotalDurationMinutes: resp.TotalDurationMinutes,
		TotalPrice:           resp.TotalPrice,
		Status:               resp.Status,
		Notes:                resp.Notes,
		CreatedAt:            resp.CreatedAt,
		UpdatedAt:            resp.UpdatedAt,
	}
}
