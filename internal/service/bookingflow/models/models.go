package models

import (
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/bookingflow"
)

// SelectedServiceResponse услуга, выбранная в booking flow
type SelectedServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration"`
}

// SelectedStylistResponse мастер, выбранный в booking flow
type SelectedStylistResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

// SelectedTimeSlotResponse слот, выбранный в booking flow
type SelectedTimeSlotResponse struct {
	ID   string `json:"id"`
	Time string `json:"time"`
}

// SessionResponse текущее состояние booking-сессии пользователя
type SessionResponse struct {
	Services             []SelectedServiceResponse `json:"services"`
	Stylist              *SelectedStylistResponse  `json:"stylist,omitempty"`
	Date                 *string                   `json:"date,omitempty"` // "2026-03-14"
	TimeSlot             *SelectedTimeSlotResponse `json:"timeSlot,omitempty"`
	TotalDurationMinutes int                       `json:"totalDurationMinutes"`
	TotalPrice           float64                   `json:"totalPrice"`
	IsComplete           bool                      `json:"isComplete"`
}

// FromSession конвертирует снапшот сессии в DTO
func FromSession(s bookingflow.Session) *SessionResponse {
	resp := &SessionResponse{
		Services:             make([]SelectedServiceResponse, 0, len(s.SelectedServices)),
		TotalDurationMinutes: s.TotalDurationMinutes(),
		TotalPrice:           s.TotalPrice(),
		IsComplete:           s.IsComplete(),
	}

	for _, svc := range s.SelectedServices {
		resp.Services = append(resp.Services, SelectedServiceResponse{
			ID:              svc.ID,
			Name:            svc.Name,
			Price:           svc.Price,
			DurationMinutes: svc.DurationMinutes,
		})
	}

	if s.SelectedStylist != nil {
		resp.Stylist = &SelectedStylistResponse{
			ID:        s.SelectedStylist.ID,
			Name:      s.SelectedStylist.Name,
			Specialty: s.SelectedStylist.Specialty,
		}
	}

	if s.SelectedDate != nil {
		dateStr := s.SelectedDate.Format(domain.DateFormat)
		resp.Date = &dateStr
	}

	if s.SelectedTimeSlot != nil {
		resp.TimeSlot = &SelectedTimeSlotResponse{
			ID:   s.SelectedTimeSlot.ID,
			Time: s.SelectedTimeSlot.Time.String(),
		}
	}

	return resp
}
