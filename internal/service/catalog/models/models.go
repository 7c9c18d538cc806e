package models

import (
	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration"`
	Description     string  `json:"description"`
	Image           string  `json:"image"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// WorkingHoursResponse рабочее окно мастера
type WorkingHoursResponse struct {
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "17:00"
}

// StylistResponse ответ с данными мастера
type StylistResponse struct {
	ID            int64                `json:"id"`
	Name          string               `json:"name"`
	Specialty     string               `json:"specialty"`
	Image         string               `json:"image"`
	Rating        float64              `json:"rating"`
	Experience    string               `json:"experience"`
	AvailableDays []int64              `json:"availableDays"` // 0=воскресенье
	WorkingHours  WorkingHoursResponse `json:"workingHours"`
}

// StylistListResponse ответ со списком мастеров
type StylistListResponse struct {
	Stylists []StylistResponse `json:"stylists"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		Description:     s.Description,
		Image:           s.Image,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}

	for _, s := range services {
		if svcResp := FromDomainService(s); svcResp != nil {
			resp.Services = append(resp.Services, *svcResp)
		}
	}

	return resp
}

// FromDomainStylist конвертирует domain модель в DTO
func FromDomainStylist(s *domain.Stylist) *StylistResponse {
	if s == nil {
		return nil
	}

	return &StylistResponse{
		ID:            s.ID,
		Name:          s.Name,
		Specialty:     s.Specialty,
		Image:         s.Image,
		Rating:        s.Rating,
		Experience:    s.Experience,
		AvailableDays: s.AvailableDays,
		WorkingHours: WorkingHoursResponse{
			Start: s.WorkingHours.Start.String(),
			End:   s.WorkingHours.End.String(),
		},
	}
}

// FromDomainStylistList конвертирует список domain моделей в DTO
func FromDomainStylistList(stylists []*domain.Stylist) *StylistListResponse {
	resp := &StylistListResponse{
		Stylists: make([]StylistResponse, 0, len(stylists)),
	}

	for _, s := range stylists {
		if stylistResp := FromDomainStylist(s); stylistResp != nil {
			resp.Stylists = append(resp.Stylists, *stylistResp)
		}
	}

	return resp
}
