package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Service represents a bookable salon service from the catalog.
// Immutable reference data, managed outside the booking flow.
type Service struct {
	ID              string
	Name            string
	Price           float64
	DurationMinutes int
	Description     string
	Image           string
}

// WorkingHours defines a stylist's daily working window.
// Invariant: Start < End.
type WorkingHours struct {
	Start types.TimeString
	End   types.TimeString
}

// Stylist represents a salon stylist
type Stylist struct {
	ID            int64
	Name          string
	Specialty     string
	Image         string
	Rating        float64
	Experience    string
	AvailableDays []int64 // weekday indexes, 0=Sunday
	WorkingHours  WorkingHours
}

// WorksOn returns true if the stylist works on the given weekday
func (s *Stylist) WorksOn(weekday time.Weekday) bool {
	for _, day := range s.AvailableDays {
		if day == int64(weekday) {
			return true
		}
	}
	return false
}

// Snapshot returns the booking-time copy of a service
func (s *Service) Snapshot() ServiceSnapshot {
	return ServiceSnapshot{
		ID:              s.ID,
		Name:            s.Name,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		Description:     s.Description,
		Image:           s.Image,
	}
}
