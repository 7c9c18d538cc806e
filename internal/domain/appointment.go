package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
	StatusNoShow    AppointmentStatus = "no-show"
)

// ServiceSnapshot is a copy of a catalog service taken at booking time.
// Later catalog price changes never alter booked history.
type ServiceSnapshot struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration"`
	Description     string  `json:"description"`
	Image           string  `json:"image"`
}

// Appointment represents a salon appointment
type Appointment struct {
	ID                   string
	UserID               string
	StylistID            int64
	Services             []ServiceSnapshot
	Date                 time.Time
	StartTime            types.TimeString
	EndTime              types.TimeString
	TotalDurationMinutes int
	TotalPrice           float64
	Status               AppointmentStatus
	Notes                *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// IsTerminal returns true if no further status transition is allowed
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCancelled || a.Status == StatusCompleted || a.Status == StatusNoShow
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusConfirmed
}

// BlocksSlot returns true if the appointment occupies its time interval
// for availability purposes. Only cancelled appointments free their slot.
func (a *Appointment) BlocksSlot() bool {
	return a.Status != StatusCancelled
}

// ValidStatus returns true if s is a known appointment status
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}
