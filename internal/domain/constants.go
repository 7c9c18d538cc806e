package domain

// Slot generation constants
const (
	// SlotStepMinutes is the fixed cadence between candidate slot starts
	SlotStepMinutes = 30

	// DefaultAppointmentDurationMinutes is used when the booking flow has no
	// services selected yet. It silently affects slot availability, so it is
	// a named constant rather than a literal at the call site.
	DefaultAppointmentDurationMinutes = 60
)

// Business validation constants
const (
	MaxNotesLength      = 500
	MaxSelectedServices = 10
	MaxCartItemQuantity = 99
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses список статусов, из которых нет переходов
var TerminalStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}

// AdminStatuses список статусов, которые может выставить только администратор
var AdminStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusNoShow,
}
