package export_calendar

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/calendar"
)

type CalendarService interface {
	Export(ctx context.Context, appointmentID string, userID string) (*calendar.ExportResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
