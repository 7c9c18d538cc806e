package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetByStylistAndDate получает записи мастера на конкретную дату
	GetByStylistAndDate(ctx context.Context, stylistID int64, date time.Time, includeCancelled bool) ([]*domain.Appointment, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetStylist(ctx context.Context, id int64) (*domain.Stylist, error)
}

// SessionProvider отдает суммарную длительность услуг, выбранных в
// booking-сессии пользователя. 0 - услуги ещё не выбраны.
type SessionProvider interface {
	SelectedDurationMinutes(userID string) int
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
