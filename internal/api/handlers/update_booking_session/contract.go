package update_booking_session

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/bookingflow"
)

type SessionManager interface {
	AddService(userID string, svc domain.Service) error
	RemoveService(userID string, serviceID string)
	SelectStylist(userID string, stylist *domain.Stylist)
	SelectDate(userID string, date *time.Time)
	SelectTimeSlot(userID string, slot *domain.TimeSlot)
	Snapshot(userID string) bookingflow.Session
}

type CatalogService interface {
	GetService(ctx context.Context, id string) (*domain.Service, error)
	GetStylist(ctx context.Context, id int64) (*domain.Stylist, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
