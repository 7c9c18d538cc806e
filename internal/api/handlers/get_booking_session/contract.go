package get_booking_session

import (
	"github.com/m04kA/SMC-SalonService/internal/service/bookingflow"
)

type SessionManager interface {
	Snapshot(userID string) bookingflow.Session
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
