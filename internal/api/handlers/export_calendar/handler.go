package export_calendar

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/calendar"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "запись не найдена"
	msgForbidden     = "доступ запрещен"
	msgCancelled     = "отменённая запись не экспортируется"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/{appointmentId}/calendar
// Отдаёт .ics файл для добавления записи в календарь.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID := vars["appointmentId"]

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments/{id}/calendar - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Export(r.Context(), appointmentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/{id}/calendar - Appointment not found: appointment_id=%s",
				appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, calendar.ErrAccessDenied):
			h.logger.Warn("GET /appointments/{id}/calendar - Access denied: appointment_id=%s, user_id=%q",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, calendar.ErrCancelledAppointment):
			h.logger.Warn("GET /appointments/{id}/calendar - Appointment cancelled: appointment_id=%s",
				appointmentID)
			handlers.RespondBadRequest(w, msgCancelled)

		default:
			h.logger.Error("GET /appointments/{id}/calendar - Failed to export: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Content)

	h.logger.Info("GET /appointments/{id}/calendar - Calendar exported successfully: appointment_id=%s, user_id=%q",
		appointmentID, userID)
}
