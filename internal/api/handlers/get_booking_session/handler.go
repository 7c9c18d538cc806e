package get_booking_session

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/bookingflow/models"
)

const msgMissingUserID = "отсутствует ID пользователя"

type Handler struct {
	sessions SessionManager
	logger   Logger
}

func NewHandler(sessions SessionManager, logger Logger) *Handler {
	return &Handler{
		sessions: sessions,
		logger:   logger,
	}
}

// Handle GET /api/v1/booking-session
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.logger.Warn("GET /booking-session - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	session := h.sessions.Snapshot(userID)

	h.logger.Info("GET /booking-session - Session retrieved: user_id=%q, complete=%t", userID, session.IsComplete())
	handlers.RespondJSON(w, http.StatusOK, models.FromSession(session))
}
