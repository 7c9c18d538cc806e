package update_booking_session

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/bookingflow"
	"github.com/m04kA/SMC-SalonService/internal/service/bookingflow/models"
	catalogService "github.com/m04kA/SMC-SalonService/internal/service/catalog"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmptyRequest       = "запрос не содержит изменений"
	msgServiceNotFound    = "услуга не найдена"
	msgStylistNotFound    = "мастер не найден"
	msgTooManyServices    = "превышен лимит выбранных услуг"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgTimeWithoutDate    = "время нельзя выбрать раньше даты"
)

type Handler struct {
	sessions SessionManager
	catalog  CatalogService
	logger   Logger
}

func NewHandler(sessions SessionManager, catalog CatalogService, logger Logger) *Handler {
	return &Handler{
		sessions: sessions,
		catalog:  catalog,
		logger:   logger,
	}
}

// Handle PATCH /api/v1/booking-session
// Применяет изменения в порядке стадий booking flow и возвращает
// обновлённую сессию.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /booking-session - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /booking-session - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.IsEmpty() {
		h.logger.Warn("PATCH /booking-session - Empty request: user_id=%q", userID)
		handlers.RespondBadRequest(w, msgEmptyRequest)
		return
	}

	// Стадия 1: услуги
	if req.RemoveServiceID != nil {
		h.sessions.RemoveService(userID, *req.RemoveServiceID)
	}

	if req.AddServiceID != nil {
		svc, err := h.catalog.GetService(r.Context(), *req.AddServiceID)
		if err != nil {
			if errors.Is(err, catalogService.ErrServiceNotFound) {
				h.logger.Warn("PATCH /booking-session - Service not found: service_id=%s", *req.AddServiceID)
				handlers.RespondNotFound(w, msgServiceNotFound)
				return
			}
			h.logger.Error("PATCH /booking-session - Failed to get service: service_id=%s, error=%v",
				*req.AddServiceID, err)
			handlers.RespondInternalError(w)
			return
		}

		if err := h.sessions.AddService(userID, *svc); err != nil {
			if errors.Is(err, bookingflow.ErrTooManyServices) {
				h.logger.Warn("PATCH /booking-session - Too many services: user_id=%q", userID)
				handlers.RespondBadRequest(w, msgTooManyServices)
				return
			}
			h.logger.Error("PATCH /booking-session - Failed to add service: user_id=%q, error=%v", userID, err)
			handlers.RespondInternalError(w)
			return
		}
	}

	// Стадия 2: мастер
	if req.StylistID != nil {
		stylist, err := h.catalog.GetStylist(r.Context(), *req.StylistID)
		if err != nil {
			if errors.Is(err, catalogService.ErrStylistNotFound) {
				h.logger.Warn("PATCH /booking-session - Stylist not found: stylist_id=%d", *req.StylistID)
				handlers.RespondNotFound(w, msgStylistNotFound)
				return
			}
			h.logger.Error("PATCH /booking-session - Failed to get stylist: stylist_id=%d, error=%v",
				*req.StylistID, err)
			handlers.RespondInternalError(w)
			return
		}

		h.sessions.SelectStylist(userID, stylist)
	}

	// Стадия 3: дата
	if req.Date != nil {
		date, err := time.Parse(domain.DateFormat, *req.Date)
		if err != nil {
			h.logger.Warn("PATCH /booking-session - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}

		h.sessions.SelectDate(userID, &date)
	}

	// Стадия 4: время. Слот привязан к выбранной дате,
	// поэтому без даты выбор времени невозможен.
	if req.Time != nil {
		slotTime, err := types.NewTimeStringFromString(*req.Time)
		if err != nil {
			h.logger.Warn("PATCH /booking-session - Invalid time: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTime)
			return
		}

		session := h.sessions.Snapshot(userID)
		if session.SelectedDate == nil {
			h.logger.Warn("PATCH /booking-session - Time selected before date: user_id=%q", userID)
			handlers.RespondBadRequest(w, msgTimeWithoutDate)
			return
		}

		h.sessions.SelectTimeSlot(userID, &domain.TimeSlot{
			ID:        domain.TimeSlotID(*session.SelectedDate, slotTime),
			Time:      slotTime,
			Available: true,
		})
	}

	session := h.sessions.Snapshot(userID)

	h.logger.Info("PATCH /booking-session - Session updated: user_id=%q, complete=%t", userID, session.IsComplete())
	handlers.RespondJSON(w, http.StatusOK, models.FromSession(session))
}
