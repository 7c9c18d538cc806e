package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/bookingflow"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateSession проверяет, что в сессии заполнены все стадии выбора.
// Неполная сессия - фатальная ошибка вызывающего, а не временный сбой.
func validateSession(session *bookingflow.Session) error {
	if !session.IsComplete() {
		return ErrIncompleteSession
	}
	return nil
}

// isDateInPast проверяет, что дата записи раньше сегодняшнего дня.
// Сравниваются только даты, время суток не учитывается.
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}

// countConflicts подсчитывает активные записи, пересекающиеся с интервалом
// [start, start+duration). Полуоткрытые интервалы: граничащие записи не
// конфликтуют. Отменённые записи не учитываются.
func countConflicts(start types.TimeString, durationMinutes int, appointments []*domain.Appointment) int {
	startMin := start.Minutes()
	endMin := startMin + durationMinutes

	count := 0
	for _, appt := range appointments {
		if !appt.BlocksSlot() {
			continue
		}

		if startMin < appt.EndTime.Minutes() && endMin > appt.StartTime.Minutes() {
			count++
		}
	}

	return count
}
