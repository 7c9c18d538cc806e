package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// buildDaySlots генерирует упорядоченный список слотов мастера на день.
// Чистая функция своих аргументов: для одинаковых входов результат
// побайтово одинаков.
//
// Шаги:
//  1. Если день недели не входит в availableDays мастера - пустой список
//     (мастер в этот день не работает вообще, а не "все слоты заняты").
//  2. Слоты идут с фиксированным шагом domain.SlotStepMinutes от начала
//     рабочего окна, пока время начала строго меньше конца окна.
//     Хвостовые слоты, чей подразумеваемый конец выходит за конец окна,
//     НЕ отбрасываются - клиент видит их как обычные слоты.
//  3. Каждый слот помечается доступным, если его интервал
//     [start, start+duration) не пересекается ни с одной активной записью.
func buildDaySlots(
	date time.Time,
	stylist *domain.Stylist,
	existingAppointments []*domain.Appointment,
	requiredDurationMinutes int,
) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)

	if !stylist.WorksOn(date.Weekday()) {
		return slots
	}

	windowEnd := stylist.WorkingHours.End
	current := stylist.WorkingHours.Start

	for current.IsBefore(windowEnd) {
		conflict := hasConflict(date, stylist.ID, current, requiredDurationMinutes, existingAppointments)

		slots = append(slots, domain.TimeSlot{
			ID:        domain.TimeSlotID(date, current),
			Time:      current,
			Available: !conflict,
		})

		next, err := current.AddMinutes(domain.SlotStepMinutes)
		if err != nil {
			// Шаг перевалил за полночь - окно дня исчерпано
			break
		}
		current = next
	}

	return slots
}

// hasConflict проверяет пересечение кандидата [s, s+duration) с активными
// записями мастера на ту же дату. Полуоткрытые интервалы пересекаются iff
// s < a.end && s+duration > a.start: граничащие интервалы не конфликтуют.
// Отменённые записи слот не занимают.
// Арифметика в минутах от полуночи, чтобы хвостовой слот с концом за
// пределами дня сравнивался корректно.
func hasConflict(
	date time.Time,
	stylistID int64,
	slotStart types.TimeString,
	durationMinutes int,
	appointments []*domain.Appointment,
) bool {
	slotStartMin := slotStart.Minutes()
	slotEndMin := slotStartMin + durationMinutes

	for _, appt := range appointments {
		if appt.StylistID != stylistID || !isSameDay(appt.Date, date) {
			continue
		}
		if !appt.BlocksSlot() {
			continue
		}

		apptStartMin := appt.StartTime.Minutes()
		apptEndMin := appt.EndTime.Minutes()

		if slotStartMin < apptEndMin && slotEndMin > apptStartMin {
			return true
		}
	}

	return false
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
