package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

func testStylist(date time.Time, start, end types.TimeString) *domain.Stylist {
	return &domain.Stylist{
		ID:            1,
		Name:          "Alex Johnson",
		AvailableDays: []int64{int64(date.Weekday())},
		WorkingHours:  domain.WorkingHours{Start: start, End: end},
	}
}

func testAppointment(stylistID int64, date time.Time, start, end types.TimeString, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:        "appt-" + string(start),
		StylistID: stylistID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
}

func TestBuildDaySlots_NonWorkingDay(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	stylist := testStylist(date, "09:00", "17:00")
	// Единственный рабочий день - не запрошенный
	stylist.AvailableDays = []int64{int64((date.Weekday() + 1) % 7)}

	slots := buildDaySlots(date, stylist, nil, 60)

	assert.NotNil(t, slots)
	assert.Empty(t, slots, "non-working day must yield an empty sequence, not unavailable slots")
}

func TestBuildDaySlots_Cadence(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	stylist := testStylist(date, "09:00", "12:00")

	slots := buildDaySlots(date, stylist, nil, 60)

	// [09:00, 12:00): шаг 30 минут, старт строго до конца окна
	require.Len(t, slots, 6)
	assert.Equal(t, types.TimeString("09:00"), slots[0].Time)
	assert.Equal(t, types.TimeString("11:30"), slots[5].Time)

	for _, slot := range slots {
		assert.True(t, slot.Available)
	}
}

func TestBuildDaySlots_TrailingSlotsNotClipped(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	stylist := testStylist(date, "09:00", "12:00")

	// Длительность 120 минут: слот 11:30 подразумевает конец 13:30,
	// далеко за пределами окна, но из выдачи не исчезает
	slots := buildDaySlots(date, stylist, nil, 120)

	require.Len(t, slots, 6)
	last := slots[len(slots)-1]
	assert.Equal(t, types.TimeString("11:30"), last.Time)
	assert.True(t, last.Available)
}

func TestBuildDaySlots_ConflictHalfOpenIntervals(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	stylist := testStylist(date, "09:00", "13:00")

	appointments := []*domain.Appointment{
		testAppointment(1, date, "10:00", "11:00", domain.StatusConfirmed),
	}

	slots := buildDaySlots(date, stylist, appointments, 60)

	availability := map[types.TimeString]bool{}
	for _, slot := range slots {
		availability[slot.Time] = slot.Available
	}

	// 09:00+60 заканчивается ровно в 10:00 - границы не конфликтуют
	assert.True(t, availability["09:00"])
	// 09:30+60 заезжает внутрь записи
	assert.False(t, availability["09:30"])
	assert.False(t, availability["10:00"])
	assert.False(t, availability["10:30"])
	// 11:00 начинается ровно на конце записи
	assert.True(t, availability["11:00"])
}

func TestBuildDaySlots_CancelledAppointmentsFreeTheSlot(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	stylist := testStylist(date, "09:00", "12:00")

	appointments := []*domain.Appointment{
		testAppointment(1, date, "09:00", "12:00", domain.StatusCancelled),
	}

	slots := buildDaySlots(date, stylist, appointments, 60)

	for _, slot := range slots {
		assert.True(t, slot.Available, "cancelled appointment must not block slot %s", slot.Time)
	}
}

func TestBuildDaySlots_CompletedAppointmentsBlockTheSlot(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	stylist := testStylist(date, "09:00", "11:00")

	// Только cancelled освобождает слот: completed и no-show держат его
	appointments := []*domain.Appointment{
		testAppointment(1, date, "09:00", "10:00", domain.StatusCompleted),
		testAppointment(1, date, "10:00", "11:00", domain.StatusNoShow),
	}

	slots := buildDaySlots(date, stylist, appointments, 30)

	for _, slot := range slots {
		assert.False(t, slot.Available)
	}
}

func TestBuildDaySlots_OtherStylistAndOtherDateIgnored(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	otherDate := date.AddDate(0, 0, 7)
	stylist := testStylist(date, "09:00", "10:00")

	appointments := []*domain.Appointment{
		testAppointment(2, date, "09:00", "10:00", domain.StatusConfirmed),
		testAppointment(1, otherDate, "09:00", "10:00", domain.StatusConfirmed),
	}

	slots := buildDaySlots(date, stylist, appointments, 30)

	require.Len(t, slots, 2)
	assert.True(t, slots[0].Available)
	assert.True(t, slots[1].Available)
}

func TestBuildDaySlots_SlotIDs(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	stylist := testStylist(date, "09:00", "11:00")

	slots := buildDaySlots(date, stylist, nil, 60)

	require.NotEmpty(t, slots)
	assert.Equal(t, "2026-03-14-09:00", slots[0].ID)

	seen := map[string]bool{}
	for _, slot := range slots {
		assert.False(t, seen[slot.ID], "slot id %s must be unique", slot.ID)
		seen[slot.ID] = true
	}
}

func TestBuildDaySlots_Deterministic(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	stylist := testStylist(date, "09:00", "17:00")

	appointments := []*domain.Appointment{
		testAppointment(1, date, "10:00", "11:30", domain.StatusConfirmed),
		testAppointment(1, date, "14:00", "15:00", domain.StatusConfirmed),
	}

	first := buildDaySlots(date, stylist, appointments, 90)
	second := buildDaySlots(date, stylist, appointments, 90)

	assert.Equal(t, first, second)
}

func TestHasConflict_DurationSpansDayEnd(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	appointments := []*domain.Appointment{
		testAppointment(1, date, "23:00", "23:30", domain.StatusConfirmed),
	}

	// Кандидат 22:30 + 120 минут перекрывает запись даже при выходе
	// подразумеваемого конца за пределы суток
	assert.True(t, hasConflict(date, 1, "22:30", 120, appointments))
	assert.False(t, hasConflict(date, 1, "21:00", 120, appointments))
}
