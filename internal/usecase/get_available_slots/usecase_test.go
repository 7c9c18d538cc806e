package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByStylistAndDate(_ context.Context, _ int64, _ time.Time, _ bool) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeCatalogRepo struct {
	stylist *domain.Stylist
}

func (f *fakeCatalogRepo) GetStylist(_ context.Context, id int64) (*domain.Stylist, error) {
	if f.stylist == nil || f.stylist.ID != id {
		return nil, catalogRepo.ErrStylistNotFound
	}
	return f.stylist, nil
}

type fakeSessionProvider struct {
	durations map[string]int
}

func (f *fakeSessionProvider) SelectedDurationMinutes(userID string) int {
	return f.durations[userID]
}

func TestExecute_DefaultDurationForAnonymous(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	uc := NewUseCase(
		&fakeAppointmentRepo{},
		&fakeCatalogRepo{stylist: testStylist(date, "09:00", "12:00")},
		&fakeSessionProvider{durations: map[string]int{}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{StylistID: 1, Date: date})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppointmentDurationMinutes, resp.DurationMinutes)
	assert.Len(t, resp.Slots, 6)
}

func TestExecute_SessionDurationDrivesAvailability(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	repo := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{
			testAppointment(1, date, "10:00", "11:00", domain.StatusConfirmed),
		},
	}
	sessions := &fakeSessionProvider{durations: map[string]int{"u1": 90}}
	uc := NewUseCase(repo, &fakeCatalogRepo{stylist: testStylist(date, "09:00", "12:00")}, sessions, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{UserID: "u1", StylistID: 1, Date: date})

	require.NoError(t, err)
	assert.Equal(t, 90, resp.DurationMinutes)

	availability := map[string]bool{}
	for _, slot := range resp.Slots {
		availability[slot.Time.String()] = slot.Available
	}
	// 09:00 + 90 минут заезжает в запись 10:00-11:00
	assert.False(t, availability["09:00"])
	assert.True(t, availability["11:00"])
}

func TestExecute_EmptySessionFallsBackToDefault(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	uc := NewUseCase(
		&fakeAppointmentRepo{},
		&fakeCatalogRepo{stylist: testStylist(date, "09:00", "12:00")},
		&fakeSessionProvider{durations: map[string]int{}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{UserID: "u1", StylistID: 1, Date: date})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppointmentDurationMinutes, resp.DurationMinutes)
}

func TestExecute_StylistNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeAppointmentRepo{},
		&fakeCatalogRepo{},
		&fakeSessionProvider{durations: map[string]int{}},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		StylistID: 99,
		Date:      time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrStylistNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(
		&fakeAppointmentRepo{},
		&fakeCatalogRepo{},
		&fakeSessionProvider{durations: map[string]int{}},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{StylistID: 0, Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{StylistID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
