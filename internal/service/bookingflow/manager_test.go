package bookingflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestManager() *Manager {
	return NewManager(30*time.Minute, nopLogger{})
}

func haircut() domain.Service {
	return domain.Service{ID: "haircut", Name: "Haircut", Price: 45, DurationMinutes: 45}
}

func coloring() domain.Service {
	return domain.Service{ID: "color", Name: "Hair Coloring", Price: 95, DurationMinutes: 120}
}

func stylist() *domain.Stylist {
	return &domain.Stylist{ID: 1, Name: "Alex Johnson"}
}

func fullSession(t *testing.T, m *Manager, userID string) {
	t.Helper()

	require.NoError(t, m.AddService(userID, haircut()))
	m.SelectStylist(userID, stylist())

	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	m.SelectDate(userID, &date)
	m.SelectTimeSlot(userID, &domain.TimeSlot{ID: "2026-03-14-10:00", Time: "10:00", Available: true})
}

func TestManager_AddServiceDuplicateIsNoop(t *testing.T) {
	m := newTestManager()

	require.NoError(t, m.AddService("u1", haircut()))
	require.NoError(t, m.AddService("u1", haircut()))

	session := m.Snapshot("u1")
	assert.Len(t, session.SelectedServices, 1)
	assert.Equal(t, 45, session.TotalDurationMinutes())
	assert.Equal(t, 45.0, session.TotalPrice())
}

func TestManager_AddServiceLimit(t *testing.T) {
	m := newTestManager()

	for i := 0; i < domain.MaxSelectedServices; i++ {
		svc := haircut()
		svc.ID = svc.ID + string(rune('a'+i))
		require.NoError(t, m.AddService("u1", svc))
	}

	err := m.AddService("u1", coloring())
	assert.ErrorIs(t, err, ErrTooManyServices)
}

func TestManager_ServiceChangeResetsDownstream(t *testing.T) {
	m := newTestManager()
	fullSession(t, m, "u1")
	require.True(t, m.Snapshot("u1").IsComplete())

	// Добавление услуги - изменение самой ранней стадии
	require.NoError(t, m.AddService("u1", coloring()))

	session := m.Snapshot("u1")
	assert.Len(t, session.SelectedServices, 2)
	assert.Nil(t, session.SelectedStylist)
	assert.Nil(t, session.SelectedDate)
	assert.Nil(t, session.SelectedTimeSlot)
}

func TestManager_RemoveServiceResetsDownstream(t *testing.T) {
	m := newTestManager()
	fullSession(t, m, "u1")

	m.RemoveService("u1", "haircut")

	session := m.Snapshot("u1")
	assert.Empty(t, session.SelectedServices)
	assert.Nil(t, session.SelectedStylist)
	assert.Nil(t, session.SelectedTimeSlot)
}

func TestManager_RemoveMissingServiceKeepsSelections(t *testing.T) {
	m := newTestManager()
	fullSession(t, m, "u1")

	m.RemoveService("u1", "no-such-service")

	assert.True(t, m.Snapshot("u1").IsComplete(), "removing an absent service must not reset the flow")
}

func TestManager_StylistChangeResetsDateAndSlot(t *testing.T) {
	m := newTestManager()
	fullSession(t, m, "u1")

	other := stylist()
	other.ID = 2
	m.SelectStylist("u1", other)

	session := m.Snapshot("u1")
	require.NotNil(t, session.SelectedStylist)
	assert.Equal(t, int64(2), session.SelectedStylist.ID)
	assert.Nil(t, session.SelectedDate)
	assert.Nil(t, session.SelectedTimeSlot)
	assert.Len(t, session.SelectedServices, 1, "services upstream of the stylist survive")
}

func TestManager_DateChangeResetsSlot(t *testing.T) {
	m := newTestManager()
	fullSession(t, m, "u1")

	newDate := time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC)
	m.SelectDate("u1", &newDate)

	session := m.Snapshot("u1")
	require.NotNil(t, session.SelectedDate)
	assert.Equal(t, newDate, *session.SelectedDate)
	assert.Nil(t, session.SelectedTimeSlot)
	assert.NotNil(t, session.SelectedStylist)
}

func TestManager_Clear(t *testing.T) {
	m := newTestManager()
	fullSession(t, m, "u1")

	m.Clear("u1")

	session := m.Snapshot("u1")
	assert.Empty(t, session.SelectedServices)
	assert.False(t, session.IsComplete())
}

func TestManager_SessionsAreIsolatedPerUser(t *testing.T) {
	m := newTestManager()
	fullSession(t, m, "u1")

	require.NoError(t, m.AddService("u2", coloring()))

	assert.True(t, m.Snapshot("u1").IsComplete())
	assert.False(t, m.Snapshot("u2").IsComplete())
	assert.Equal(t, 120, m.SelectedDurationMinutes("u2"))
}

func TestManager_SnapshotIsolation(t *testing.T) {
	m := newTestManager()
	require.NoError(t, m.AddService("u1", haircut()))

	session := m.Snapshot("u1")
	session.SelectedServices[0].Price = 0

	assert.Equal(t, 45.0, m.Snapshot("u1").TotalPrice(), "mutating a snapshot must not leak into the manager")
}

func TestManager_SelectedDurationMinutes(t *testing.T) {
	m := newTestManager()

	assert.Equal(t, 0, m.SelectedDurationMinutes("unknown"))

	require.NoError(t, m.AddService("u1", haircut()))
	require.NoError(t, m.AddService("u1", coloring()))
	assert.Equal(t, 165, m.SelectedDurationMinutes("u1"))
}

func TestManager_SweepRemovesAbandonedSessions(t *testing.T) {
	m := NewManager(time.Nanosecond, nopLogger{})
	require.NoError(t, m.AddService("u1", haircut()))

	time.Sleep(time.Millisecond)
	m.sweep()

	assert.Empty(t, m.Snapshot("u1").SelectedServices)
}
