package calendar

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	identityClient "github.com/m04kA/SMC-SalonService/internal/integrations/identityservice"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeAppointmentRepo struct {
	appointments map[string]*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

type fakeCatalogRepo struct {
	stylists map[int64]*domain.Stylist
}

func (f *fakeCatalogRepo) GetStylist(_ context.Context, id int64) (*domain.Stylist, error) {
	stylist, ok := f.stylists[id]
	if !ok {
		return nil, catalogRepo.ErrStylistNotFound
	}
	return stylist, nil
}

type fakeIdentityClient struct {
	users  map[string]*identityClient.User
	getErr error
}

func (f *fakeIdentityClient) GetUser(_ context.Context, userID string) (*identityClient.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	user, ok := f.users[userID]
	if !ok {
		return nil, identityClient.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeIdentityClient) IsAdmin(_ context.Context, userID string) (bool, error) {
	user, ok := f.users[userID]
	if !ok {
		return false, identityClient.ErrUserNotFound
	}
	return user.Role == "admin", nil
}

func exportFixture() (*Service, *fakeIdentityClient) {
	appointments := &fakeAppointmentRepo{appointments: map[string]*domain.Appointment{
		"a1": {
			ID:        "a1",
			UserID:    "owner",
			StylistID: 1,
			Services: []domain.ServiceSnapshot{
				{ID: "haircut", Name: "Haircut"},
				{ID: "color", Name: "Hair Coloring"},
			},
			Date:      time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			StartTime: "10:00",
			EndTime:   "11:00",
			Status:    domain.StatusConfirmed,
		},
		"cancelled": {
			ID:     "cancelled",
			UserID: "owner",
			Date:   time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			Status: domain.StatusCancelled,
		},
		"orphan": {
			ID:        "orphan",
			UserID:    "owner",
			StylistID: 404,
			Date:      time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			StartTime: "10:00",
			EndTime:   "11:00",
			Status:    domain.StatusConfirmed,
		},
	}}

	catalog := &fakeCatalogRepo{stylists: map[int64]*domain.Stylist{
		1: {ID: 1, Name: "Alex Johnson"},
	}}

	identity := &fakeIdentityClient{users: map[string]*identityClient.User{
		"owner":    {ID: "owner", Email: "owner@example.com", Role: "customer"},
		"admin":    {ID: "admin", Email: "admin@example.com", Role: "admin"},
		"stranger": {ID: "stranger", Role: "customer"},
	}}

	return NewService(appointments, catalog, identity, nopLogger{}), identity
}

func TestExport_GeneratesICSEvent(t *testing.T) {
	svc, _ := exportFixture()

	result, err := svc.Export(context.Background(), "a1", "owner")

	require.NoError(t, err)
	assert.Equal(t, "appointment-2026-03-14.ics", result.Filename)
	assert.Equal(t, "text/calendar", result.ContentType)

	content := string(result.Content)
	assert.True(t, strings.HasPrefix(content, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(content, "END:VCALENDAR\r\n"))
	assert.Contains(t, content, "BEGIN:VEVENT\r\n")
	assert.Contains(t, content, "UID:a1\r\n")
	assert.Contains(t, content, "DTSTART:20260314T100000Z\r\n")
	assert.Contains(t, content, "DTEND:20260314T110000Z\r\n")
	assert.Contains(t, content, "SUMMARY:Salon Appointment with Alex Johnson\r\n")
	assert.Contains(t, content, "DESCRIPTION:Services: Haircut\\, Hair Coloring\r\n")
	assert.Contains(t, content, "LOCATION:Choppers Salon\r\n")
	assert.Contains(t, content, "ATTENDEE:mailto:owner@example.com\r\n")
}

func TestExport_AdminCanExportAnyAppointment(t *testing.T) {
	svc, _ := exportFixture()

	_, err := svc.Export(context.Background(), "a1", "admin")
	assert.NoError(t, err)
}

func TestExport_StrangerDenied(t *testing.T) {
	svc, _ := exportFixture()

	_, err := svc.Export(context.Background(), "a1", "stranger")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExport_CancelledAppointment(t *testing.T) {
	svc, _ := exportFixture()

	_, err := svc.Export(context.Background(), "cancelled", "owner")
	assert.ErrorIs(t, err, ErrCancelledAppointment)
}

func TestExport_NotFound(t *testing.T) {
	svc, _ := exportFixture()

	_, err := svc.Export(context.Background(), "missing", "owner")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExport_MissingStylistUsesPlaceholder(t *testing.T) {
	svc, _ := exportFixture()

	result, err := svc.Export(context.Background(), "orphan", "owner")

	require.NoError(t, err)
	assert.Contains(t, string(result.Content), "SUMMARY:Salon Appointment with Stylist\r\n")
}

func TestExport_IdentityFailureSkipsAttendee(t *testing.T) {
	svc, identity := exportFixture()
	identity.getErr = assert.AnError

	result, err := svc.Export(context.Background(), "a1", "owner")

	require.NoError(t, err, "attendee line is best-effort and must not block the export")
	assert.NotContains(t, string(result.Content), "ATTENDEE")
}

func TestEscapeText(t *testing.T) {
	assert.Equal(t, `Cut & Go\; daily`, escapeText(`Cut & Go; daily`))
	assert.Equal(t, `C:\\Users`, escapeText(`C:\Users`))
	assert.Equal(t, `a\,b`, escapeText("a,b"))
	assert.Equal(t, `line1\nline2`, escapeText("line1\nline2"))
}
