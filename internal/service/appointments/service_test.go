package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	identityClient "github.com/m04kA/SMC-SalonService/internal/integrations/identityservice"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeAppointmentRepo struct {
	appointments map[string]*domain.Appointment

	cancelCalls       int
	updateStatusCalls int
	lastStatus        domain.AppointmentStatus
}

func newFakeRepo(appointments ...*domain.Appointment) *fakeAppointmentRepo {
	repo := &fakeAppointmentRepo{appointments: map[string]*domain.Appointment{}}
	for _, appt := range appointments {
		repo.appointments[appt.ID] = appt
	}
	return repo
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (f *fakeAppointmentRepo) GetByUserID(_ context.Context, userID string, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, appt := range f.appointments {
		if appt.UserID != userID {
			continue
		}
		if status != nil && appt.Status != *status {
			continue
		}
		result = append(result, appt)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) GetByStylistAndDate(_ context.Context, _ int64, _ time.Time, _ bool) ([]*domain.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id string, status domain.AppointmentStatus) error {
	if _, ok := f.appointments[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	f.updateStatusCalls++
	f.lastStatus = status
	f.appointments[id].Status = status
	return nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, id string) error {
	if _, ok := f.appointments[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	f.cancelCalls++
	f.appointments[id].Status = domain.StatusCancelled
	return nil
}

type fakeIdentityClient struct {
	admins map[string]bool
}

func (f *fakeIdentityClient) GetUser(_ context.Context, userID string) (*identityClient.User, error) {
	if _, ok := f.admins[userID]; !ok {
		return nil, identityClient.ErrUserNotFound
	}
	return &identityClient.User{ID: userID}, nil
}

func (f *fakeIdentityClient) IsAdmin(_ context.Context, userID string) (bool, error) {
	isAdmin, ok := f.admins[userID]
	if !ok {
		return false, identityClient.ErrUserNotFound
	}
	return isAdmin, nil
}

func testAppointment(id, userID string, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:        id,
		UserID:    userID,
		StylistID: 1,
		Date:      time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "11:00",
		Status:    status,
	}
}

func newTestService(repo *fakeAppointmentRepo) *Service {
	identity := &fakeIdentityClient{admins: map[string]bool{
		"admin":    true,
		"customer": false,
		"owner":    false,
		"stranger": false,
	}}
	return NewService(repo, identity, nopLogger{})
}

func TestGetByID_OwnerAccess(t *testing.T) {
	repo := newFakeRepo(testAppointment("a1", "owner", domain.StatusConfirmed))
	svc := newTestService(repo)

	resp, err := svc.GetByID(context.Background(), "a1", "owner")

	require.NoError(t, err)
	assert.Equal(t, "a1", resp.ID)
	assert.Equal(t, "owner", resp.UserID)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestGetByID_AdminAccess(t *testing.T) {
	repo := newFakeRepo(testAppointment("a1", "owner", domain.StatusConfirmed))
	svc := newTestService(repo)

	_, err := svc.GetByID(context.Background(), "a1", "admin")
	assert.NoError(t, err)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	repo := newFakeRepo(testAppointment("a1", "owner", domain.StatusConfirmed))
	svc := newTestService(repo)

	_, err := svc.GetByID(context.Background(), "a1", "stranger")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.GetByID(context.Background(), "missing", "owner")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetUserAppointments_StatusFilter(t *testing.T) {
	repo := newFakeRepo(
		testAppointment("a1", "owner", domain.StatusConfirmed),
		testAppointment("a2", "owner", domain.StatusCancelled),
		testAppointment("a3", "other", domain.StatusConfirmed),
	)
	svc := newTestService(repo)

	all, err := svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{UserID: "owner"})
	require.NoError(t, err)
	assert.Len(t, all.Appointments, 2)

	cancelled, err := svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		UserID: "owner",
		Status: ptr.Ptr("cancelled"),
	})
	require.NoError(t, err)
	require.Len(t, cancelled.Appointments, 1)
	assert.Equal(t, "a2", cancelled.Appointments[0].ID)

	_, err = svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		UserID: "owner",
		Status: ptr.Ptr("pending"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_Owner(t *testing.T) {
	repo := newFakeRepo(testAppointment("a1", "owner", domain.StatusConfirmed))
	svc := newTestService(repo)

	require.NoError(t, svc.Cancel(context.Background(), "a1", "owner"))
	assert.Equal(t, 1, repo.cancelCalls)
	assert.Equal(t, domain.StatusCancelled, repo.appointments["a1"].Status)
}

func TestCancel_Idempotent(t *testing.T) {
	repo := newFakeRepo(testAppointment("a1", "owner", domain.StatusCancelled))
	svc := newTestService(repo)

	err := svc.Cancel(context.Background(), "a1", "owner")

	assert.NoError(t, err, "cancelling an already cancelled appointment is a no-op")
	assert.Zero(t, repo.cancelCalls)
}

func TestCancel_CompletedRejected(t *testing.T) {
	repo := newFakeRepo(
		testAppointment("a1", "owner", domain.StatusCompleted),
		testAppointment("a2", "owner", domain.StatusNoShow),
	)
	svc := newTestService(repo)

	assert.ErrorIs(t, svc.Cancel(context.Background(), "a1", "owner"), ErrCannotCancel)
	assert.ErrorIs(t, svc.Cancel(context.Background(), "a2", "owner"), ErrCannotCancel)
	assert.Zero(t, repo.cancelCalls)
}

func TestCancel_StrangerDenied(t *testing.T) {
	repo := newFakeRepo(testAppointment("a1", "owner", domain.StatusConfirmed))
	svc := newTestService(repo)

	assert.ErrorIs(t, svc.Cancel(context.Background(), "a1", "stranger"), ErrAccessDenied)
	assert.Zero(t, repo.cancelCalls)
}

func TestUpdateStatus_AdminOnly(t *testing.T) {
	repo := newFakeRepo(testAppointment("a1", "owner", domain.StatusConfirmed))
	svc := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), "a1", &models.UpdateStatusRequest{
		UserID: "owner",
		Status: "completed",
	})

	assert.ErrorIs(t, err, ErrAccessDenied, "even the owner cannot set admin statuses")
	assert.Zero(t, repo.updateStatusCalls)
}

func TestUpdateStatus_CompletedAndNoShow(t *testing.T) {
	repo := newFakeRepo(
		testAppointment("a1", "owner", domain.StatusConfirmed),
		testAppointment("a2", "owner", domain.StatusConfirmed),
	)
	svc := newTestService(repo)

	require.NoError(t, svc.UpdateStatus(context.Background(), "a1", &models.UpdateStatusRequest{
		UserID: "admin",
		Status: "completed",
	}))
	assert.Equal(t, domain.StatusCompleted, repo.appointments["a1"].Status)

	require.NoError(t, svc.UpdateStatus(context.Background(), "a2", &models.UpdateStatusRequest{
		UserID: "admin",
		Status: "no-show",
	}))
	assert.Equal(t, domain.StatusNoShow, repo.appointments["a2"].Status)
}

func TestUpdateStatus_TerminalImmutable(t *testing.T) {
	repo := newFakeRepo(testAppointment("a1", "owner", domain.StatusCompleted))
	svc := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), "a1", &models.UpdateStatusRequest{
		UserID: "admin",
		Status: "no-show",
	})

	assert.ErrorIs(t, err, ErrTerminalStatus)
	assert.Zero(t, repo.updateStatusCalls)
}

func TestUpdateStatus_CancellationGoesThroughCancel(t *testing.T) {
	repo := newFakeRepo(testAppointment("a1", "owner", domain.StatusConfirmed))
	svc := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), "a1", &models.UpdateStatusRequest{
		UserID: "admin",
		Status: "cancelled",
	})

	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Zero(t, repo.updateStatusCalls)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	repo := newFakeRepo(testAppointment("a1", "owner", domain.StatusConfirmed))
	svc := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), "a1", &models.UpdateStatusRequest{
		UserID: "admin",
		Status: "done",
	})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}
