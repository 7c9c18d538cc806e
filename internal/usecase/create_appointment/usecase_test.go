package create_appointment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonService/internal/service/bookingflow"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeAppointmentRepo struct {
	existing    []*domain.Appointment
	createErr   error
	createCalls int
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}

	created := *appt
	created.ID = "appt-1"
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	return &created, nil
}

func (f *fakeAppointmentRepo) GetByStylistAndDate(_ context.Context, _ int64, _ time.Time, _ bool) ([]*domain.Appointment, error) {
	return f.existing, nil
}

type fakeSessions struct {
	session    bookingflow.Session
	clearCalls int
}

func (f *fakeSessions) Snapshot(_ string) bookingflow.Session { return f.session }
func (f *fakeSessions) Clear(_ string)                        { f.clearCalls++ }

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var (
	testNow  = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
)

func completeSession(slotTime types.TimeString) bookingflow.Session {
	date := testDate
	return bookingflow.Session{
		SelectedServices: []domain.Service{
			{ID: "haircut", Name: "Haircut", Price: 45, DurationMinutes: 45},
		},
		SelectedStylist: &domain.Stylist{ID: 1, Name: "Alex Johnson"},
		SelectedDate:    &date,
		SelectedTimeSlot: &domain.TimeSlot{
			ID:        domain.TimeSlotID(date, slotTime),
			Time:      slotTime,
			Available: true,
		},
	}
}

func newTestUseCase(repo *fakeAppointmentRepo, sessions *fakeSessions) *UseCase {
	uc := NewUseCase(repo, sessions, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedClock{now: testNow}
	return uc
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	sessions := &fakeSessions{session: completeSession("10:00")}
	uc := newTestUseCase(repo, sessions)

	resp, err := uc.Execute(context.Background(), &Request{UserID: "u1"})

	require.NoError(t, err)
	assert.Equal(t, "appt-1", resp.ID)
	assert.Equal(t, "u1", resp.UserID)
	assert.Equal(t, int64(1), resp.StylistID)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("10:45"), resp.EndTime)
	assert.Equal(t, 45, resp.TotalDurationMinutes)
	assert.Equal(t, 45.0, resp.TotalPrice)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	assert.Equal(t, 1, sessions.clearCalls, "session is consumed after a successful commit")
}

func TestExecute_IncompleteSession(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	session := completeSession("10:00")
	session.SelectedTimeSlot = nil
	sessions := &fakeSessions{session: session}
	uc := newTestUseCase(repo, sessions)

	_, err := uc.Execute(context.Background(), &Request{UserID: "u1"})

	assert.ErrorIs(t, err, ErrIncompleteSession)
	assert.Zero(t, repo.createCalls)
	assert.Zero(t, sessions.clearCalls)
}

func TestExecute_DateInPast(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	session := completeSession("10:00")
	past := testNow.AddDate(0, 0, -1)
	session.SelectedDate = &past
	sessions := &fakeSessions{session: session}
	uc := newTestUseCase(repo, sessions)

	_, err := uc.Execute(context.Background(), &Request{UserID: "u1"})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, repo.createCalls)
	assert.Zero(t, sessions.clearCalls)
}

func TestExecute_SlotConflictKeepsSession(t *testing.T) {
	repo := &fakeAppointmentRepo{
		existing: []*domain.Appointment{
			{
				ID:        "other",
				StylistID: 1,
				Date:      testDate,
				StartTime: "10:30",
				EndTime:   "11:30",
				Status:    domain.StatusConfirmed,
			},
		},
	}
	sessions := &fakeSessions{session: completeSession("10:00")}
	uc := newTestUseCase(repo, sessions)

	_, err := uc.Execute(context.Background(), &Request{UserID: "u1"})

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Zero(t, repo.createCalls, "conflicting slot must not reach the insert")
	assert.Zero(t, sessions.clearCalls, "failed booking keeps the session for a retry")
}

func TestExecute_AdjacentAppointmentDoesNotConflict(t *testing.T) {
	repo := &fakeAppointmentRepo{
		existing: []*domain.Appointment{
			{
				ID:        "other",
				StylistID: 1,
				Date:      testDate,
				StartTime: "09:00",
				EndTime:   "10:00",
				Status:    domain.StatusConfirmed,
			},
		},
	}
	sessions := &fakeSessions{session: completeSession("10:00")}
	uc := newTestUseCase(repo, sessions)

	_, err := uc.Execute(context.Background(), &Request{UserID: "u1"})

	require.NoError(t, err, "back-to-back appointments share a boundary, not a slot")
	assert.Equal(t, 1, repo.createCalls)
}

func TestExecute_UniqueIndexRace(t *testing.T) {
	repo := &fakeAppointmentRepo{createErr: appointmentRepo.ErrSlotTaken}
	sessions := &fakeSessions{session: completeSession("10:00")}
	uc := newTestUseCase(repo, sessions)

	_, err := uc.Execute(context.Background(), &Request{UserID: "u1"})

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Zero(t, sessions.clearCalls)
}

func TestExecute_SpansMidnight(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	sessions := &fakeSessions{session: completeSession("23:30")}
	uc := newTestUseCase(repo, sessions)

	_, err := uc.Execute(context.Background(), &Request{UserID: "u1"})

	assert.ErrorIs(t, err, ErrSpansMidnight)
	assert.Zero(t, repo.createCalls)
}

func TestExecute_Validation(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	sessions := &fakeSessions{session: completeSession("10:00")}
	uc := newTestUseCase(repo, sessions)

	_, err := uc.Execute(context.Background(), &Request{UserID: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)

	longNotes := strings.Repeat("a", domain.MaxNotesLength+1)
	_, err = uc.Execute(context.Background(), &Request{UserID: "u1", Notes: &longNotes})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{UserID: "u1", Notes: ptr.Ptr("please use side entrance")})
	assert.NoError(t, err)
}
