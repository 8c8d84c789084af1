package appointments

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
	apptRepo "github.com/vkurop/MTA-SchedulingService/internal/infra/storage/appointment"
)

type fakeApptRepo struct {
	appt *domain.Appointment

	statusUpdates []domain.AppointmentStatus
	cancelReason  string
	cancels       int
}

func (f *fakeApptRepo) GetByID(_ context.Context, _, id int64) (*domain.Appointment, error) {
	if f.appt == nil || f.appt.ID != id {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	cp := *f.appt
	return &cp, nil
}

func (f *fakeApptRepo) UpdateStatus(_ context.Context, _, _ int64, status domain.AppointmentStatus) error {
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
}

func (f *fakeApptRepo) Cancel(_ context.Context, _, _ int64, reason *string) error {
	f.cancels++
	if reason != nil {
		f.cancelReason = *reason
	}
	return nil
}

type fakePartRepo struct {
	participants []*domain.Participant
}

func (f *fakePartRepo) ListByAppointment(_ context.Context, _ int64) ([]*domain.Participant, error) {
	return f.participants, nil
}

type recordingHook struct {
	name  string
	err   error
	calls int
}

func (h *recordingHook) Name() string { return h.name }

func (h *recordingHook) OnConfirmed(_ context.Context, _ *domain.Appointment) error {
	h.calls++
	return h.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func pendingAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:         42,
		TenantID:   1,
		WorkerID:   3,
		ServiceID:  7,
		CustomerID: 555,
		Status:     domain.StatusPending,
	}
}

func TestConfirm_PendingFiresHooksOnce(t *testing.T) {
	repo := &fakeApptRepo{appt: pendingAppointment()}
	hook := &recordingHook{name: "reminders"}
	svc := NewService(repo, &fakePartRepo{}, []ConfirmationHook{hook}, nopLogger{})

	result, err := svc.Confirm(context.Background(), 1, 42)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), result.Status)
	assert.Equal(t, []domain.AppointmentStatus{domain.StatusConfirmed}, repo.statusUpdates)
	assert.Equal(t, 1, hook.calls)
}

func TestConfirm_AlreadyConfirmedIsIdempotent(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusConfirmed
	repo := &fakeApptRepo{appt: appt}
	hook := &recordingHook{name: "reminders"}
	svc := NewService(repo, &fakePartRepo{}, []ConfirmationHook{hook}, nopLogger{})

	result, err := svc.Confirm(context.Background(), 1, 42)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), result.Status)
	assert.Empty(t, repo.statusUpdates, "повторное подтверждение не трогает хранилище")
	assert.Equal(t, 0, hook.calls, "хуки не вызываются повторно")
}

func TestConfirm_CancelledIsRejected(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusCancelled
	repo := &fakeApptRepo{appt: appt}
	svc := NewService(repo, &fakePartRepo{}, nil, nopLogger{})

	_, err := svc.Confirm(context.Background(), 1, 42)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestConfirm_HookFailureDoesNotFailConfirmation(t *testing.T) {
	repo := &fakeApptRepo{appt: pendingAppointment()}
	failing := &recordingHook{name: "calendar", err: errors.New("calendar is down")}
	healthy := &recordingHook{name: "reminders"}
	svc := NewService(repo, &fakePartRepo{}, []ConfirmationHook{failing, healthy}, nopLogger{})

	result, err := svc.Confirm(context.Background(), 1, 42)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), result.Status)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, healthy.calls, "отказ одного хука не блокирует остальные")
}

func TestCancel_PendingAndConfirmed(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusPending, domain.StatusConfirmed} {
		appt := pendingAppointment()
		appt.Status = status
		repo := &fakeApptRepo{appt: appt}
		svc := NewService(repo, &fakePartRepo{}, nil, nopLogger{})

		result, err := svc.Cancel(context.Background(), 1, 42, "клиент попросил")
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusCancelled), result.Status)
		assert.Equal(t, "клиент попросил", repo.cancelReason)
	}
}

func TestCancel_AlreadyCancelledIsIdempotent(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusCancelled
	original := "первая причина"
	appt.CancellationReason = &original
	repo := &fakeApptRepo{appt: appt}
	svc := NewService(repo, &fakePartRepo{}, nil, nopLogger{})

	result, err := svc.Cancel(context.Background(), 1, 42, "вторая причина")
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), result.Status)
	assert.Equal(t, 0, repo.cancels, "повторная отмена не перезаписывает причину")
	require.NotNil(t, result.CancellationReason)
	assert.Equal(t, original, *result.CancellationReason)
}

func TestGetByID_GroupIncludesParticipants(t *testing.T) {
	appt := pendingAppointment()
	appt.IsGroup = true
	appt.CurrentParticipants = 2
	repo := &fakeApptRepo{appt: appt}
	parts := &fakePartRepo{participants: []*domain.Participant{
		{ID: 1, CustomerID: 555, Status: domain.ParticipantConfirmed},
		{ID: 2, CustomerID: 777, Status: domain.ParticipantWaitlist},
	}}
	svc := NewService(repo, parts, nil, nopLogger{})

	result, participants, err := svc.GetByID(context.Background(), 1, 42)
	require.NoError(t, err)

	assert.True(t, result.IsGroup)
	require.Len(t, participants, 2)
	assert.Equal(t, "waitlist", participants[1].Status)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(&fakeApptRepo{}, &fakePartRepo{}, nil, nopLogger{})

	_, _, err := svc.GetByID(context.Background(), 1, 42)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
