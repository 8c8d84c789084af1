package groups

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
	apptRepo "github.com/vkurop/MTA-SchedulingService/internal/infra/storage/appointment"
	partRepo "github.com/vkurop/MTA-SchedulingService/internal/infra/storage/participant"
	"github.com/vkurop/MTA-SchedulingService/pkg/ptr"
)

type fakeApptRepo struct {
	appt         *domain.Appointment
	session      *domain.Appointment
	sessionErr   error
	incrementErr error
	increments   int
	decrements   int
}

func (f *fakeApptRepo) GetByID(_ context.Context, _, id int64) (*domain.Appointment, error) {
	if f.appt == nil || f.appt.ID != id {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	cp := *f.appt
	return &cp, nil
}

func (f *fakeApptRepo) FindGroupSession(_ context.Context, _, _, _ int64, _, _ time.Time) (*domain.Appointment, error) {
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	if f.session == nil {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	return f.session, nil
}

func (f *fakeApptRepo) IncrementParticipants(_ context.Context, _ int64, _ int) error {
	if f.incrementErr != nil {
		return f.incrementErr
	}
	f.increments++
	return nil
}

func (f *fakeApptRepo) DecrementParticipants(_ context.Context, _ int64) error {
	f.decrements++
	return nil
}

type fakePartRepo struct {
	existing  *domain.Participant
	earliest  *domain.Participant
	insertErr error

	inserted   []*domain.Participant
	revivedID  int64
	statusSets map[int64]domain.ParticipantStatus
	deleted    bool
}

func (f *fakePartRepo) Insert(_ context.Context, p *domain.Participant) (*domain.Participant, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	created := *p
	created.ID = 100
	f.inserted = append(f.inserted, &created)
	return &created, nil
}

func (f *fakePartRepo) GetByAppointmentAndCustomer(_ context.Context, _, customerID int64) (*domain.Participant, error) {
	if f.existing == nil || f.existing.CustomerID != customerID {
		return nil, partRepo.ErrParticipantNotFound
	}
	cp := *f.existing
	return &cp, nil
}

func (f *fakePartRepo) Revive(_ context.Context, id int64, _ domain.ParticipantStatus) error {
	f.revivedID = id
	return nil
}

func (f *fakePartRepo) SetStatus(_ context.Context, id int64, status domain.ParticipantStatus) error {
	if f.statusSets == nil {
		f.statusSets = map[int64]domain.ParticipantStatus{}
	}
	f.statusSets[id] = status
	return nil
}

func (f *fakePartRepo) Delete(_ context.Context, _, _ int64) error {
	f.deleted = true
	return nil
}

func (f *fakePartRepo) EarliestWaitlisted(_ context.Context, _ int64) (*domain.Participant, error) {
	if f.earliest == nil {
		return nil, partRepo.ErrParticipantNotFound
	}
	return f.earliest, nil
}

type fakeCatalog struct {
	svc *domain.Service
}

func (f *fakeCatalog) GetService(_ context.Context, _, _ int64) (*domain.Service, error) {
	return f.svc, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func groupService(maxCapacity int, allowWaitlist bool) *domain.Service {
	return &domain.Service{
		ID:              7,
		TenantID:        1,
		DurationMinutes: 60,
		Active:          true,
		IsGroupService:  true,
		MaxCapacity:     ptr.Ptr(maxCapacity),
		AllowWaitlist:   allowWaitlist,
	}
}

func groupAppointment(current int) *domain.Appointment {
	return &domain.Appointment{
		ID:                  42,
		TenantID:            1,
		WorkerID:            3,
		ServiceID:           7,
		Status:              domain.StatusConfirmed,
		IsGroup:             true,
		CurrentParticipants: current,
	}
}

func newTestService(appts *fakeApptRepo, parts *fakePartRepo, catalog *fakeCatalog) *Service {
	return NewService(appts, parts, catalog, fakeTxManager{}, nopLogger{})
}

func TestAddParticipant_Confirmed(t *testing.T) {
	appts := &fakeApptRepo{appt: groupAppointment(1)}
	parts := &fakePartRepo{}
	svc := newTestService(appts, parts, &fakeCatalog{svc: groupService(3, false)})

	result, err := svc.AddParticipant(context.Background(), 1, 42, 555, domain.ParticipantConfirmed)
	require.NoError(t, err)

	assert.Equal(t, domain.ParticipantConfirmed, result.Status)
	assert.Equal(t, 1, result.AvailableSpots)
	assert.Equal(t, 1, appts.increments)
	require.Len(t, parts.inserted, 1)
	assert.Equal(t, int64(555), parts.inserted[0].CustomerID)
}

func TestAddParticipant_FullSessionWaitlists(t *testing.T) {
	appts := &fakeApptRepo{appt: groupAppointment(3)}
	parts := &fakePartRepo{}
	svc := newTestService(appts, parts, &fakeCatalog{svc: groupService(3, true)})

	result, err := svc.AddParticipant(context.Background(), 1, 42, 555, domain.ParticipantConfirmed)
	require.NoError(t, err)

	assert.Equal(t, domain.ParticipantWaitlist, result.Status)
	assert.Equal(t, 0, appts.increments, "участник в листе ожидания не занимает место")
}

func TestAddParticipant_FullSessionWithoutWaitlist(t *testing.T) {
	appts := &fakeApptRepo{appt: groupAppointment(3)}
	svc := newTestService(appts, &fakePartRepo{}, &fakeCatalog{svc: groupService(3, false)})

	_, err := svc.AddParticipant(context.Background(), 1, 42, 555, domain.ParticipantConfirmed)
	assert.ErrorIs(t, err, ErrSessionFull)
}

func TestAddParticipant_AlreadyJoined(t *testing.T) {
	appts := &fakeApptRepo{appt: groupAppointment(1)}
	parts := &fakePartRepo{existing: &domain.Participant{
		ID: 9, AppointmentID: 42, CustomerID: 555, Status: domain.ParticipantConfirmed,
	}}
	svc := newTestService(appts, parts, &fakeCatalog{svc: groupService(3, false)})

	_, err := svc.AddParticipant(context.Background(), 1, 42, 555, domain.ParticipantConfirmed)
	assert.ErrorIs(t, err, ErrAlreadyJoined)
}

func TestAddParticipant_RevivesCancelledRow(t *testing.T) {
	appts := &fakeApptRepo{appt: groupAppointment(1)}
	parts := &fakePartRepo{existing: &domain.Participant{
		ID: 9, AppointmentID: 42, CustomerID: 555, Status: domain.ParticipantCancelled,
	}}
	svc := newTestService(appts, parts, &fakeCatalog{svc: groupService(3, false)})

	result, err := svc.AddParticipant(context.Background(), 1, 42, 555, domain.ParticipantConfirmed)
	require.NoError(t, err)

	assert.Equal(t, int64(9), result.ParticipantID)
	assert.Equal(t, int64(9), parts.revivedID)
	assert.Empty(t, parts.inserted)
}

func TestAddParticipant_LastSeatRaceDowngradesToWaitlist(t *testing.T) {
	appts := &fakeApptRepo{appt: groupAppointment(2), incrementErr: apptRepo.ErrSessionFull}
	parts := &fakePartRepo{}
	svc := newTestService(appts, parts, &fakeCatalog{svc: groupService(3, true)})

	result, err := svc.AddParticipant(context.Background(), 1, 42, 555, domain.ParticipantConfirmed)
	require.NoError(t, err)

	assert.Equal(t, domain.ParticipantWaitlist, result.Status)
	assert.Equal(t, domain.ParticipantWaitlist, parts.statusSets[100])
}

func TestAddParticipant_LastSeatRaceRejectsWithoutWaitlist(t *testing.T) {
	appts := &fakeApptRepo{appt: groupAppointment(2), incrementErr: apptRepo.ErrSessionFull}
	svc := newTestService(appts, &fakePartRepo{}, &fakeCatalog{svc: groupService(3, false)})

	_, err := svc.AddParticipant(context.Background(), 1, 42, 555, domain.ParticipantConfirmed)
	assert.ErrorIs(t, err, ErrSessionFull)
}

func TestAddParticipant_NotGroupAppointment(t *testing.T) {
	appt := groupAppointment(0)
	appt.IsGroup = false
	appts := &fakeApptRepo{appt: appt}

	individual := groupService(3, false)
	individual.IsGroupService = false
	individual.MaxCapacity = nil

	svc := newTestService(appts, &fakePartRepo{}, &fakeCatalog{svc: individual})

	_, err := svc.AddParticipant(context.Background(), 1, 42, 555, domain.ParticipantConfirmed)
	assert.ErrorIs(t, err, ErrNotGroupAppointment)
}

func TestAddParticipant_CancelledSession(t *testing.T) {
	appt := groupAppointment(1)
	appt.Status = domain.StatusCancelled
	appts := &fakeApptRepo{appt: appt}
	svc := newTestService(appts, &fakePartRepo{}, &fakeCatalog{svc: groupService(3, false)})

	_, err := svc.AddParticipant(context.Background(), 1, 42, 555, domain.ParticipantConfirmed)
	assert.ErrorIs(t, err, ErrSessionCancelled)
}

func TestRemoveParticipant_PromotesEarliestWaitlisted(t *testing.T) {
	appts := &fakeApptRepo{appt: groupAppointment(3)}
	parts := &fakePartRepo{
		existing: &domain.Participant{ID: 9, AppointmentID: 42, CustomerID: 555, Status: domain.ParticipantConfirmed},
		earliest: &domain.Participant{ID: 11, AppointmentID: 42, CustomerID: 777, Status: domain.ParticipantWaitlist},
	}
	svc := newTestService(appts, parts, &fakeCatalog{svc: groupService(3, true)})

	err := svc.RemoveParticipant(context.Background(), 1, 42, 555)
	require.NoError(t, err)

	assert.True(t, parts.deleted)
	assert.Equal(t, 1, appts.decrements)
	assert.Equal(t, 1, appts.increments, "продвижение занимает освободившееся место")
	assert.Equal(t, domain.ParticipantConfirmed, parts.statusSets[11])
}

func TestRemoveParticipant_WaitlistedLeavesCounterAlone(t *testing.T) {
	appts := &fakeApptRepo{appt: groupAppointment(3)}
	parts := &fakePartRepo{
		existing: &domain.Participant{ID: 9, AppointmentID: 42, CustomerID: 555, Status: domain.ParticipantWaitlist},
	}
	svc := newTestService(appts, parts, &fakeCatalog{svc: groupService(3, true)})

	err := svc.RemoveParticipant(context.Background(), 1, 42, 555)
	require.NoError(t, err)

	assert.True(t, parts.deleted)
	assert.Equal(t, 0, appts.decrements)
	assert.Equal(t, 0, appts.increments)
}

func TestRemoveParticipant_EmptyWaitlist(t *testing.T) {
	appts := &fakeApptRepo{appt: groupAppointment(2)}
	parts := &fakePartRepo{
		existing: &domain.Participant{ID: 9, AppointmentID: 42, CustomerID: 555, Status: domain.ParticipantConfirmed},
	}
	svc := newTestService(appts, parts, &fakeCatalog{svc: groupService(3, true)})

	err := svc.RemoveParticipant(context.Background(), 1, 42, 555)
	require.NoError(t, err)

	assert.Equal(t, 1, appts.decrements)
	assert.Equal(t, 0, appts.increments)
}

func TestRemoveParticipant_NotFound(t *testing.T) {
	appts := &fakeApptRepo{appt: groupAppointment(2)}
	svc := newTestService(appts, &fakePartRepo{}, &fakeCatalog{svc: groupService(3, true)})

	err := svc.RemoveParticipant(context.Background(), 1, 42, 999)
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestCanJoin(t *testing.T) {
	t.Run("открытая сессия", func(t *testing.T) {
		appts := &fakeApptRepo{appt: groupAppointment(1)}
		svc := newTestService(appts, &fakePartRepo{}, &fakeCatalog{svc: groupService(3, false)})

		result, err := svc.CanJoin(context.Background(), 1, 42, 555)
		require.NoError(t, err)

		assert.True(t, result.CanJoin)
		assert.Equal(t, 2, result.AvailableSpots)
		assert.False(t, result.WillWaitlist)
	})

	t.Run("полная сессия с листом ожидания", func(t *testing.T) {
		appts := &fakeApptRepo{appt: groupAppointment(3)}
		svc := newTestService(appts, &fakePartRepo{}, &fakeCatalog{svc: groupService(3, true)})

		result, err := svc.CanJoin(context.Background(), 1, 42, 555)
		require.NoError(t, err)

		assert.True(t, result.CanJoin)
		assert.True(t, result.WillWaitlist)
	})

	t.Run("полная сессия без листа ожидания", func(t *testing.T) {
		appts := &fakeApptRepo{appt: groupAppointment(3)}
		svc := newTestService(appts, &fakePartRepo{}, &fakeCatalog{svc: groupService(3, false)})

		result, err := svc.CanJoin(context.Background(), 1, 42, 555)
		require.NoError(t, err)

		assert.False(t, result.CanJoin)
		assert.NotEmpty(t, result.Reason)
	})

	t.Run("уже участник", func(t *testing.T) {
		appts := &fakeApptRepo{appt: groupAppointment(1)}
		parts := &fakePartRepo{existing: &domain.Participant{
			ID: 9, AppointmentID: 42, CustomerID: 555, Status: domain.ParticipantWaitlist,
		}}
		svc := newTestService(appts, parts, &fakeCatalog{svc: groupService(3, true)})

		result, err := svc.CanJoin(context.Background(), 1, 42, 555)
		require.NoError(t, err)

		assert.False(t, result.CanJoin)
	})
}

func TestFindSession(t *testing.T) {
	session := groupAppointment(2)

	t.Run("сессия найдена", func(t *testing.T) {
		appts := &fakeApptRepo{session: session}
		svc := newTestService(appts, &fakePartRepo{}, &fakeCatalog{})

		found, occ, err := svc.FindSession(context.Background(), 1, groupService(3, false), 3,
			time.Now(), time.Now().Add(time.Hour))
		require.NoError(t, err)

		assert.Equal(t, session.ID, found.ID)
		assert.Equal(t, 1, occ.Available())
	})

	t.Run("услуга не групповая", func(t *testing.T) {
		individual := groupService(3, false)
		individual.IsGroupService = false

		svc := newTestService(&fakeApptRepo{session: session}, &fakePartRepo{}, &fakeCatalog{})

		_, _, err := svc.FindSession(context.Background(), 1, individual, 3,
			time.Now(), time.Now().Add(time.Hour))
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("сессии нет", func(t *testing.T) {
		svc := newTestService(&fakeApptRepo{}, &fakePartRepo{}, &fakeCatalog{})

		_, _, err := svc.FindSession(context.Background(), 1, groupService(3, false), 3,
			time.Now(), time.Now().Add(time.Hour))
		assert.ErrorIs(t, err, ErrNoSession)
	})
}
