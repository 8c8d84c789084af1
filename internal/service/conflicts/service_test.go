package conflicts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
	"github.com/vkurop/MTA-SchedulingService/pkg/ptr"
)

type fakeApptRepo struct {
	overlapping []*domain.Appointment
	err         error
}

func (f *fakeApptRepo) GetOverlapping(_ context.Context, _, _ int64, _, _ time.Time, _ *int64) ([]*domain.Appointment, error) {
	return f.overlapping, f.err
}

type fakeCatalog struct {
	svc *domain.Service
	err error
}

func (f *fakeCatalog) GetService(_ context.Context, _, _ int64) (*domain.Service, error) {
	return f.svc, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func at(hour int) time.Time {
	return time.Date(2026, time.September, 1, hour, 0, 0, 0, time.UTC)
}

func TestCheck_NoConflict(t *testing.T) {
	svc := NewService(&fakeApptRepo{}, &fakeCatalog{}, nopLogger{})

	result, err := svc.Check(context.Background(), 1, 3, at(10), at(11), nil, nil)
	require.NoError(t, err)

	assert.False(t, result.HasConflict)
	assert.Nil(t, result.Conflict)
}

func TestCheck_ReportsBlocker(t *testing.T) {
	blocker := &domain.Appointment{
		ID: 42, ServiceID: 7, ServiceName: "Стрижка",
		StartAt: at(10), EndAt: at(11),
		Status: domain.StatusConfirmed,
	}
	svc := NewService(&fakeApptRepo{overlapping: []*domain.Appointment{blocker}}, &fakeCatalog{}, nopLogger{})

	result, err := svc.Check(context.Background(), 1, 3, at(10), at(11), nil, nil)
	require.NoError(t, err)

	assert.True(t, result.HasConflict)
	require.NotNil(t, result.Conflict)
	assert.Equal(t, int64(42), result.Conflict.AppointmentID)
	assert.Equal(t, "Стрижка", result.Conflict.ServiceName)
}

func TestCheck_GroupSessionSameServiceIsNotConflict(t *testing.T) {
	session := &domain.Appointment{
		ID: 42, ServiceID: 7,
		StartAt: at(10), EndAt: at(11),
		Status: domain.StatusConfirmed, IsGroup: true,
	}
	catalog := &fakeCatalog{svc: &domain.Service{
		ID: 7, IsGroupService: true, MaxCapacity: ptr.Ptr(5),
	}}
	svc := NewService(&fakeApptRepo{overlapping: []*domain.Appointment{session}}, catalog, nopLogger{})

	result, err := svc.Check(context.Background(), 1, 3, at(10), at(11), nil, ptr.Ptr(int64(7)))
	require.NoError(t, err)

	assert.False(t, result.HasConflict)
}

func TestCheck_UnknownServiceDisablesCarveOut(t *testing.T) {
	session := &domain.Appointment{
		ID: 42, ServiceID: 7,
		StartAt: at(10), EndAt: at(11),
		Status: domain.StatusConfirmed, IsGroup: true,
	}
	catalog := &fakeCatalog{err: errors.New("service not found")}
	svc := NewService(&fakeApptRepo{overlapping: []*domain.Appointment{session}}, catalog, nopLogger{})

	result, err := svc.Check(context.Background(), 1, 3, at(10), at(11), nil, ptr.Ptr(int64(7)))
	require.NoError(t, err)

	assert.True(t, result.HasConflict)
}

func TestCheck_InvalidRange(t *testing.T) {
	svc := NewService(&fakeApptRepo{}, &fakeCatalog{}, nopLogger{})

	_, err := svc.Check(context.Background(), 1, 3, at(11), at(10), nil, nil)
	assert.ErrorIs(t, err, ErrInvalidRange)
}
