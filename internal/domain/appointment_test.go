package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected AppointmentStatus
	}{
		{"pending", StatusPending},
		{"confirmed", StatusConfirmed},
		{"cancelled", StatusCancelled},
		{"", StatusPending},
		{"completed", StatusPending},
		{"CONFIRMED", StatusPending},
		{"no_show", StatusPending},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeStatus(tt.input), "input=%q", tt.input)
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusConfirmed))
	assert.True(t, CanTransition(StatusPending, StatusCancelled))
	assert.True(t, CanTransition(StatusConfirmed, StatusCancelled))

	// Cancellation is terminal but idempotent
	assert.True(t, CanTransition(StatusCancelled, StatusCancelled))
	assert.False(t, CanTransition(StatusCancelled, StatusPending))
	assert.False(t, CanTransition(StatusCancelled, StatusConfirmed))

	assert.False(t, CanTransition(StatusConfirmed, StatusPending))
}

func TestAppointmentStatusHelpers(t *testing.T) {
	appt := &Appointment{Status: StatusPending}
	assert.True(t, appt.IsActive())
	assert.True(t, appt.IsBlocking())

	appt.Status = StatusConfirmed
	assert.True(t, appt.IsBlocking())

	appt.Status = StatusCancelled
	assert.False(t, appt.IsActive())
	assert.False(t, appt.IsBlocking())
	assert.True(t, appt.IsCancelled())
}

func TestOccupancy(t *testing.T) {
	max := 3
	svc := &Service{IsGroupService: true, MaxCapacity: &max}
	appt := &Appointment{IsGroup: true, CurrentParticipants: 2}

	occ := OccupancyOf(appt, svc)
	assert.Equal(t, 1, occ.Available())
	assert.False(t, occ.IsFull())
	assert.True(t, occ.IsGroupCapable())

	appt.CurrentParticipants = 3
	occ = OccupancyOf(appt, svc)
	assert.True(t, occ.IsFull())

	// Non-group services always have capacity 1
	solo := &Service{IsGroupService: false, MaxCapacity: &max}
	assert.Equal(t, 1, solo.EffectiveMaxCapacity())
	assert.False(t, solo.IsGroupCapable())
}
