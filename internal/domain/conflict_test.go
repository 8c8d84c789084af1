package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vkurop/MTA-SchedulingService/pkg/ptr"
)

func TestFindConflict_BlocksOverlap(t *testing.T) {
	existing := []*Appointment{
		{ID: 1, ServiceID: 10, Status: StatusConfirmed, StartAt: at(10, 0), EndAt: at(10, 30)},
	}

	// Overlapping request for any service is blocked
	conflict := FindConflict(existing, at(10, 15), at(10, 45), nil, ptr.Ptr(int64(20)), false)
	assert.NotNil(t, conflict)
	assert.Equal(t, int64(1), conflict.ID)

	// Adjacent slot is free
	assert.Nil(t, FindConflict(existing, at(10, 30), at(11, 0), nil, ptr.Ptr(int64(20)), false))
}

func TestFindConflict_IgnoresNonBlockingStatuses(t *testing.T) {
	existing := []*Appointment{
		{ID: 1, ServiceID: 10, Status: StatusCancelled, StartAt: at(10, 0), EndAt: at(10, 30)},
	}

	assert.Nil(t, FindConflict(existing, at(10, 0), at(10, 30), nil, nil, false))
}

func TestFindConflict_ExcludesUpdatedAppointment(t *testing.T) {
	existing := []*Appointment{
		{ID: 7, ServiceID: 10, Status: StatusConfirmed, StartAt: at(10, 0), EndAt: at(10, 30)},
	}

	// Updating appointment 7 itself must not self-conflict
	assert.Nil(t, FindConflict(existing, at(10, 0), at(10, 30), ptr.Ptr(int64(7)), nil, false))
}

func TestFindConflict_GroupCarveOut(t *testing.T) {
	groupSession := &Appointment{
		ID: 3, ServiceID: 10, IsGroup: true,
		Status: StatusConfirmed, StartAt: at(14, 0), EndAt: at(14, 30),
	}
	existing := []*Appointment{groupSession}

	// Same group service: the session is a join candidate, not a blocker
	assert.Nil(t, FindConflict(existing, at(14, 0), at(14, 30), nil, ptr.Ptr(int64(10)), true))

	// Different service still conflicts with the group session
	got := FindConflict(existing, at(14, 0), at(14, 30), nil, ptr.Ptr(int64(11)), true)
	assert.Equal(t, groupSession, got)

	// Same service id but not group-capable: no carve-out
	got = FindConflict(existing, at(14, 0), at(14, 30), nil, ptr.Ptr(int64(10)), false)
	assert.Equal(t, groupSession, got)
}

func TestFindConflict_NonGroupSameServiceStillBlocks(t *testing.T) {
	solo := &Appointment{
		ID: 4, ServiceID: 10, IsGroup: false,
		Status: StatusPending, StartAt: at(9, 0), EndAt: at(9, 30),
	}

	// A non-group appointment for the same service is never joinable
	got := FindConflict([]*Appointment{solo}, at(9, 0), at(9, 30), nil, ptr.Ptr(int64(10)), true)
	assert.Equal(t, solo, got)
}
