package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents one scheduled occupation of a worker's time.
// A group appointment is a single record shared by several participants.
type Appointment struct {
	ID         int64
	TenantID   int64
	WorkerID   int64
	ServiceID  int64
	CustomerID int64
	StartAt    time.Time
	EndAt      time.Time
	Status     AppointmentStatus

	IsGroup             bool
	CurrentParticipants int

	// Denormalized data for history
	ServiceName  string
	CustomerName string
	WorkerName   string
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment has not been cancelled
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsBlocking returns true if the appointment occupies the worker's time
// for conflict detection purposes
func (a *Appointment) IsBlocking() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// NormalizeStatus maps a requested status value to a valid creation status.
// Anything other than the three known statuses silently becomes pending.
func NormalizeStatus(requested string) AppointmentStatus {
	switch AppointmentStatus(requested) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return AppointmentStatus(requested)
	default:
		return StatusPending
	}
}

// CanTransition reports whether the status change is allowed.
// Cancellation is always allowed and terminal; a status never changes the
// appointment's time range, worker or service.
func CanTransition(from, to AppointmentStatus) bool {
	if from == to {
		return from == StatusCancelled // idempotent terminal state
	}
	switch {
	case to == StatusCancelled:
		return true
	case from == StatusPending && to == StatusConfirmed:
		return true
	default:
		return false
	}
}
