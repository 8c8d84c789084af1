package domain

import "time"

// ParticipantStatus represents the status of a participant enrollment
type ParticipantStatus string

const (
	ParticipantConfirmed ParticipantStatus = "confirmed"
	ParticipantWaitlist  ParticipantStatus = "waitlist"
	ParticipantCancelled ParticipantStatus = "cancelled"
)

// Participant represents a customer's enrollment in a (possibly group)
// appointment. At most one non-cancelled row exists per
// (appointment, customer) pair.
type Participant struct {
	ID            int64
	AppointmentID int64
	CustomerID    int64
	Status        ParticipantStatus
	JoinedAt      time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the enrollment has not been cancelled
func (p *Participant) IsActive() bool {
	return p.Status != ParticipantCancelled
}
