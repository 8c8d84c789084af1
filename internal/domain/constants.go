package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DurationToleranceMinutes is the allowed difference between a proposed
// appointment length and the service's configured duration.
const DurationToleranceMinutes = 5

// UnlimitedLimit marks a plan limit with no cap.
const UnlimitedLimit = -1

// Plan limit names known to the quota evaluator.
const (
	LimitMaxStaff            = "max_staff"
	LimitMaxServices         = "max_services"
	LimitMaxBookingsPerMonth = "max_bookings_per_month"
)

// BlockingStatuses lists the statuses in which an appointment occupies the
// worker's time. Used by conflict detection.
var BlockingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}
