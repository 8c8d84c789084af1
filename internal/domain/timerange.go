package domain

import (
	"time"

	"github.com/vkurop/MTA-SchedulingService/pkg/types"
)

// WorkingHours bounds the time of day a worker accepts appointments.
// Either side may be empty, meaning no restriction was configured.
type WorkingHours struct {
	Start types.TimeString
	End   types.TimeString
}

// RangesOverlap reports whether two half-open intervals [start1, end1) and
// [start2, end2) intersect. Touching endpoints do not overlap.
func RangesOverlap(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}

// WithinWorkingHours reports whether the minute-of-day span of [start, end)
// fits inside the configured hours.
//
// Unconfigured-or-malformed hours pass: when hours are absent, incomplete or
// do not parse, there is no restriction to enforce and the result is true.
// A misconfigured value must never block bookings.
func WithinWorkingHours(start, end time.Time, hours *WorkingHours) bool {
	if hours == nil || hours.Start.IsZero() || hours.End.IsZero() {
		return true
	}

	openMin, err := hours.Start.Minutes()
	if err != nil {
		return true
	}
	closeMin, err := hours.End.Minutes()
	if err != nil {
		return true
	}

	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()

	// A range crossing midnight cannot fit inside a same-day window.
	if endMin <= startMin {
		return false
	}

	return startMin >= openMin && endMin <= closeMin
}

// DurationMatches reports whether the proposed range length matches the
// service duration within the configured tolerance.
func DurationMatches(serviceDurationMinutes int, start, end time.Time) bool {
	actual := int(end.Sub(start) / time.Minute)
	diff := actual - serviceDurationMinutes
	if diff < 0 {
		diff = -diff
	}
	return diff <= DurationToleranceMinutes
}
