package domain

import "time"

// FindConflict scans the worker's appointments for one that blocks the
// proposed [start, end) range.
//
// An appointment blocks when it is in a blocking status, overlaps the range
// and is not the appointment being updated (excludeID). When the proposed
// service is group-capable, an overlapping group appointment for the same
// service is a candidate to join rather than a blocker and is skipped.
// Returns the first blocker found, or nil.
func FindConflict(
	appointments []*Appointment,
	start, end time.Time,
	excludeID *int64,
	serviceID *int64,
	serviceIsGroupCapable bool,
) *Appointment {
	for _, appt := range appointments {
		if excludeID != nil && appt.ID == *excludeID {
			continue
		}
		if !appt.IsBlocking() {
			continue
		}
		if !RangesOverlap(appt.StartAt, appt.EndAt, start, end) {
			continue
		}
		// Same-service group sessions share the worker's slot intentionally
		if serviceIsGroupCapable && serviceID != nil && appt.IsGroup && appt.ServiceID == *serviceID {
			continue
		}
		return appt
	}
	return nil
}
