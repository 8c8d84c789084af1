package domain

import "time"

// Worker represents a staff resource whose time is allocated by appointments
type Worker struct {
	ID       int64
	TenantID int64
	Name     string
	Active   bool

	// ServiceIDs is the set of services the worker is qualified to perform
	ServiceIDs []int64

	WorkingHours *WorkingHours

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsQualifiedFor returns true if the worker may perform the given service
func (w *Worker) IsQualifiedFor(serviceID int64) bool {
	for _, id := range w.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}
