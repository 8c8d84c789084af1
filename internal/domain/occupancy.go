package domain

// Occupancy describes seat usage of one (possibly group) appointment
type Occupancy struct {
	Current int
	Max     int
}

// OccupancyOf computes the seat usage of an appointment given its service
func OccupancyOf(appt *Appointment, svc *Service) Occupancy {
	return Occupancy{
		Current: appt.CurrentParticipants,
		Max:     svc.EffectiveMaxCapacity(),
	}
}

// Available returns the number of free seats
func (o Occupancy) Available() int {
	return o.Max - o.Current
}

// IsFull returns true if no seats remain
func (o Occupancy) IsFull() bool {
	return o.Available() <= 0
}

// IsGroupCapable returns true if the appointment can hold more than one
// participant
func (o Occupancy) IsGroupCapable() bool {
	return o.Max > 1
}
