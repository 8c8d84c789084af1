package domain

import "time"

// Service represents a bookable offering of a tenant
type Service struct {
	ID              int64
	TenantID        int64
	Name            string
	DurationMinutes int
	Price           float64
	Active          bool

	// Group session settings; meaningless unless IsGroupService is true
	IsGroupService bool
	MaxCapacity    *int
	MinCapacity    *int
	AllowWaitlist  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsGroupCapable returns true if the service supports shared group sessions
func (s *Service) IsGroupCapable() bool {
	return s.IsGroupService && s.EffectiveMaxCapacity() >= 2
}

// EffectiveMaxCapacity returns the participant cap for one session.
// Non-group services always have capacity 1.
func (s *Service) EffectiveMaxCapacity() int {
	if !s.IsGroupService || s.MaxCapacity == nil {
		return 1
	}
	return *s.MaxCapacity
}
