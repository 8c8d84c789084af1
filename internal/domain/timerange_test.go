package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 11, 3, hour, minute, 0, 0, time.UTC)
}

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name     string
		s1, e1   time.Time
		s2, e2   time.Time
		expected bool
	}{
		{"identical ranges", at(10, 0), at(10, 30), at(10, 0), at(10, 30), true},
		{"partial overlap", at(10, 0), at(10, 30), at(10, 15), at(10, 45), true},
		{"contained range", at(10, 0), at(11, 0), at(10, 15), at(10, 30), true},
		{"touching endpoints do not overlap", at(10, 0), at(10, 30), at(10, 30), at(11, 0), false},
		{"touching endpoints reversed", at(10, 30), at(11, 0), at(10, 0), at(10, 30), false},
		{"disjoint ranges", at(9, 0), at(9, 30), at(10, 0), at(10, 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RangesOverlap(tt.s1, tt.e1, tt.s2, tt.e2))
			// Overlap is symmetric
			assert.Equal(t, tt.expected, RangesOverlap(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}

func TestWithinWorkingHours_FailOpen(t *testing.T) {
	start, end := at(8, 0), at(8, 30)

	tests := []struct {
		name  string
		hours *WorkingHours
	}{
		{"nil hours", nil},
		{"empty hours", &WorkingHours{}},
		{"end missing", &WorkingHours{Start: "09:00"}},
		{"start missing", &WorkingHours{End: "18:00"}},
		{"malformed start", &WorkingHours{Start: "bad", End: "18:00"}},
		{"malformed end", &WorkingHours{Start: "09:00", End: "25:99"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, WithinWorkingHours(start, end, tt.hours),
				"unconfigured or malformed hours must not block")
		})
	}
}

func TestWithinWorkingHours_Configured(t *testing.T) {
	hours := &WorkingHours{Start: "09:00", End: "18:00"}

	assert.True(t, WithinWorkingHours(at(9, 0), at(9, 30), hours))
	assert.True(t, WithinWorkingHours(at(17, 30), at(18, 0), hours))
	assert.False(t, WithinWorkingHours(at(8, 30), at(9, 0), hours))
	assert.False(t, WithinWorkingHours(at(17, 45), at(18, 15), hours))
	assert.False(t, WithinWorkingHours(at(18, 0), at(18, 30), hours))
}

func TestWithinWorkingHours_MidnightCrossing(t *testing.T) {
	hours := &WorkingHours{Start: "09:00", End: "18:00"}

	// A range running past midnight wraps its end minute to a small value
	// and must not slip through the same-day comparison.
	assert.False(t, WithinWorkingHours(at(23, 0), at(23, 0).Add(90*time.Minute), hours))
	assert.False(t, WithinWorkingHours(at(17, 0), at(17, 0).Add(7*time.Hour), hours))
}

func TestDurationMatches(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		start    time.Time
		end      time.Time
		expected bool
	}{
		{"exact match", 30, at(10, 0), at(10, 30), true},
		{"within tolerance over", 30, at(10, 0), at(10, 35), true},
		{"within tolerance under", 30, at(10, 0), at(10, 25), true},
		{"ten minutes over tolerance", 30, at(10, 0), at(10, 40), false},
		{"ten minutes under tolerance", 30, at(10, 0), at(10, 20), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DurationMatches(tt.duration, tt.start, tt.end))
		})
	}
}
