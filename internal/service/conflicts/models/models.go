package models

import "time"

// ConflictingAppointment описание записи, блокирующей интервал
type ConflictingAppointment struct {
	AppointmentID int64     `json:"appointment_id"`
	ServiceID     int64     `json:"service_id"`
	ServiceName   string    `json:"service_name,omitempty"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	Status        string    `json:"status"`
	IsGroup       bool      `json:"is_group"`
}

// CheckResult результат проверки интервала работника на конфликты
type CheckResult struct {
	HasConflict bool                    `json:"has_conflict"`
	Conflict    *ConflictingAppointment `json:"conflict,omitempty"`
}
