package models

import (
	"time"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
)

// Appointment представление записи для внешних слоев
type Appointment struct {
	ID                  int64      `json:"id"`
	TenantID            int64      `json:"tenant_id"`
	WorkerID            int64      `json:"worker_id"`
	ServiceID           int64      `json:"service_id"`
	CustomerID          int64      `json:"customer_id"`
	StartAt             time.Time  `json:"start_at"`
	EndAt               time.Time  `json:"end_at"`
	Status              string     `json:"status"`
	IsGroup             bool       `json:"is_group"`
	CurrentParticipants int        `json:"current_participants"`
	ServiceName         string     `json:"service_name,omitempty"`
	WorkerName          string     `json:"worker_name,omitempty"`
	CustomerName        string     `json:"customer_name,omitempty"`
	Notes               *string    `json:"notes,omitempty"`
	CancellationReason  *string    `json:"cancellation_reason,omitempty"`
	CancelledAt         *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

// Participant представление участника групповой сессии
type Participant struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	Status     string    `json:"status"`
	JoinedAt   time.Time `json:"joined_at"`
}

// FromDomainAppointment конвертирует доменную запись в представление
func FromDomainAppointment(appt *domain.Appointment) *Appointment {
	return &Appointment{
		ID:                  appt.ID,
		TenantID:            appt.TenantID,
		WorkerID:            appt.WorkerID,
		ServiceID:           appt.ServiceID,
		CustomerID:          appt.CustomerID,
		StartAt:             appt.StartAt,
		EndAt:               appt.EndAt,
		Status:              string(appt.Status),
		IsGroup:             appt.IsGroup,
		CurrentParticipants: appt.CurrentParticipants,
		ServiceName:         appt.ServiceName,
		WorkerName:          appt.WorkerName,
		CustomerName:        appt.CustomerName,
		Notes:               appt.Notes,
		CancellationReason:  appt.CancellationReason,
		CancelledAt:         appt.CancelledAt,
		CreatedAt:           appt.CreatedAt,
	}
}

// FromDomainParticipants конвертирует список участников в представление
func FromDomainParticipants(participants []*domain.Participant) []*Participant {
	result := make([]*Participant, 0, len(participants))
	for _, p := range participants {
		result = append(result, &Participant{
			ID:         p.ID,
			CustomerID: p.CustomerID,
			Status:     string(p.Status),
			JoinedAt:   p.JoinedAt,
		})
	}
	return result
}
