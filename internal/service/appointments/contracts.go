package appointments

import (
	"context"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, tenantID, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, tenantID, id int64, reason *string) error
}

// ParticipantRepository интерфейс репозитория участников
type ParticipantRepository interface {
	ListByAppointment(ctx context.Context, appointmentID int64) ([]*domain.Participant, error)
}

// ConfirmationHook побочный эффект перехода pending -> confirmed
// Вызывается после фиксации смены статуса, ошибки только логируются
type ConfirmationHook interface {
	Name() string
	OnConfirmed(ctx context.Context, appt *domain.Appointment) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
