package groups

import (
	"context"
	"time"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Appointment, error)
	FindGroupSession(ctx context.Context, tenantID, serviceID, workerID int64, start, end time.Time) (*domain.Appointment, error)
	IncrementParticipants(ctx context.Context, id int64, maxCapacity int) error
	DecrementParticipants(ctx context.Context, id int64) error
}

// ParticipantRepository интерфейс репозитория участников
type ParticipantRepository interface {
	Insert(ctx context.Context, p *domain.Participant) (*domain.Participant, error)
	GetByAppointmentAndCustomer(ctx context.Context, appointmentID, customerID int64) (*domain.Participant, error)
	Revive(ctx context.Context, id int64, status domain.ParticipantStatus) error
	SetStatus(ctx context.Context, id int64, status domain.ParticipantStatus) error
	Delete(ctx context.Context, appointmentID, customerID int64) error
	EarliestWaitlisted(ctx context.Context, appointmentID int64) (*domain.Participant, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetService(ctx context.Context, tenantID, serviceID int64) (*domain.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
