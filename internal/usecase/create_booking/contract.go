package create_booking

import (
	"context"
	"time"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
	"github.com/vkurop/MTA-SchedulingService/internal/integrations/customerservice"
	groupModels "github.com/vkurop/MTA-SchedulingService/internal/service/groups/models"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetOverlapping(ctx context.Context, tenantID, workerID int64, start, end time.Time, excludeID *int64) ([]*domain.Appointment, error)
}

// ParticipantRepository интерфейс репозитория участников
type ParticipantRepository interface {
	Insert(ctx context.Context, p *domain.Participant) (*domain.Participant, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetService(ctx context.Context, tenantID, serviceID int64) (*domain.Service, error)
	GetWorker(ctx context.Context, tenantID, workerID int64) (*domain.Worker, error)
}

// QuotaService интерфейс сервиса квот тарифного плана
type QuotaService interface {
	PlanContext(ctx context.Context, tenantID int64) (*domain.PlanContext, error)
	CheckMonthlyBookings(ctx context.Context, planCtx *domain.PlanContext) (*domain.QuotaResult, error)
}

// GroupManager интерфейс менеджера групповых сессий
type GroupManager interface {
	FindSession(ctx context.Context, tenantID int64, svc *domain.Service, workerID int64, start, end time.Time) (*domain.Appointment, domain.Occupancy, error)
	AddParticipant(ctx context.Context, tenantID, appointmentID, customerID int64, desiredStatus domain.ParticipantStatus) (*groupModels.JoinResult, error)
}

// CustomerServiceClient интерфейс клиента для CustomerService
type CustomerServiceClient interface {
	GetCustomer(ctx context.Context, tenantID, customerID int64) (*customerservice.Customer, error)
}

// ConfirmationNotifier запускает побочные эффекты для записи,
// созданной сразу в статусе confirmed
type ConfirmationNotifier interface {
	NotifyCreated(ctx context.Context, appt *domain.Appointment)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
