package quota

import (
	"context"
	"time"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
)

// PlanRepository интерфейс репозитория планов
type PlanRepository interface {
	GetPlanContext(ctx context.Context, tenantID int64) (*domain.PlanContext, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	CountStartingBetween(ctx context.Context, tenantID int64, from, to time.Time) (int, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	CountServices(ctx context.Context, tenantID int64) (int, error)
	CountActiveWorkers(ctx context.Context, tenantID int64) (int, error)
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
