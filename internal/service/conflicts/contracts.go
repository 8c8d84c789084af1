package conflicts

import (
	"context"
	"time"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetOverlapping(ctx context.Context, tenantID, workerID int64, start, end time.Time, excludeID *int64) ([]*domain.Appointment, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetService(ctx context.Context, tenantID, serviceID int64) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
