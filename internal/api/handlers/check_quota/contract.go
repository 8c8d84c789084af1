package check_quota

import (
	"context"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
)

type QuotaService interface {
	Check(ctx context.Context, tenantID int64, limitName string, currentCount *int) (*domain.QuotaResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
