package check_conflict

import (
	"context"
	"time"

	"github.com/vkurop/MTA-SchedulingService/internal/service/conflicts/models"
)

type ConflictService interface {
	Check(ctx context.Context, tenantID, workerID int64, start, end time.Time, excludeID, serviceID *int64) (*models.CheckResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
