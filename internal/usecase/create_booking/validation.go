package create_booking

import (
	"fmt"
	"time"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.WorkerID <= 0 {
		return fmt.Errorf("%w: workerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}

	if !req.StartAt.Before(req.EndAt) {
		return fmt.Errorf("%w: startAt must be before endAt", ErrInvalidInput)
	}

	return nil
}

// validateTiming проверяет, что запись не в прошлом и совпадает с
// длительностью услуги с учетом допуска
func validateTiming(req *Request, svc *domain.Service, now time.Time) error {
	if req.StartAt.Before(now) {
		return ErrStartInPast
	}

	if !domain.DurationMatches(svc.DurationMinutes, req.StartAt, req.EndAt) {
		return fmt.Errorf("%w: service takes %d minutes", ErrDurationMismatch, svc.DurationMinutes)
	}

	return nil
}

// validateWorker проверяет пригодность работника для записи
// Непроставленные рабочие часы никого не ограничивают
func validateWorker(worker *domain.Worker, req *Request) error {
	if !worker.Active {
		return ErrWorkerInactive
	}

	if !worker.IsQualifiedFor(req.ServiceID) {
		return ErrWorkerNotQualified
	}

	if !domain.WithinWorkingHours(req.StartAt, req.EndAt, worker.WorkingHours) {
		return ErrOutsideWorkingHours
	}

	return nil
}
