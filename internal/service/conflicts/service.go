package conflicts

import (
	"context"
	"fmt"
	"time"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
	"github.com/vkurop/MTA-SchedulingService/internal/service/conflicts/models"
)

// Service детектор конфликтов расписания работника
// Пересечение считается по полуоткрытому интервалу: записи, касающиеся
// только границами, не конфликтуют. Групповая сессия той же услуги не
// считается конфликтом - к ней присоединяются.
type Service struct {
	apptRepo    AppointmentRepository
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр детектора конфликтов
func NewService(apptRepo AppointmentRepository, catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		apptRepo:    apptRepo,
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// Check проверяет интервал работника на пересечение с активными записями
// excludeID исключает запись из проверки (сценарий переноса),
// serviceID включает групповое исключение для одноименной сессии
func (s *Service) Check(
	ctx context.Context,
	tenantID, workerID int64,
	start, end time.Time,
	excludeID, serviceID *int64,
) (*models.CheckResult, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start must be before end", ErrInvalidRange)
	}

	overlapping, err := s.apptRepo.GetOverlapping(ctx, tenantID, workerID, start, end, excludeID)
	if err != nil {
		s.logger.Error("Check: get overlapping for worker=%d: %v", workerID, err)
		return nil, fmt.Errorf("%w: Check - get overlapping: %v", ErrInternal, err)
	}

	serviceIsGroupCapable := false
	if serviceID != nil {
		svc, err := s.catalogRepo.GetService(ctx, tenantID, *serviceID)
		if err != nil {
			// Неизвестная услуга не ломает проверку, просто без группового исключения
			s.logger.Warn("Check: get service=%d failed, group carve-out disabled: %v", *serviceID, err)
		} else {
			serviceIsGroupCapable = svc.IsGroupCapable()
		}
	}

	blocker := domain.FindConflict(overlapping, start, end, excludeID, serviceID, serviceIsGroupCapable)
	if blocker == nil {
		return &models.CheckResult{HasConflict: false}, nil
	}

	return &models.CheckResult{
		HasConflict: true,
		Conflict: &models.ConflictingAppointment{
			AppointmentID: blocker.ID,
			ServiceID:     blocker.ServiceID,
			ServiceName:   blocker.ServiceName,
			StartAt:       blocker.StartAt,
			EndAt:         blocker.EndAt,
			Status:        string(blocker.Status),
			IsGroup:       blocker.IsGroup,
		},
	}, nil
}
