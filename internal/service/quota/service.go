package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
	planRepo "github.com/vkurop/MTA-SchedulingService/internal/infra/storage/plan"
)

// Service сервис проверки квот тарифного плана
// Сама оценка лимита чистая (domain.PlanContext.CheckLimit); сервис
// отвечает за разрешение плана тенанта и вычисление живых счетчиков.
// Проверка квоты advisory: счетчик читается без блокировки, два
// параллельных запроса могут совместно превысить лимит на единицу.
type Service struct {
	planRepo     PlanRepository
	apptRepo     AppointmentRepository
	catalogRepo  CatalogRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса квот
func NewService(
	planRepo PlanRepository,
	apptRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *Service {
	return &Service{
		planRepo:     planRepo,
		apptRepo:     apptRepo,
		catalogRepo:  catalogRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// PlanContext разрешает контекст плана тенанта
func (s *Service) PlanContext(ctx context.Context, tenantID int64) (*domain.PlanContext, error) {
	planCtx, err := s.planRepo.GetPlanContext(ctx, tenantID)
	if err != nil {
		if errors.Is(err, planRepo.ErrTenantNotFound) {
			s.logger.Warn("PlanContext: tenant id=%d not found", tenantID)
			return nil, ErrTenantNotFound
		}
		s.logger.Error("PlanContext: failed to get plan for tenant id=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: PlanContext - repository error: %v", ErrInternal, err)
	}
	return planCtx, nil
}

// Check оценивает именованный лимит тенанта
// Если currentCount передан вызывающим, используется как есть; иначе
// живой счетчик вычисляется по имени лимита
func (s *Service) Check(ctx context.Context, tenantID int64, limitName string, currentCount *int) (*domain.QuotaResult, error) {
	planCtx, err := s.PlanContext(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	count := 0
	if currentCount != nil {
		count = *currentCount
	} else {
		count, err = s.liveCount(ctx, tenantID, limitName)
		if err != nil {
			return nil, err
		}
	}

	result := planCtx.CheckLimit(limitName, count)
	s.logger.Info("Check: tenant=%d limit=%s current=%d cap=%d canProceed=%v",
		tenantID, limitName, result.Current, result.Limit, result.CanProceed)

	return &result, nil
}

// CheckMonthlyBookings проверяет месячную квоту бронирований тенанта
// Счетчик: записи, начинающиеся в текущем календарном месяце
func (s *Service) CheckMonthlyBookings(ctx context.Context, planCtx *domain.PlanContext) (*domain.QuotaResult, error) {
	count, err := s.countMonthlyBookings(ctx, planCtx.TenantID)
	if err != nil {
		return nil, err
	}

	result := planCtx.CheckLimit(domain.LimitMaxBookingsPerMonth, count)
	return &result, nil
}

// liveCount вычисляет текущее значение счетчика по имени лимита
func (s *Service) liveCount(ctx context.Context, tenantID int64, limitName string) (int, error) {
	switch limitName {
	case domain.LimitMaxStaff:
		count, err := s.catalogRepo.CountActiveWorkers(ctx, tenantID)
		if err != nil {
			return 0, fmt.Errorf("%w: liveCount - count workers: %v", ErrInternal, err)
		}
		return count, nil

	case domain.LimitMaxServices:
		// Все услуги независимо от флага active
		count, err := s.catalogRepo.CountServices(ctx, tenantID)
		if err != nil {
			return 0, fmt.Errorf("%w: liveCount - count services: %v", ErrInternal, err)
		}
		return count, nil

	case domain.LimitMaxBookingsPerMonth:
		return s.countMonthlyBookings(ctx, tenantID)

	default:
		return 0, ErrUnknownLimit
	}
}

// countMonthlyBookings подсчитывает записи, начинающиеся в текущем
// календарном месяце [первое число, первое число следующего месяца)
func (s *Service) countMonthlyBookings(ctx context.Context, tenantID int64) (int, error) {
	now := s.timeProvider.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)

	count, err := s.apptRepo.CountStartingBetween(ctx, tenantID, monthStart, nextMonth)
	if err != nil {
		return 0, fmt.Errorf("%w: countMonthlyBookings - count appointments: %v", ErrInternal, err)
	}
	return count, nil
}
