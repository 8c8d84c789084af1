package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
	apptRepo "github.com/vkurop/MTA-SchedulingService/internal/infra/storage/appointment"
	catalogRepo "github.com/vkurop/MTA-SchedulingService/internal/infra/storage/catalog"
	customerClient "github.com/vkurop/MTA-SchedulingService/internal/integrations/customerservice"
	"github.com/vkurop/MTA-SchedulingService/internal/service/groups"
	"github.com/vkurop/MTA-SchedulingService/internal/service/quota"
)

// UseCase use case для создания бронирования
// Оркестрирует полный цикл: валидация, разрешение клиента, услуги и
// работника, проверка квоты плана, затем сериализуемая транзакция с
// проверкой конфликтов или присоединением к групповой сессии
type UseCase struct {
	apptRepo       AppointmentRepository
	partRepo       ParticipantRepository
	catalogRepo    CatalogRepository
	quotaService   QuotaService
	groupManager   GroupManager
	customerClient CustomerServiceClient
	notifier       ConfirmationNotifier
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	partRepo ParticipantRepository,
	catalogRepo CatalogRepository,
	quotaService QuotaService,
	groupManager GroupManager,
	customerClient CustomerServiceClient,
	notifier ConfirmationNotifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:       apptRepo,
		partRepo:       partRepo,
		catalogRepo:    catalogRepo,
		quotaService:   quotaService,
		groupManager:   groupManager,
		customerClient: customerClient,
		notifier:       notifier,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных;
// уникальный индекс занятости работника страхует от двойного бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: tenant=%d, customer=%d, worker=%d, service=%d, start=%s",
		req.TenantID, req.CustomerID, req.WorkerID, req.ServiceID, req.StartAt.Format(domain.TimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем клиента
	customer, err := uc.customerClient.GetCustomer(ctx, req.TenantID, req.CustomerID)
	if err != nil {
		if errors.Is(err, customerClient.ErrCustomerNotFound) {
			uc.logger.Warn("CreateBooking: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	if customer.Blocked {
		uc.logger.Warn("CreateBooking: customer id=%d is blocked", req.CustomerID)
		return nil, ErrCustomerBlocked
	}

	// 4. Получаем услугу
	service, err := uc.catalogRepo.GetService(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.Active {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 5. Проверяем время записи против длительности услуги
	if err := validateTiming(req, service, now); err != nil {
		uc.logger.Warn("CreateBooking: timing validation failed: %v", err)
		return nil, err
	}

	// 6. Получаем работника и проверяем пригодность
	worker, err := uc.catalogRepo.GetWorker(ctx, req.TenantID, req.WorkerID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrWorkerNotFound) {
			uc.logger.Warn("CreateBooking: worker id=%d not found", req.WorkerID)
			return nil, ErrWorkerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get worker id=%d: %v", req.WorkerID, err)
		return nil, fmt.Errorf("%w: failed to get worker: %v", ErrInternal, err)
	}

	if err := validateWorker(worker, req); err != nil {
		uc.logger.Warn("CreateBooking: worker validation failed: %v", err)
		return nil, err
	}

	// 7. Проверяем месячную квоту плана (advisory, вне транзакции)
	if err := uc.checkQuota(ctx, req.TenantID); err != nil {
		return nil, err
	}

	// 8. Неизвестный запрошенный статус приводится к pending
	status := domain.NormalizeStatus(req.Status)

	var (
		created *domain.Appointment
		resp    *Response
	)

	// 9. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 9.1. Для групповой услуги сначала ищем существующую сессию
		if service.IsGroupCapable() {
			joined, err := uc.tryJoinSession(txCtx, req, service, customer, worker)
			if err != nil && !errors.Is(err, groups.ErrNoSession) {
				return err
			}
			if joined != nil {
				resp = joined
				return nil
			}
		}

		// 9.2. Сессии нет - проверяем конфликты с блокировкой строк
		overlapping, err := uc.apptRepo.GetOverlapping(txCtx, req.TenantID, req.WorkerID, req.StartAt, req.EndAt, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get overlapping appointments: %v", err)
			return fmt.Errorf("%w: failed to get overlapping appointments: %v", ErrInternal, err)
		}

		if blocker := domain.FindConflict(overlapping, req.StartAt, req.EndAt, nil, &req.ServiceID, service.IsGroupCapable()); blocker != nil {
			uc.logger.Warn("CreateBooking: conflict with appointment id=%d [%s - %s]",
				blocker.ID, blocker.StartAt.Format(domain.TimeFormat), blocker.EndAt.Format(domain.TimeFormat))
			return &TimeConflictError{
				AppointmentID: blocker.ID,
				StartAt:       blocker.StartAt,
				EndAt:         blocker.EndAt,
			}
		}

		// 9.3. Создаем запись с денормализацией данных
		isGroup := service.IsGroupCapable()
		participants := 0
		if isGroup {
			participants = 1 // создатель сессии занимает первое место
		}

		appt := &domain.Appointment{
			TenantID:            req.TenantID,
			WorkerID:            req.WorkerID,
			ServiceID:           req.ServiceID,
			CustomerID:          req.CustomerID,
			StartAt:             req.StartAt,
			EndAt:               req.EndAt,
			Status:              status,
			IsGroup:             isGroup,
			CurrentParticipants: participants,
			ServiceName:         service.Name,
			CustomerName:        customer.Name,
			WorkerName:          worker.Name,
			Notes:               req.Notes,
		}

		created, err = uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, apptRepo.ErrSlotTaken) {
				// Параллельный запрос успел занять слот
				uc.logger.Warn("CreateBooking: slot taken by a concurrent booking")
				return ErrTimeConflict
			}
			uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		// 9.4. Создатель групповой сессии сразу становится участником
		if isGroup {
			if _, err := uc.partRepo.Insert(txCtx, &domain.Participant{
				AppointmentID: created.ID,
				CustomerID:    req.CustomerID,
				Status:        domain.ParticipantConfirmed,
			}); err != nil {
				uc.logger.Error("CreateBooking: failed to insert creator participant: %v", err)
				return fmt.Errorf("%w: failed to insert creator participant: %v", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	// 10. Присоединение к существующей сессии - запись уже была создана ранее
	if resp != nil {
		return resp, nil
	}

	// 11. Побочные эффекты для записи, созданной сразу подтвержденной
	uc.notifier.NotifyCreated(ctx, created)

	uc.logger.Info("CreateBooking: created appointment id=%d, status=%s, group=%v",
		created.ID, created.Status, created.IsGroup)

	return &Response{
		AppointmentID: created.ID,
		Status:        string(created.Status),
		StartAt:       created.StartAt,
		EndAt:         created.EndAt,
		IsGroup:       created.IsGroup,
		ServiceName:   created.ServiceName,
		WorkerName:    created.WorkerName,
		CustomerName:  created.CustomerName,
		CreatedAt:     created.CreatedAt,
	}, nil
}

// checkQuota проверяет активность подписки и месячную квоту бронирований
func (uc *UseCase) checkQuota(ctx context.Context, tenantID int64) error {
	planCtx, err := uc.quotaService.PlanContext(ctx, tenantID)
	if err != nil {
		if errors.Is(err, quota.ErrTenantNotFound) {
			return ErrTenantNotFound
		}
		uc.logger.Error("CreateBooking: failed to resolve plan for tenant=%d: %v", tenantID, err)
		return fmt.Errorf("%w: failed to resolve plan: %v", ErrInternal, err)
	}

	if !planCtx.SubscriptionActive {
		uc.logger.Warn("CreateBooking: subscription inactive for tenant=%d", tenantID)
		return ErrSubscriptionInactive
	}

	result, err := uc.quotaService.CheckMonthlyBookings(ctx, planCtx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check monthly quota for tenant=%d: %v", tenantID, err)
		return fmt.Errorf("%w: failed to check monthly quota: %v", ErrInternal, err)
	}

	if !result.CanProceed {
		uc.logger.Warn("CreateBooking: monthly quota exceeded for tenant=%d (%d/%d)",
			tenantID, result.Current, result.Limit)
		return &QuotaExceededError{
			LimitName: result.LimitName,
			Limit:     result.Limit,
			Current:   result.Current,
		}
	}

	return nil
}

// tryJoinSession присоединяет клиента к существующей групповой сессии
// Возвращает (nil, groups.ErrNoSession), когда сессии по кортежу нет
func (uc *UseCase) tryJoinSession(
	ctx context.Context,
	req *Request,
	service *domain.Service,
	customer *customerClient.Customer,
	worker *domain.Worker,
) (*Response, error) {
	session, occ, err := uc.groupManager.FindSession(ctx, req.TenantID, service, req.WorkerID, req.StartAt, req.EndAt)
	if err != nil {
		return nil, err
	}

	if occ.IsFull() && !service.AllowWaitlist {
		uc.logger.Warn("CreateBooking: group session id=%d is full", session.ID)
		return nil, ErrSessionFull
	}

	joined, err := uc.groupManager.AddParticipant(ctx, req.TenantID, session.ID, req.CustomerID, domain.ParticipantConfirmed)
	if err != nil {
		switch {
		case errors.Is(err, groups.ErrSessionFull):
			return nil, ErrSessionFull
		case errors.Is(err, groups.ErrAlreadyJoined):
			return nil, ErrAlreadyJoined
		default:
			uc.logger.Error("CreateBooking: failed to join session id=%d: %v", session.ID, err)
			return nil, fmt.Errorf("%w: failed to join session: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateBooking: customer=%d joined session id=%d as %s",
		req.CustomerID, session.ID, joined.Status)

	return &Response{
		AppointmentID:     session.ID,
		Status:            string(session.Status),
		StartAt:           session.StartAt,
		EndAt:             session.EndAt,
		IsGroup:           true,
		ServiceName:       service.Name,
		WorkerName:        worker.Name,
		CustomerName:      customer.Name,
		JoinedSession:     true,
		ParticipantStatus: string(joined.Status),
		AvailableSpots:    joined.AvailableSpots,
		CreatedAt:         session.CreatedAt,
	}, nil
}
