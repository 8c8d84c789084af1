package groups

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
	apptRepo "github.com/vkurop/MTA-SchedulingService/internal/infra/storage/appointment"
	partRepo "github.com/vkurop/MTA-SchedulingService/internal/infra/storage/participant"
	"github.com/vkurop/MTA-SchedulingService/internal/service/groups/models"
)

// Service менеджер вместимости групповых сессий: поиск присоединяемой
// сессии, вступление с учетом листа ожидания и выход с FIFO продвижением
type Service struct {
	apptRepo    AppointmentRepository
	partRepo    ParticipantRepository
	catalogRepo CatalogRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр менеджера групповых сессий
func NewService(
	apptRepo AppointmentRepository,
	partRepo ParticipantRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		apptRepo:    apptRepo,
		partRepo:    partRepo,
		catalogRepo: catalogRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// FindSession ищет существующую групповую сессию по точному кортежу
// (услуга, работник, начало, конец)
// Возвращает сессию вместе с занятостью; полная сессия тоже возвращается -
// решение о листе ожидания принимает вызывающий
func (s *Service) FindSession(
	ctx context.Context,
	tenantID int64,
	svc *domain.Service,
	workerID int64,
	start, end time.Time,
) (*domain.Appointment, domain.Occupancy, error) {
	if !svc.IsGroupCapable() {
		return nil, domain.Occupancy{}, ErrNoSession
	}

	session, err := s.apptRepo.FindGroupSession(ctx, tenantID, svc.ID, workerID, start, end)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, domain.Occupancy{}, ErrNoSession
		}
		s.logger.Error("FindSession: repository error for service=%d worker=%d: %v", svc.ID, workerID, err)
		return nil, domain.Occupancy{}, fmt.Errorf("%w: FindSession - repository error: %v", ErrInternal, err)
	}

	return session, domain.OccupancyOf(session, svc), nil
}

// CanJoin проверяет, может ли клиент вступить в групповую сессию
// Политические отказы (не групповая, уже участник, мест нет) возвращаются
// как результат с причиной, а не как ошибка
func (s *Service) CanJoin(ctx context.Context, tenantID, appointmentID, customerID int64) (*models.CanJoinResult, error) {
	appt, svc, err := s.loadSession(ctx, tenantID, appointmentID)
	if err != nil {
		return nil, err
	}

	plan, err := s.evaluateJoin(ctx, appt, svc, customerID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotGroupAppointment),
			errors.Is(err, ErrAlreadyJoined),
			errors.Is(err, ErrSessionFull),
			errors.Is(err, ErrSessionCancelled):
			return &models.CanJoinResult{CanJoin: false, Reason: err.Error()}, nil
		default:
			return nil, err
		}
	}

	return &models.CanJoinResult{
		CanJoin:        true,
		AvailableSpots: plan.occupancy.Available(),
		WillWaitlist:   plan.status == domain.ParticipantWaitlist,
	}, nil
}

// AddParticipant вступает клиентом в групповую сессию
// Вставка/оживление строки участника и условный инкремент счетчика мест
// выполняются в одной транзакции: если инкремент не прошел, вставка
// откатывается. Полная сессия с включенным листом ожидания понижает
// целевой статус до waitlist вместо confirmed.
func (s *Service) AddParticipant(
	ctx context.Context,
	tenantID, appointmentID, customerID int64,
	desiredStatus domain.ParticipantStatus,
) (*models.JoinResult, error) {
	var result *models.JoinResult

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appt, svc, err := s.loadSession(txCtx, tenantID, appointmentID)
		if err != nil {
			return err
		}

		plan, err := s.evaluateJoin(txCtx, appt, svc, customerID)
		if err != nil {
			return err
		}

		target := plan.status
		if desiredStatus == domain.ParticipantWaitlist {
			// Вызывающий может явно запросить лист ожидания
			target = domain.ParticipantWaitlist
		}

		participantID, err := s.upsertParticipant(txCtx, appt.ID, customerID, plan.revive, target)
		if err != nil {
			return err
		}

		// Место занимают только подтвержденные участники
		if target == domain.ParticipantConfirmed {
			if err := s.apptRepo.IncrementParticipants(txCtx, appt.ID, svc.EffectiveMaxCapacity()); err != nil {
				if errors.Is(err, apptRepo.ErrSessionFull) {
					// Параллельное вступление успело занять последнее место
					if !svc.AllowWaitlist {
						return ErrSessionFull
					}
					target = domain.ParticipantWaitlist
					if err := s.partRepo.SetStatus(txCtx, participantID, target); err != nil {
						return fmt.Errorf("%w: AddParticipant - downgrade to waitlist: %v", ErrInternal, err)
					}
				} else {
					return fmt.Errorf("%w: AddParticipant - increment participants: %v", ErrInternal, err)
				}
			}
		}

		available := plan.occupancy.Available()
		if target == domain.ParticipantConfirmed {
			available--
		}

		result = &models.JoinResult{
			ParticipantID:  participantID,
			Status:         target,
			AvailableSpots: available,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("AddParticipant: customer=%d joined appointment=%d with status=%s",
		customerID, appointmentID, result.Status)

	return result, nil
}

// RemoveParticipant удаляет участника из сессии
// Для подтвержденного участника счетчик мест уменьшается и самый ранний
// участник листа ожидания (FIFO по joined_at) продвигается в confirmed
func (s *Service) RemoveParticipant(ctx context.Context, tenantID, appointmentID, customerID int64) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appt, svc, err := s.loadSession(txCtx, tenantID, appointmentID)
		if err != nil {
			return err
		}

		existing, err := s.partRepo.GetByAppointmentAndCustomer(txCtx, appt.ID, customerID)
		if err != nil {
			if errors.Is(err, partRepo.ErrParticipantNotFound) {
				return ErrParticipantNotFound
			}
			return fmt.Errorf("%w: RemoveParticipant - get participant: %v", ErrInternal, err)
		}

		wasConfirmed := existing.Status == domain.ParticipantConfirmed

		if err := s.partRepo.Delete(txCtx, appt.ID, customerID); err != nil {
			return fmt.Errorf("%w: RemoveParticipant - delete participant: %v", ErrInternal, err)
		}

		if !wasConfirmed {
			return nil
		}

		if err := s.apptRepo.DecrementParticipants(txCtx, appt.ID); err != nil {
			return fmt.Errorf("%w: RemoveParticipant - decrement participants: %v", ErrInternal, err)
		}

		return s.promoteEarliestWaitlisted(txCtx, appt.ID, svc)
	})

	if err != nil {
		return err
	}

	s.logger.Info("RemoveParticipant: customer=%d removed from appointment=%d", customerID, appointmentID)
	return nil
}

// joinPlan внутренний план вступления: целевой статус, занятость и
// оживляемая строка участника (если есть)
type joinPlan struct {
	status    domain.ParticipantStatus
	occupancy domain.Occupancy
	revive    *domain.Participant
}

// loadSession загружает запись и её услугу в рамках тенанта
func (s *Service) loadSession(ctx context.Context, tenantID, appointmentID int64) (*domain.Appointment, *domain.Service, error) {
	appt, err := s.apptRepo.GetByID(ctx, tenantID, appointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, nil, ErrAppointmentNotFound
		}
		return nil, nil, fmt.Errorf("%w: loadSession - get appointment: %v", ErrInternal, err)
	}

	svc, err := s.catalogRepo.GetService(ctx, tenantID, appt.ServiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: loadSession - get service: %v", ErrInternal, err)
	}

	return appt, svc, nil
}

// evaluateJoin проверяет правила вступления и выбирает целевой статус
func (s *Service) evaluateJoin(
	ctx context.Context,
	appt *domain.Appointment,
	svc *domain.Service,
	customerID int64,
) (*joinPlan, error) {
	if appt.IsCancelled() {
		return nil, ErrSessionCancelled
	}

	occ := domain.OccupancyOf(appt, svc)
	if !occ.IsGroupCapable() {
		return nil, ErrNotGroupAppointment
	}

	plan := &joinPlan{status: domain.ParticipantConfirmed, occupancy: occ}

	existing, err := s.partRepo.GetByAppointmentAndCustomer(ctx, appt.ID, customerID)
	if err != nil && !errors.Is(err, partRepo.ErrParticipantNotFound) {
		return nil, fmt.Errorf("%w: evaluateJoin - get participant: %v", ErrInternal, err)
	}
	if existing != nil {
		if existing.IsActive() {
			return nil, ErrAlreadyJoined
		}
		// Отмененная строка оживляется вместо вставки дубликата
		plan.revive = existing
	}

	if occ.IsFull() {
		if !svc.AllowWaitlist {
			return nil, ErrSessionFull
		}
		plan.status = domain.ParticipantWaitlist
	}

	return plan, nil
}

// upsertParticipant оживляет отмененную строку участника или вставляет новую
func (s *Service) upsertParticipant(
	ctx context.Context,
	appointmentID, customerID int64,
	revive *domain.Participant,
	status domain.ParticipantStatus,
) (int64, error) {
	if revive != nil {
		if err := s.partRepo.Revive(ctx, revive.ID, status); err != nil {
			return 0, fmt.Errorf("%w: upsertParticipant - revive: %v", ErrInternal, err)
		}
		return revive.ID, nil
	}

	created, err := s.partRepo.Insert(ctx, &domain.Participant{
		AppointmentID: appointmentID,
		CustomerID:    customerID,
		Status:        status,
	})
	if err != nil {
		if errors.Is(err, partRepo.ErrDuplicateParticipant) {
			// Параллельное вступление того же клиента
			return 0, ErrAlreadyJoined
		}
		return 0, fmt.Errorf("%w: upsertParticipant - insert: %v", ErrInternal, err)
	}

	return created.ID, nil
}

// promoteEarliestWaitlisted продвигает самого раннего участника листа
// ожидания в confirmed, если место освободилось
func (s *Service) promoteEarliestWaitlisted(ctx context.Context, appointmentID int64, svc *domain.Service) error {
	earliest, err := s.partRepo.EarliestWaitlisted(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, partRepo.ErrParticipantNotFound) {
			return nil // лист ожидания пуст
		}
		return fmt.Errorf("%w: promoteEarliestWaitlisted - get waitlisted: %v", ErrInternal, err)
	}

	// Инкремент до смены статуса: если место уже занято параллельным
	// вступлением, продвижение просто не происходит
	if err := s.apptRepo.IncrementParticipants(ctx, appointmentID, svc.EffectiveMaxCapacity()); err != nil {
		if errors.Is(err, apptRepo.ErrSessionFull) {
			return nil
		}
		return fmt.Errorf("%w: promoteEarliestWaitlisted - increment: %v", ErrInternal, err)
	}

	if err := s.partRepo.SetStatus(ctx, earliest.ID, domain.ParticipantConfirmed); err != nil {
		return fmt.Errorf("%w: promoteEarliestWaitlisted - set status: %v", ErrInternal, err)
	}

	s.logger.Info("promoteEarliestWaitlisted: participant=%d promoted to confirmed in appointment=%d",
		earliest.ID, appointmentID)
	return nil
}
