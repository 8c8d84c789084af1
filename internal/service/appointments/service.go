package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
	apptRepo "github.com/vkurop/MTA-SchedulingService/internal/infra/storage/appointment"
	"github.com/vkurop/MTA-SchedulingService/internal/service/appointments/models"
)

// Service управляет жизненным циклом записи: чтение, подтверждение и отмена
// Переходы статусов проверяются доменной машиной состояний,
// побочные эффекты подтверждения выполняются строго после смены статуса
type Service struct {
	apptRepo AppointmentRepository
	partRepo ParticipantRepository
	hooks    []ConfirmationHook
	logger   Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	apptRepo AppointmentRepository,
	partRepo ParticipantRepository,
	hooks []ConfirmationHook,
	logger Logger,
) *Service {
	return &Service{
		apptRepo: apptRepo,
		partRepo: partRepo,
		hooks:    hooks,
		logger:   logger,
	}
}

// GetByID возвращает запись тенанта вместе с участниками групповой сессии
func (s *Service) GetByID(ctx context.Context, tenantID, id int64) (*models.Appointment, []*models.Participant, error) {
	appt, err := s.load(ctx, tenantID, id)
	if err != nil {
		return nil, nil, err
	}

	var participants []*domain.Participant
	if appt.IsGroup {
		participants, err = s.partRepo.ListByAppointment(ctx, appt.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: GetByID - list participants: %v", ErrInternal, err)
		}
	}

	return models.FromDomainAppointment(appt), models.FromDomainParticipants(participants), nil
}

// Confirm переводит запись из pending в confirmed
// Повторное подтверждение идемпотентно и не вызывает хуки повторно.
// Подтверждение отмененной записи запрещено.
func (s *Service) Confirm(ctx context.Context, tenantID, id int64) (*models.Appointment, error) {
	appt, err := s.load(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if appt.Status == domain.StatusConfirmed {
		return models.FromDomainAppointment(appt), nil
	}

	if !domain.CanTransition(appt.Status, domain.StatusConfirmed) {
		return nil, fmt.Errorf("%w: cannot confirm appointment in status %q", ErrInvalidTransition, appt.Status)
	}

	if err := s.apptRepo.UpdateStatus(ctx, tenantID, id, domain.StatusConfirmed); err != nil {
		return nil, fmt.Errorf("%w: Confirm - update status: %v", ErrInternal, err)
	}

	appt.Status = domain.StatusConfirmed
	s.runHooks(ctx, appt)

	s.logger.Info("Confirm: appointment=%d confirmed for tenant=%d", id, tenantID)
	return models.FromDomainAppointment(appt), nil
}

// Cancel отменяет запись с указанием причины
// Отмена уже отмененной записи идемпотентна: возвращается текущее
// состояние без ошибки и без повторной записи причины
func (s *Service) Cancel(ctx context.Context, tenantID, id int64, reason string) (*models.Appointment, error) {
	appt, err := s.load(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if appt.IsCancelled() {
		return models.FromDomainAppointment(appt), nil
	}

	if err := s.apptRepo.Cancel(ctx, tenantID, id, &reason); err != nil {
		return nil, fmt.Errorf("%w: Cancel - cancel appointment: %v", ErrInternal, err)
	}

	appt.Status = domain.StatusCancelled
	appt.CancellationReason = &reason

	s.logger.Info("Cancel: appointment=%d cancelled for tenant=%d, reason=%q", id, tenantID, reason)
	return models.FromDomainAppointment(appt), nil
}

// NotifyCreated запускает хуки подтверждения для записи, созданной сразу
// в статусе confirmed (бронирование без модерации)
func (s *Service) NotifyCreated(ctx context.Context, appt *domain.Appointment) {
	if appt.Status != domain.StatusConfirmed {
		return
	}
	s.runHooks(ctx, appt)
}

func (s *Service) load(ctx context.Context, tenantID, id int64) (*domain.Appointment, error) {
	appt, err := s.apptRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("%w: load appointment: %v", ErrInternal, err)
	}
	return appt, nil
}

// runHooks вызывает хуки подтверждения best-effort: отказ внешнего
// сервиса логируется и никогда не откатывает смену статуса
func (s *Service) runHooks(ctx context.Context, appt *domain.Appointment) {
	for _, hook := range s.hooks {
		if err := hook.OnConfirmed(ctx, appt); err != nil {
			s.logger.Warn("runHooks: hook %s failed for appointment=%d: %v", hook.Name(), appt.ID, err)
		}
	}
}
