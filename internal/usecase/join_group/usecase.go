package join_group

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
	customerClient "github.com/vkurop/MTA-SchedulingService/internal/integrations/customerservice"
	"github.com/vkurop/MTA-SchedulingService/internal/service/groups"
)

// UseCase use case для вступления клиента в существующую групповую сессию
type UseCase struct {
	groupManager   GroupManager
	customerClient CustomerServiceClient
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(groupManager GroupManager, customerClient CustomerServiceClient, logger Logger) *UseCase {
	return &UseCase{
		groupManager:   groupManager,
		customerClient: customerClient,
		logger:         logger,
	}
}

// Execute выполняет вступление в групповую сессию
// Вся работа с вместимостью и листом ожидания выполняется менеджером
// групп в его транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("JoinGroup: tenant=%d, appointment=%d, customer=%d",
		req.TenantID, req.AppointmentID, req.CustomerID)

	if req.TenantID <= 0 || req.AppointmentID <= 0 || req.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: ids must be positive", ErrInvalidInput)
	}

	customer, err := uc.customerClient.GetCustomer(ctx, req.TenantID, req.CustomerID)
	if err != nil {
		if errors.Is(err, customerClient.ErrCustomerNotFound) {
			uc.logger.Warn("JoinGroup: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("JoinGroup: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	if customer.Blocked {
		uc.logger.Warn("JoinGroup: customer id=%d is blocked", req.CustomerID)
		return nil, ErrCustomerBlocked
	}

	result, err := uc.groupManager.AddParticipant(ctx, req.TenantID, req.AppointmentID, req.CustomerID, domain.ParticipantConfirmed)
	if err != nil {
		switch {
		case errors.Is(err, groups.ErrAppointmentNotFound):
			return nil, ErrAppointmentNotFound
		case errors.Is(err, groups.ErrNotGroupAppointment):
			return nil, ErrNotGroupAppointment
		case errors.Is(err, groups.ErrAlreadyJoined):
			return nil, ErrAlreadyJoined
		case errors.Is(err, groups.ErrSessionFull):
			return nil, ErrSessionFull
		case errors.Is(err, groups.ErrSessionCancelled):
			return nil, ErrSessionCancelled
		default:
			uc.logger.Error("JoinGroup: failed to add participant: %v", err)
			return nil, fmt.Errorf("%w: failed to add participant: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("JoinGroup: customer=%d joined appointment=%d as %s",
		req.CustomerID, req.AppointmentID, result.Status)

	return &Response{
		ParticipantID:  result.ParticipantID,
		Status:         string(result.Status),
		AvailableSpots: result.AvailableSpots,
	}, nil
}
