package join_group

import (
	"context"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
	"github.com/vkurop/MTA-SchedulingService/internal/integrations/customerservice"
	groupModels "github.com/vkurop/MTA-SchedulingService/internal/service/groups/models"
)

// GroupManager интерфейс менеджера групповых сессий
type GroupManager interface {
	CanJoin(ctx context.Context, tenantID, appointmentID, customerID int64) (*groupModels.CanJoinResult, error)
	AddParticipant(ctx context.Context, tenantID, appointmentID, customerID int64, desiredStatus domain.ParticipantStatus) (*groupModels.JoinResult, error)
}

// CustomerServiceClient интерфейс клиента для CustomerService
type CustomerServiceClient interface {
	GetCustomer(ctx context.Context, tenantID, customerID int64) (*customerservice.Customer, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
