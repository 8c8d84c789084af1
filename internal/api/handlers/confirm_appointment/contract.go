package confirm_appointment

import (
	"context"

	"github.com/vkurop/MTA-SchedulingService/internal/service/appointments/models"
)

type AppointmentService interface {
	Confirm(ctx context.Context, tenantID, id int64) (*models.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
