package remove_participant

import "context"

type GroupService interface {
	RemoveParticipant(ctx context.Context, tenantID, appointmentID, customerID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
