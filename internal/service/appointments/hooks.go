package appointments

import (
	"context"
	"fmt"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
	"github.com/vkurop/MTA-SchedulingService/internal/integrations/calendarservice"
	"github.com/vkurop/MTA-SchedulingService/internal/integrations/notifyservice"
)

// ReminderHook планирует напоминания клиенту через NotifyService
type ReminderHook struct {
	client *notifyservice.Client
}

// NewReminderHook создает хук планирования напоминаний
func NewReminderHook(client *notifyservice.Client) *ReminderHook {
	return &ReminderHook{client: client}
}

func (h *ReminderHook) Name() string {
	return "reminders"
}

func (h *ReminderHook) OnConfirmed(ctx context.Context, appt *domain.Appointment) error {
	return h.client.ScheduleReminders(ctx, &notifyservice.ReminderRequest{
		TenantID:      appt.TenantID,
		AppointmentID: appt.ID,
		CustomerID:    appt.CustomerID,
		StartAt:       appt.StartAt,
		ServiceName:   appt.ServiceName,
	})
}

// CalendarHook синхронизирует запись с внешним календарем работника
type CalendarHook struct {
	client *calendarservice.Client
}

// NewCalendarHook создает хук синхронизации с календарем
func NewCalendarHook(client *calendarservice.Client) *CalendarHook {
	return &CalendarHook{client: client}
}

func (h *CalendarHook) Name() string {
	return "calendar"
}

func (h *CalendarHook) OnConfirmed(ctx context.Context, appt *domain.Appointment) error {
	return h.client.SyncAppointment(ctx, &calendarservice.SyncRequest{
		TenantID:      appt.TenantID,
		AppointmentID: appt.ID,
		WorkerID:      appt.WorkerID,
		StartAt:       appt.StartAt,
		EndAt:         appt.EndAt,
		Title:         fmt.Sprintf("%s - %s", appt.ServiceName, appt.CustomerName),
	})
}
