package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ReminderRequest запрос на планирование напоминаний по записи
type ReminderRequest struct {
	TenantID      int64     `json:"tenant_id"`
	AppointmentID int64     `json:"appointment_id"`
	CustomerID    int64     `json:"customer_id"`
	StartAt       time.Time `json:"start_at"`
	ServiceName   string    `json:"service_name"`
}

// Client клиент для работы с NotifyService
// Вызывается только после перехода pending -> confirmed и строго best-effort:
// ошибка никогда не влияет на результат бронирования
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ScheduleReminders планирует напоминания для подтвержденной записи
func (c *Client) ScheduleReminders(ctx context.Context, req *ReminderRequest) error {
	url := fmt.Sprintf("%s/internal/reminders", c.baseURL)

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, resp.StatusCode)
	}

	return nil
}
