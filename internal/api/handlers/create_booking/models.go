package create_booking

import (
	"time"

	createBooking "github.com/vkurop/MTA-SchedulingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	WorkerID  int64   `json:"workerId"`
	ServiceID int64   `json:"serviceId"`
	StartAt   string  `json:"startAt"` // RFC3339, например "2026-09-01T10:00:00Z"
	EndAt     string  `json:"endAt"`   // RFC3339
	Status    string  `json:"status,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	AppointmentID     int64  `json:"appointmentId"`
	Status            string `json:"status"`
	StartAt           string `json:"startAt"`
	EndAt             string `json:"endAt"`
	IsGroup           bool   `json:"isGroup"`
	ServiceName       string `json:"serviceName"`
	WorkerName        string `json:"workerName"`
	CustomerName      string `json:"customerName"`
	JoinedSession     bool   `json:"joinedSession"`
	ParticipantStatus string `json:"participantStatus,omitempty"`
	AvailableSpots    int    `json:"availableSpots,omitempty"`
	CreatedAt         string `json:"createdAt"`
}

// ConflictResponse тело 409 с деталями блокирующей записи
type ConflictResponse struct {
	Error                    string `json:"error"`
	ConflictingAppointmentID int64  `json:"conflictingAppointmentId"`
	ConflictingStartAt       string `json:"conflictingStartAt"`
	ConflictingEndAt         string `json:"conflictingEndAt"`
}

// QuotaExceededResponse тело 403 с деталями исчерпанного лимита
type QuotaExceededResponse struct {
	Error     string `json:"error"`
	LimitName string `json:"limitName"`
	Limit     int    `json:"limit"`
	Current   int    `json:"current"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(tenantID, customerID int64) (*createBooking.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	endAt, err := time.Parse(time.RFC3339, r.EndAt)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		TenantID:   tenantID,
		CustomerID: customerID,
		WorkerID:   r.WorkerID,
		ServiceID:  r.ServiceID,
		StartAt:    startAt,
		EndAt:      endAt,
		Status:     r.Status,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		AppointmentID:     resp.AppointmentID,
		Status:            resp.Status,
		StartAt:           resp.StartAt.Format(time.RFC3339),
		EndAt:             resp.EndAt.Format(time.RFC3339),
		IsGroup:           resp.IsGroup,
		ServiceName:       resp.ServiceName,
		WorkerName:        resp.WorkerName,
		CustomerName:      resp.CustomerName,
		JoinedSession:     resp.JoinedSession,
		ParticipantStatus: resp.ParticipantStatus,
		AvailableSpots:    resp.AvailableSpots,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
	}
}
