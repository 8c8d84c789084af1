package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/vkurop/MTA-SchedulingService/internal/api/handlers"
	"github.com/vkurop/MTA-SchedulingService/internal/api/middleware"
	createBooking "github.com/vkurop/MTA-SchedulingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidTime          = "некорректный формат времени, ожидается RFC3339"
	msgMissingIdentity      = "отсутствует идентификация запроса"
	msgCustomerNotFound     = "клиент не найден"
	msgCustomerBlocked      = "клиент заблокирован"
	msgServiceNotFound      = "услуга не найдена"
	msgServiceInactive      = "услуга недоступна"
	msgWorkerNotFound       = "работник не найден"
	msgWorkerInactive       = "работник недоступен"
	msgWorkerNotQualified   = "работник не оказывает эту услугу"
	msgStartInPast          = "время начала записи в прошлом"
	msgDurationMismatch     = "длительность записи не совпадает с услугой"
	msgOutsideWorkingHours  = "время записи вне рабочих часов работника"
	msgTimeConflict         = "выбранное время уже занято"
	msgSessionFull          = "групповая сессия заполнена"
	msgAlreadyJoined        = "клиент уже записан на эту сессию"
	msgQuotaExceeded        = "исчерпана месячная квота бронирований"
	msgSubscriptionInactive = "подписка тенанта неактивна"
	msgTenantNotFound       = "тенант не найден"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	tenantID, okTenant := middleware.GetTenantID(r.Context())
	customerID, okUser := middleware.GetUserID(r.Context())
	if !okTenant || !okUser {
		h.logger.Warn("POST /bookings - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID, customerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createBooking.ErrTimeConflict):
			h.logger.Warn("POST /bookings - Time conflict: tenant=%d, worker=%d", tenantID, req.WorkerID)
			var conflictErr *createBooking.TimeConflictError
			if errors.As(err, &conflictErr) {
				handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
					Error:                    msgTimeConflict,
					ConflictingAppointmentID: conflictErr.AppointmentID,
					ConflictingStartAt:       conflictErr.StartAt.Format(time.RFC3339),
					ConflictingEndAt:         conflictErr.EndAt.Format(time.RFC3339),
				})
				return
			}
			handlers.RespondConflict(w, msgTimeConflict)

		case errors.Is(err, createBooking.ErrSessionFull):
			h.logger.Warn("POST /bookings - Session full: tenant=%d, worker=%d", tenantID, req.WorkerID)
			handlers.RespondConflict(w, msgSessionFull)

		case errors.Is(err, createBooking.ErrAlreadyJoined):
			h.logger.Warn("POST /bookings - Already joined: tenant=%d, customer=%d", tenantID, customerID)
			handlers.RespondConflict(w, msgAlreadyJoined)

		case errors.Is(err, createBooking.ErrCustomerNotFound):
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrWorkerNotFound):
			handlers.RespondNotFound(w, msgWorkerNotFound)

		case errors.Is(err, createBooking.ErrTenantNotFound):
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, createBooking.ErrCustomerBlocked):
			handlers.RespondForbidden(w, msgCustomerBlocked)

		case errors.Is(err, createBooking.ErrSubscriptionInactive):
			h.logger.Warn("POST /bookings - Subscription inactive: tenant=%d", tenantID)
			handlers.RespondForbidden(w, msgSubscriptionInactive)

		case errors.Is(err, createBooking.ErrQuotaExceeded):
			h.logger.Warn("POST /bookings - Quota exceeded: tenant=%d", tenantID)
			var quotaErr *createBooking.QuotaExceededError
			if errors.As(err, &quotaErr) {
				handlers.RespondJSON(w, http.StatusForbidden, QuotaExceededResponse{
					Error:     msgQuotaExceeded,
					LimitName: quotaErr.LimitName,
					Limit:     quotaErr.Limit,
					Current:   quotaErr.Current,
				})
				return
			}
			handlers.RespondForbidden(w, msgQuotaExceeded)

		case errors.Is(err, createBooking.ErrServiceInactive):
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, createBooking.ErrWorkerInactive):
			handlers.RespondBadRequest(w, msgWorkerInactive)

		case errors.Is(err, createBooking.ErrWorkerNotQualified):
			handlers.RespondBadRequest(w, msgWorkerNotQualified)

		case errors.Is(err, createBooking.ErrStartInPast):
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createBooking.ErrDurationMismatch):
			handlers.RespondBadRequest(w, msgDurationMismatch)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: tenant=%d, customer=%d, error=%v",
				tenantID, customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created: appointment_id=%d, tenant=%d, customer=%d, joined=%v",
		result.AppointmentID, tenantID, customerID, result.JoinedSession)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
