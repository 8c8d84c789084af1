package join_group

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vkurop/MTA-SchedulingService/internal/api/handlers"
	"github.com/vkurop/MTA-SchedulingService/internal/api/middleware"
	joinGroup "github.com/vkurop/MTA-SchedulingService/internal/usecase/join_group"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgMissingIdentity      = "отсутствует идентификация запроса"
	msgNotFound             = "запись не найдена"
	msgNotGroup             = "запись не является групповой сессией"
	msgAlreadyJoined        = "клиент уже записан на эту сессию"
	msgSessionFull          = "групповая сессия заполнена"
	msgSessionCancelled     = "групповая сессия отменена"
	msgCustomerNotFound     = "клиент не найден"
	msgCustomerBlocked      = "клиент заблокирован"
)

// JoinResponse HTTP response model
type JoinResponse struct {
	ParticipantID  int64  `json:"participantId"`
	Status         string `json:"status"`
	AvailableSpots int    `json:"availableSpots"`
}

type Handler struct {
	useCase JoinGroupUseCase
	logger  Logger
}

func NewHandler(useCase JoinGroupUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/participants
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/participants - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	tenantID, okTenant := middleware.GetTenantID(r.Context())
	customerID, okUser := middleware.GetUserID(r.Context())
	if !okTenant || !okUser {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &joinGroup.Request{
		TenantID:      tenantID,
		AppointmentID: appointmentID,
		CustomerID:    customerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, joinGroup.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/participants - Not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, joinGroup.ErrCustomerNotFound):
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, joinGroup.ErrNotGroupAppointment):
			handlers.RespondBadRequest(w, msgNotGroup)

		case errors.Is(err, joinGroup.ErrAlreadyJoined):
			handlers.RespondConflict(w, msgAlreadyJoined)

		case errors.Is(err, joinGroup.ErrSessionFull):
			h.logger.Warn("POST /appointments/{id}/participants - Session full: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgSessionFull)

		case errors.Is(err, joinGroup.ErrSessionCancelled):
			handlers.RespondConflict(w, msgSessionCancelled)

		case errors.Is(err, joinGroup.ErrCustomerBlocked):
			handlers.RespondForbidden(w, msgCustomerBlocked)

		case errors.Is(err, joinGroup.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidAppointmentID)

		default:
			h.logger.Error("POST /appointments/{id}/participants - Failed: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/participants - Joined: appointment_id=%d, customer=%d, status=%s",
		appointmentID, customerID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, &JoinResponse{
		ParticipantID:  result.ParticipantID,
		Status:         result.Status,
		AvailableSpots: result.AvailableSpots,
	})
}
