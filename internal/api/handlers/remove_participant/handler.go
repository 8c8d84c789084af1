package remove_participant

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vkurop/MTA-SchedulingService/internal/api/handlers"
	"github.com/vkurop/MTA-SchedulingService/internal/api/middleware"
	"github.com/vkurop/MTA-SchedulingService/internal/service/groups"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidCustomerID    = "некорректный ID клиента"
	msgMissingIdentity      = "отсутствует идентификация запроса"
	msgAppointmentNotFound  = "запись не найдена"
	msgParticipantNotFound  = "участник не найден"
)

type Handler struct {
	service GroupService
	logger  Logger
}

func NewHandler(service GroupService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/appointments/{appointmentId}/participants/{customerId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	customerID, err := strconv.ParseInt(vars["customerId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	if err := h.service.RemoveParticipant(r.Context(), tenantID, appointmentID, customerID); err != nil {
		switch {
		case errors.Is(err, groups.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /appointments/{id}/participants/{id} - Appointment not found: appointment_id=%d",
				appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, groups.ErrParticipantNotFound):
			h.logger.Warn("DELETE /appointments/{id}/participants/{id} - Participant not found: appointment_id=%d, customer=%d",
				appointmentID, customerID)
			handlers.RespondNotFound(w, msgParticipantNotFound)

		default:
			h.logger.Error("DELETE /appointments/{id}/participants/{id} - Failed: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /appointments/{id}/participants/{id} - Removed: appointment_id=%d, customer=%d, tenant=%d",
		appointmentID, customerID, tenantID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
