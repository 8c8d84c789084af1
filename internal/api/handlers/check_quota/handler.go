package check_quota

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vkurop/MTA-SchedulingService/internal/api/handlers"
	"github.com/vkurop/MTA-SchedulingService/internal/api/middleware"
	"github.com/vkurop/MTA-SchedulingService/internal/service/quota"
)

const (
	msgInvalidTenantID = "некорректный ID тенанта"
	msgInvalidCount    = "некорректный параметр count"
	msgMissingIdentity = "отсутствует идентификация запроса"
	msgForbidden       = "доступ запрещен"
	msgTenantNotFound  = "тенант не найден"
	msgUnknownLimit    = "неизвестное имя лимита"
)

// QuotaResponse HTTP response model
type QuotaResponse struct {
	LimitName  string `json:"limitName"`
	IsLimited  bool   `json:"isLimited"`
	Limit      int    `json:"limit"`
	Current    int    `json:"current"`
	CanProceed bool   `json:"canProceed"`
}

type Handler struct {
	service QuotaService
	logger  Logger
}

func NewHandler(service QuotaService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/quota/{limitName}
// Query: count - текущее значение счетчика (опционально, иначе
// вычисляется живой счетчик по имени лимита)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tenantID, err := strconv.ParseInt(vars["tenantId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	ctxTenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}
	if ctxTenantID != tenantID {
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	limitName := vars["limitName"]

	var currentCount *int
	if raw := r.URL.Query().Get("count"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil || count < 0 {
			handlers.RespondBadRequest(w, msgInvalidCount)
			return
		}
		currentCount = &count
	}

	result, err := h.service.Check(r.Context(), tenantID, limitName, currentCount)
	if err != nil {
		switch {
		case errors.Is(err, quota.ErrTenantNotFound):
			h.logger.Warn("GET /tenants/{id}/quota/{limit} - Tenant not found: tenant=%d", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, quota.ErrUnknownLimit):
			handlers.RespondBadRequest(w, msgUnknownLimit)

		default:
			h.logger.Error("GET /tenants/{id}/quota/{limit} - Failed: tenant=%d, limit=%s, error=%v",
				tenantID, limitName, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &QuotaResponse{
		LimitName:  result.LimitName,
		IsLimited:  result.IsLimited,
		Limit:      result.Limit,
		Current:    result.Current,
		CanProceed: result.CanProceed,
	})
}
