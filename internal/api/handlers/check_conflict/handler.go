package check_conflict

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/vkurop/MTA-SchedulingService/internal/api/handlers"
	"github.com/vkurop/MTA-SchedulingService/internal/api/middleware"
	"github.com/vkurop/MTA-SchedulingService/internal/service/conflicts"
)

const (
	msgInvalidTenantID = "некорректный ID тенанта"
	msgInvalidWorkerID = "некорректный ID работника"
	msgInvalidRange    = "некорректный интервал, ожидаются start и end в RFC3339"
	msgInvalidParam    = "некорректный параметр запроса"
	msgMissingIdentity = "отсутствует идентификация запроса"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service ConflictService
	logger  Logger
}

func NewHandler(service ConflictService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/workers/{workerId}/conflicts
// Query: start, end (RFC3339), excludeId, serviceId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tenantID, err := strconv.ParseInt(vars["tenantId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	workerID, err := strconv.ParseInt(vars["workerId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidWorkerID)
		return
	}

	ctxTenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}
	if ctxTenantID != tenantID {
		h.logger.Warn("GET /tenants/{id}/workers/{id}/conflicts - Cross-tenant access denied: path=%d, ctx=%d",
			tenantID, ctxTenantID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	query := r.URL.Query()

	start, err := time.Parse(time.RFC3339, query.Get("start"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	end, err := time.Parse(time.RFC3339, query.Get("end"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	excludeID, err := optionalInt64(query.Get("excludeId"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidParam)
		return
	}

	serviceID, err := optionalInt64(query.Get("serviceId"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidParam)
		return
	}

	result, err := h.service.Check(r.Context(), tenantID, workerID, start, end, excludeID, serviceID)
	if err != nil {
		switch {
		case errors.Is(err, conflicts.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /tenants/{id}/workers/{id}/conflicts - Failed: worker=%d, error=%v",
				workerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func optionalInt64(raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
