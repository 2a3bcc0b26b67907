package get_dashboard_stats

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avkorn/ABS-AppointmentService/internal/api/handlers"
	"github.com/avkorn/ABS-AppointmentService/internal/api/middleware"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgUnauthorized      = "требуется аутентификация"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/dashboard
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/dashboard - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	if session.BusinessID != businessID {
		h.logger.Warn("GET /businesses/{id}/dashboard - Access denied: business_id=%d, session_business_id=%d",
			businessID, session.BusinessID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.service.DashboardStats(r.Context(), businessID)
	if err != nil {
		h.logger.Error("GET /businesses/{id}/dashboard - Failed to collect stats: business_id=%d, error=%v",
			businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /businesses/{id}/dashboard - Stats retrieved successfully: business_id=%d", businessID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
