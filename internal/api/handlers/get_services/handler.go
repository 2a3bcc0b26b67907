package get_services

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avkorn/ABS-AppointmentService/internal/api/handlers"
	"github.com/avkorn/ABS-AppointmentService/internal/api/middleware"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/services
//
// Публичный маршрут. Неактивные услуги видны только владельцу бизнеса:
// includeInactive=true учитывается при наличии подходящей сессии
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/services - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	activeOnly := true
	if r.URL.Query().Get("includeInactive") == "true" {
		session := middleware.GetSession(r.Context())
		if session != nil && session.BusinessID == businessID {
			activeOnly = false
		}
	}

	result, err := h.service.List(r.Context(), businessID, activeOnly)
	if err != nil {
		h.logger.Error("GET /businesses/{id}/services - Failed to list services: business_id=%d, error=%v",
			businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /businesses/{id}/services - Services retrieved successfully: business_id=%d, count=%d",
		businessID, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
