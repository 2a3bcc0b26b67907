package set_employee_services

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avkorn/ABS-AppointmentService/internal/api/handlers"
	"github.com/avkorn/ABS-AppointmentService/internal/api/middleware"
	"github.com/avkorn/ABS-AppointmentService/internal/service/staff"
	"github.com/avkorn/ABS-AppointmentService/internal/service/staff/models"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidEmployeeID  = "некорректный ID сотрудника"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется аутентификация"
	msgForbidden          = "доступ запрещен"
	msgEmployeeNotFound   = "сотрудник не найден"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	service StaffService
	logger  Logger
}

func NewHandler(service StaffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/businesses/{businessId}/employees/{employeeId}/services
// Заменяет набор услуг сотрудника целиком
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/employees/{id}/services - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/employees/{id}/services - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	if session.BusinessID != businessID || !session.CanManage() {
		h.logger.Warn("PUT /businesses/{id}/employees/{id}/services - Access denied: business_id=%d, user_id=%d",
			businessID, session.UserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req models.SetServicesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/employees/{id}/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.SetServices(r.Context(), businessID, employeeID, &req)
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrEmployeeNotFound):
			h.logger.Warn("PUT /businesses/{id}/employees/{id}/services - Employee not found: employee_id=%d, business_id=%d",
				employeeID, businessID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, staff.ErrServiceNotFound):
			h.logger.Warn("PUT /businesses/{id}/employees/{id}/services - Service not found: employee_id=%d, error=%v",
				employeeID, err)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("PUT /businesses/{id}/employees/{id}/services - Failed to set services: employee_id=%d, error=%v",
				employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/employees/{id}/services - Services replaced successfully: employee_id=%d, services=%d",
		employeeID, len(req.ServiceIDs))
	handlers.RespondJSON(w, http.StatusOK, nil)
}
