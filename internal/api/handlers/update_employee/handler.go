package update_employee

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
	msgInvalidInput       = "некорректные данные сотрудника"
	msgUnauthorized       = "требуется аутентификация"
	msgForbidden          = "доступ запрещен"
	msgNotFound           = "сотрудник не найден"
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

// Handle PUT /api/v1/businesses/{businessId}/employees/{employeeId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/employees/{id} - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/employees/{id} - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	if session.BusinessID != businessID || !session.CanManage() {
		h.logger.Warn("PUT /businesses/{id}/employees/{id} - Access denied: business_id=%d, user_id=%d",
			businessID, session.UserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req models.UpdateEmployeeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/employees/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateEmployee(r.Context(), businessID, employeeID, &req)
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrEmployeeNotFound):
			h.logger.Warn("PUT /businesses/{id}/employees/{id} - Employee not found: employee_id=%d, business_id=%d",
				employeeID, businessID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, staff.ErrInvalidInput):
			h.logger.Warn("PUT /businesses/{id}/employees/{id} - Invalid input: employee_id=%d, error=%v",
				employeeID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /businesses/{id}/employees/{id} - Failed to update employee: employee_id=%d, error=%v",
				employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/employees/{id} - Employee updated successfully: employee_id=%d, business_id=%d",
		employeeID, businessID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
