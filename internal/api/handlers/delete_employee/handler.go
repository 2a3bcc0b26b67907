package delete_employee

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avkorn/ABS-AppointmentService/internal/api/handlers"
	"github.com/avkorn/ABS-AppointmentService/internal/api/middleware"
	"github.com/avkorn/ABS-AppointmentService/internal/service/staff"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgUnauthorized      = "требуется аутентификация"
	msgForbidden         = "доступ запрещен"
	msgNotFound          = "сотрудник не найден"
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

// Handle DELETE /api/v1/businesses/{businessId}/employees/{employeeId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/employees/{id} - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/employees/{id} - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	if session.BusinessID != businessID || !session.CanManage() {
		h.logger.Warn("DELETE /businesses/{id}/employees/{id} - Access denied: business_id=%d, user_id=%d",
			businessID, session.UserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	if err := h.service.DeleteEmployee(r.Context(), businessID, employeeID); err != nil {
		switch {
		case errors.Is(err, staff.ErrEmployeeNotFound):
			h.logger.Warn("DELETE /businesses/{id}/employees/{id} - Employee not found: employee_id=%d, business_id=%d",
				employeeID, businessID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /businesses/{id}/employees/{id} - Failed to delete employee: employee_id=%d, error=%v",
				employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /businesses/{id}/employees/{id} - Employee deleted successfully: employee_id=%d, business_id=%d",
		employeeID, businessID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
