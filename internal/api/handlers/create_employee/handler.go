package create_employee

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
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные сотрудника"
	msgUnauthorized       = "требуется аутентификация"
	msgForbidden          = "доступ запрещен"
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

// Handle POST /api/v1/businesses/{businessId}/employees
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/employees - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	if session.BusinessID != businessID || !session.CanManage() {
		h.logger.Warn("POST /businesses/{id}/employees - Access denied: business_id=%d, user_id=%d",
			businessID, session.UserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req CreateEmployeeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/employees - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateEmployee(r.Context(), req.ToServiceRequest(businessID))
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/employees - Invalid input: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /businesses/{id}/employees - Failed to create employee: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/employees - Employee created successfully: employee_id=%d, business_id=%d",
		result.ID, businessID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
