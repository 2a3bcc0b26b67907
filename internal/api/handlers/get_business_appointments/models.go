package get_business_appointments

import (
	"net/url"
	"strconv"
	"time"

	"github.com/avkorn/ABS-AppointmentService/internal/domain"
	"github.com/avkorn/ABS-AppointmentService/internal/service/appointments/models"
)

// ParseQuery собирает запрос сервиса из query параметров
// Поддерживаются: employeeId, startDate, endDate (YYYY-MM-DD), status, includeInactive
func ParseQuery(businessID int64, query url.Values) (*models.GetBusinessAppointmentsRequest, error) {
	req := &models.GetBusinessAppointmentsRequest{
		BusinessID: businessID,
	}

	if v := query.Get("employeeId"); v != "" {
		employeeID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		req.EmployeeID = &employeeID
	}

	if v := query.Get("startDate"); v != "" {
		startDate, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if v := query.Get("endDate"); v != "" {
		endDate, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	if v := query.Get("includeInactive"); v != "" {
		includeInactive, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
