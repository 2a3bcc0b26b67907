package models

import (
	"github.com/avkorn/ABS-AppointmentService/internal/domain"
)

// Request модели

// CreateEmployeeRequest запрос на создание сотрудника
type CreateEmployeeRequest struct {
	BusinessID  int64  `json:"businessId"`
	DisplayName string `json:"displayName"`
}

// UpdateEmployeeRequest запрос на обновление сотрудника
// Поля-указатели: nil означает "не менять"
type UpdateEmployeeRequest struct {
	DisplayName *string `json:"displayName,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// ScheduleWindowRequest одно окно недельного расписания
type ScheduleWindowRequest struct {
	DayOfWeek string `json:"dayOfWeek"` // "0".."6", "1".."7" или название дня
	StartTime string `json:"startTime"` // "HH:MM"
	EndTime   string `json:"endTime"`   // "HH:MM"
}

// SetScheduleRequest запрос на замену недельного расписания сотрудника
type SetScheduleRequest struct {
	Windows []ScheduleWindowRequest `json:"windows"`
}

// SetServicesRequest запрос на замену набора услуг сотрудника
type SetServicesRequest struct {
	ServiceIDs []int64 `json:"serviceIds"`
}

// Response модели

// EmployeeResponse ответ с данными сотрудника
type EmployeeResponse struct {
	ID          int64  `json:"id"`
	BusinessID  int64  `json:"businessId"`
	DisplayName string `json:"displayName"`
	Active      bool   `json:"active"`
}

// EmployeeListResponse ответ со списком сотрудников
type EmployeeListResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}

// FromDomainEmployee конвертирует domain модель в response
func FromDomainEmployee(e *domain.Employee) *EmployeeResponse {
	return &EmployeeResponse{
		ID:          e.ID,
		BusinessID:  e.BusinessID,
		DisplayName: e.DisplayName,
		Active:      e.Active,
	}
}

// FromDomainEmployeeList конвертирует список domain моделей в response
func FromDomainEmployeeList(employees []*domain.Employee) *EmployeeListResponse {
	result := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		result = append(result, *FromDomainEmployee(e))
	}
	return &EmployeeListResponse{Employees: result}
}
