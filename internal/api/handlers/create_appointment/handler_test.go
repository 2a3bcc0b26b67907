package create_appointment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avkorn/ABS-AppointmentService/internal/domain"
	createAppointment "github.com/avkorn/ABS-AppointmentService/internal/usecase/create_appointment"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeUseCase struct {
	resp *createAppointment.Response
	err  error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

const validBody = `{
	"businessId": 1,
	"serviceId": 10,
	"employeeId": 100,
	"date": "2026-03-16",
	"startTime": "10:00",
	"customer": {"name": "Иван Петров", "phone": "+79001234567"}
}`

func doRequest(t *testing.T, uc CreateAppointmentUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(uc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{resp: &createAppointment.Response{
		Appointment: &domain.Appointment{
			ID:              555,
			BusinessID:      1,
			ServiceID:       10,
			EmployeeID:      100,
			CustomerID:      777,
			Date:            mustParseDate(t, "2026-03-16"),
			StartTime:       "10:00",
			DurationMinutes: 30,
			Status:          domain.StatusScheduled,
			ServiceName:     "Стрижка",
			ServicePrice:    1500,
		},
		Customer: &domain.Customer{ID: 777},
	}}

	rec := doRequest(t, uc, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AppointmentCreatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(555), resp.ID)
	assert.Equal(t, "2026-03-16", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "scheduled", resp.Status)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"некорректные данные", createAppointment.ErrInvalidInput, http.StatusBadRequest},
		{"услуга не найдена", createAppointment.ErrServiceNotFound, http.StatusNotFound},
		{"сотрудник не найден", createAppointment.ErrEmployeeNotFound, http.StatusNotFound},
		{"сотрудник не выполняет услугу", createAppointment.ErrEmployeeNotEligible, http.StatusBadRequest},
		{"слот занят", createAppointment.ErrSlotNotAvailable, http.StatusConflict},
		{"внутренняя ошибка", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{err: tt.err}, validBody)
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestHandle_BadPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"битый JSON", `{`},
		{"неизвестное поле", `{"businessId": 1, "unknown": true}`},
		{"битая дата", `{"businessId": 1, "serviceId": 10, "employeeId": 100, "date": "16.03.2026", "startTime": "10:00", "customer": {"name": "Иван", "phone": "+7900"}}`},
		{"битое время", `{"businessId": 1, "serviceId": 10, "employeeId": 100, "date": "2026-03-16", "startTime": "25:99", "customer": {"name": "Иван", "phone": "+7900"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{}, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func mustParseDate(t *testing.T, s string) time.Time {
	t.Helper()
	date, err := time.Parse(domain.DateFormat, s)
	require.NoError(t, err)
	return date
}
