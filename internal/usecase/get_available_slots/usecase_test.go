package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avkorn/ABS-AppointmentService/internal/domain"
	catalogRepo "github.com/avkorn/ABS-AppointmentService/internal/infra/storage/catalog"
	"github.com/avkorn/ABS-AppointmentService/pkg/types"
)

type fakeCatalogRepo struct {
	service *domain.Service
	err     error
}

func (f *fakeCatalogRepo) GetByID(ctx context.Context, businessID, serviceID int64) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.service, nil
}

type fakeStaffRepo struct {
	rows []*domain.AvailabilityWithEmployee
	err  error
}

func (f *fakeStaffRepo) GetAvailabilityWithEmployees(ctx context.Context, businessID int64) ([]*domain.AvailabilityWithEmployee, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
	gotFilter    domain.BusinessAppointmentsFilter
}

func (f *fakeAppointmentRepo) GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessAppointmentsFilter) ([]*domain.Appointment, error) {
	f.gotFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.appointments, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

func newTestUseCase(catalog *fakeCatalogRepo, staff *fakeStaffRepo, appts *fakeAppointmentRepo, now time.Time) *UseCase {
	uc := NewUseCase(catalog, staff, appts, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{BusinessID: 1, ServiceID: 10, Date: testDate}
}

func TestExecute_HappyPath(t *testing.T) {
	catalog := &fakeCatalogRepo{service: testService(30)}
	staff := &fakeStaffRepo{rows: []*domain.AvailabilityWithEmployee{
		availabilityRow(1, 100, "Анна", "1", "09:00:00", "11:00:00"),
	}}
	appts := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{StartTime: types.TimeString("09:30"), Status: domain.StatusScheduled},
	}}

	uc := newTestUseCase(catalog, staff, appts, farPast)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, resp.Slots, 4)
	assert.Equal(t, testDate, resp.Date)
	assert.Equal(t, int64(1), resp.BusinessID)
	assert.Equal(t, int64(10), resp.ServiceID)

	for _, s := range resp.Slots {
		if s.Time == "09:30" {
			assert.False(t, s.Available)
		} else {
			assert.True(t, s.Available)
		}
	}

	// Занятость выбирается одним днем, без отмененных записей
	require.NotNil(t, appts.gotFilter.StartDate)
	require.NotNil(t, appts.gotFilter.EndDate)
	assert.Equal(t, testDate, *appts.gotFilter.StartDate)
	assert.Equal(t, testDate, *appts.gotFilter.EndDate)
	assert.False(t, appts.gotFilter.IncludeInactive)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&fakeCatalogRepo{}, &fakeStaffRepo{}, &fakeAppointmentRepo{}, farPast)

	tests := []struct {
		name string
		req  *Request
	}{
		{"нулевой бизнес", &Request{BusinessID: 0, ServiceID: 10, Date: testDate}},
		{"нулевая услуга", &Request{BusinessID: 1, ServiceID: 0, Date: testDate}},
		{"нулевая дата", &Request{BusinessID: 1, ServiceID: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ServiceNotFound(t *testing.T) {
	catalog := &fakeCatalogRepo{err: catalogRepo.ErrServiceNotFound}
	uc := newTestUseCase(catalog, &fakeStaffRepo{}, &fakeAppointmentRepo{}, farPast)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_CatalogFailure(t *testing.T) {
	catalog := &fakeCatalogRepo{err: errors.New("connection refused")}
	uc := newTestUseCase(catalog, &fakeStaffRepo{}, &fakeAppointmentRepo{}, farPast)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_InvalidServiceDuration(t *testing.T) {
	catalog := &fakeCatalogRepo{service: testService(0)}
	uc := newTestUseCase(catalog, &fakeStaffRepo{}, &fakeAppointmentRepo{}, farPast)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidServiceDuration)
}

func TestExecute_InactiveServiceGivesEmptyResult(t *testing.T) {
	service := testService(30)
	service.Active = false
	catalog := &fakeCatalogRepo{service: service}
	uc := newTestUseCase(catalog, &fakeStaffRepo{}, &fakeAppointmentRepo{}, farPast)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NoEligibleStaffGivesEmptyResult(t *testing.T) {
	catalog := &fakeCatalogRepo{service: testService(30)}
	// Окно есть, но на другой день недели
	staff := &fakeStaffRepo{rows: []*domain.AvailabilityWithEmployee{
		availabilityRow(1, 100, "Анна", "2", "09:00:00", "11:00:00"),
	}}
	appts := &fakeAppointmentRepo{}

	uc := newTestUseCase(catalog, staff, appts, farPast)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
	// До выборки записей дело не дошло
	assert.Zero(t, appts.gotFilter.BusinessID)
}

func TestExecute_StaffFailure(t *testing.T) {
	catalog := &fakeCatalogRepo{service: testService(30)}
	staff := &fakeStaffRepo{err: errors.New("connection refused")}
	uc := newTestUseCase(catalog, staff, &fakeAppointmentRepo{}, farPast)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_AppointmentsFailure(t *testing.T) {
	catalog := &fakeCatalogRepo{service: testService(30)}
	staff := &fakeStaffRepo{rows: []*domain.AvailabilityWithEmployee{
		availabilityRow(1, 100, "Анна", "1", "09:00:00", "11:00:00"),
	}}
	appts := &fakeAppointmentRepo{err: errors.New("connection refused")}

	uc := newTestUseCase(catalog, staff, appts, farPast)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_Idempotent(t *testing.T) {
	catalog := &fakeCatalogRepo{service: testService(45)}
	staff := &fakeStaffRepo{rows: []*domain.AvailabilityWithEmployee{
		availabilityRow(1, 100, "Анна", "1", "09:00:00", "13:00:00"),
		availabilityRow(2, 200, "Борис", "Monday", "10:00:00", "14:00:00"),
	}}
	appts := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{StartTime: types.TimeString("10:30"), Status: domain.StatusScheduled},
	}}

	uc := newTestUseCase(catalog, staff, appts, farPast)

	first, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
