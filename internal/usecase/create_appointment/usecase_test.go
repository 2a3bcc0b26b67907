package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avkorn/ABS-AppointmentService/internal/domain"
	catalogRepo "github.com/avkorn/ABS-AppointmentService/internal/infra/storage/catalog"
	customerRepo "github.com/avkorn/ABS-AppointmentService/internal/infra/storage/customer"
	staffRepo "github.com/avkorn/ABS-AppointmentService/internal/infra/storage/staff"
	"github.com/avkorn/ABS-AppointmentService/pkg/ptr"
	"github.com/avkorn/ABS-AppointmentService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// 2026-03-16 - понедельник
var testDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

var farPast = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

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
	employee    *domain.Employee
	employeeErr error
	rows        []*domain.AvailabilityWithEmployee
	rowsErr     error
}

func (f *fakeStaffRepo) GetEmployee(ctx context.Context, businessID, employeeID int64) (*domain.Employee, error) {
	if f.employeeErr != nil {
		return nil, f.employeeErr
	}
	return f.employee, nil
}

func (f *fakeStaffRepo) GetAvailabilityWithEmployees(ctx context.Context, businessID int64) ([]*domain.AvailabilityWithEmployee, error) {
	if f.rowsErr != nil {
		return nil, f.rowsErr
	}
	return f.rows, nil
}

type fakeAppointmentRepo struct {
	existing  []*domain.Appointment
	createErr error
	created   *domain.Appointment
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *appt
	out.ID = 555
	f.created = &out
	return &out, nil
}

func (f *fakeAppointmentRepo) GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.existing, nil
}

type fakeCustomerRepo struct {
	byPhone   *domain.Customer
	createErr error
	created   *domain.Customer
}

func (f *fakeCustomerRepo) GetByPhone(ctx context.Context, businessID int64, phone string) (*domain.Customer, error) {
	if f.byPhone != nil {
		return f.byPhone, nil
	}
	return nil, customerRepo.ErrCustomerNotFound
}

func (f *fakeCustomerRepo) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *customer
	out.ID = 777
	f.created = &out
	return &out, nil
}

// fakeTxManager выполняет функцию напрямую, без транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type fixture struct {
	catalog  *fakeCatalogRepo
	staff    *fakeStaffRepo
	appts    *fakeAppointmentRepo
	customer *fakeCustomerRepo
	tx       *fakeTxManager
	uc       *UseCase
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		catalog: &fakeCatalogRepo{service: &domain.Service{
			ID:              10,
			BusinessID:      1,
			Name:            "Стрижка",
			DurationMinutes: 30,
			Price:           ptr.Ptr(1500.0),
			Active:          true,
		}},
		staff: &fakeStaffRepo{
			employee: &domain.Employee{ID: 100, BusinessID: 1, DisplayName: "Анна", Active: true},
			rows: []*domain.AvailabilityWithEmployee{
				{
					Availability: domain.EmployeeAvailability{
						ID: 1, EmployeeID: 100, DayOfWeek: "1",
						StartTime: "09:00:00", EndTime: "18:00:00",
					},
					Employee:   &domain.Employee{ID: 100, BusinessID: 1, DisplayName: "Анна", Active: true},
					ServiceIDs: []int64{10},
				},
			},
		},
		appts:    &fakeAppointmentRepo{},
		customer: &fakeCustomerRepo{},
		tx:       &fakeTxManager{},
	}
	f.uc = NewUseCase(f.catalog, f.staff, f.appts, f.customer, f.tx, nopLogger{})
	f.uc.timeProvider = &fixedTimeProvider{now: now}
	return f
}

func validRequest() *Request {
	return &Request{
		BusinessID:    1,
		ServiceID:     10,
		EmployeeID:    100,
		Date:          testDate,
		StartTime:     types.TimeString("10:00"),
		CustomerName:  "Иван Петров",
		CustomerPhone: "+79001234567",
	}
}

func TestExecute_HappyPath(t *testing.T) {
	f := newFixture(farPast)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.NotNil(t, resp.Appointment)
	assert.Equal(t, int64(555), resp.Appointment.ID)
	assert.Equal(t, domain.StatusScheduled, resp.Appointment.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.Appointment.StartTime)
	assert.Equal(t, 30, resp.Appointment.DurationMinutes)
	assert.Equal(t, "Стрижка", resp.Appointment.ServiceName)
	assert.Equal(t, 1500.0, resp.Appointment.ServicePrice)

	require.NotNil(t, resp.Customer)
	assert.Equal(t, int64(777), resp.Customer.ID)
	assert.Equal(t, "Иван Петров", resp.Customer.Name)

	assert.Equal(t, 1, f.tx.calls)
}

func TestExecute_ReusesExistingCustomer(t *testing.T) {
	f := newFixture(farPast)
	f.customer.byPhone = &domain.Customer{ID: 42, BusinessID: 1, Name: "Иван", Phone: "+79001234567"}

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.Customer.ID)
	assert.Nil(t, f.customer.created)
	assert.Equal(t, int64(42), resp.Appointment.CustomerID)
}

func TestExecute_ValidationErrors(t *testing.T) {
	f := newFixture(farPast)

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"нулевой бизнес", func(req *Request) { req.BusinessID = 0 }},
		{"нулевая услуга", func(req *Request) { req.ServiceID = 0 }},
		{"нулевой сотрудник", func(req *Request) { req.EmployeeID = 0 }},
		{"нулевая дата", func(req *Request) { req.Date = time.Time{} }},
		{"битое время", func(req *Request) { req.StartTime = "abc" }},
		{"пустое имя клиента", func(req *Request) { req.CustomerName = "  " }},
		{"пустой телефон", func(req *Request) { req.CustomerPhone = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newFixture(farPast)
	f.catalog.err = catalogRepo.ErrServiceNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveServiceTreatedAsNotFound(t *testing.T) {
	f := newFixture(farPast)
	f.catalog.service.Active = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_EmployeeNotFound(t *testing.T) {
	f := newFixture(farPast)
	f.staff.employeeErr = staffRepo.ErrEmployeeNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestExecute_InactiveEmployeeTreatedAsNotFound(t *testing.T) {
	f := newFixture(farPast)
	f.staff.employee.Active = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestExecute_EmployeeNotEligible(t *testing.T) {
	f := newFixture(farPast)
	// Сотрудник не выполняет запрошенную услугу
	f.staff.rows[0].ServiceIDs = []int64{99}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrEmployeeNotEligible)
}

func TestExecute_EmployeeNotWorkingThatDay(t *testing.T) {
	f := newFixture(farPast)
	f.staff.rows[0].Availability.DayOfWeek = "2"

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrEmployeeNotEligible)
}

func TestExecute_SlotOutsideWindow(t *testing.T) {
	f := newFixture(farPast)

	// Слот 17:45 + 30 минут вылезает за конец окна 18:00
	req := validRequest()
	req.StartTime = "17:45"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_SlotInThePast(t *testing.T) {
	now := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	req := validRequest()
	req.StartTime = "10:00"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Zero(t, f.tx.calls)
}

func TestExecute_SlotTakenSameLabel(t *testing.T) {
	f := newFixture(farPast)
	// Та же метка времени у другого сотрудника занимает слот
	f.appts.existing = []*domain.Appointment{
		{EmployeeID: 200, StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusScheduled},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_SlotOverlapSameEmployee(t *testing.T) {
	f := newFixture(farPast)
	// Запись 09:45-10:45 того же сотрудника пересекается со слотом 10:00-10:30
	f.appts.existing = []*domain.Appointment{
		{EmployeeID: 100, StartTime: "09:45", DurationMinutes: 60, Status: domain.StatusScheduled},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_OverlapOtherEmployeeAllowed(t *testing.T) {
	f := newFixture(farPast)
	// Пересечение интервалов с другим сотрудником при разных метках - не конфликт
	f.appts.existing = []*domain.Appointment{
		{EmployeeID: 200, StartTime: "09:45", DurationMinutes: 60, Status: domain.StatusScheduled},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_CancelledAppointmentDoesNotBlock(t *testing.T) {
	f := newFixture(farPast)
	f.appts.existing = []*domain.Appointment{
		{EmployeeID: 100, StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusCancelledByCustomer},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_CreateFailureWrapsInternal(t *testing.T) {
	f := newFixture(farPast)
	f.appts.createErr = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_SerializationFailureWrapsInternal(t *testing.T) {
	f := newFixture(farPast)
	f.uc.txManager = &failingTxManager{err: errors.New("serialization failure")}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

type failingTxManager struct {
	err error
}

func (f *failingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return f.err
}
