package staff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avkorn/ABS-AppointmentService/internal/domain"
	catalogRepo "github.com/avkorn/ABS-AppointmentService/internal/infra/storage/catalog"
	staffRepo "github.com/avkorn/ABS-AppointmentService/internal/infra/storage/staff"
	"github.com/avkorn/ABS-AppointmentService/internal/service/staff/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeEmployeeRepo struct {
	employee    *domain.Employee
	employeeErr error

	gotWindows    []domain.ScheduleWindow
	gotServiceIDs []int64
}

func (f *fakeEmployeeRepo) CreateEmployee(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	out := *employee
	out.ID = 100
	return &out, nil
}

func (f *fakeEmployeeRepo) GetEmployee(ctx context.Context, businessID, employeeID int64) (*domain.Employee, error) {
	if f.employeeErr != nil {
		return nil, f.employeeErr
	}
	return f.employee, nil
}

func (f *fakeEmployeeRepo) GetEmployees(ctx context.Context, businessID int64, activeOnly bool) ([]*domain.Employee, error) {
	return []*domain.Employee{f.employee}, nil
}

func (f *fakeEmployeeRepo) UpdateEmployee(ctx context.Context, employee *domain.Employee) error {
	return nil
}

func (f *fakeEmployeeRepo) DeleteEmployee(ctx context.Context, businessID, employeeID int64) error {
	return nil
}

func (f *fakeEmployeeRepo) ReplaceSchedule(ctx context.Context, employeeID int64, windows []domain.ScheduleWindow) error {
	f.gotWindows = windows
	return nil
}

func (f *fakeEmployeeRepo) ReplaceServiceLinks(ctx context.Context, employeeID int64, serviceIDs []int64) error {
	f.gotServiceIDs = serviceIDs
	return nil
}

type fakeServiceRepo struct {
	missing map[int64]bool
}

func (f *fakeServiceRepo) GetByID(ctx context.Context, businessID, serviceID int64) (*domain.Service, error) {
	if f.missing[serviceID] {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return &domain.Service{ID: serviceID, BusinessID: businessID, Active: true, DurationMinutes: 30}, nil
}

type passTxManager struct{}

func (passTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(employeeRepo *fakeEmployeeRepo, serviceRepo *fakeServiceRepo) *Service {
	return NewService(employeeRepo, serviceRepo, passTxManager{}, nopLogger{})
}

func TestBuildScheduleWindows_Canonicalizes(t *testing.T) {
	windows, err := buildScheduleWindows([]models.ScheduleWindowRequest{
		{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "18:00"},
		{DayOfWeek: "7", StartTime: "10:00:00", EndTime: "14:30:00"},
	})
	require.NoError(t, err)

	require.Len(t, windows, 2)
	assert.Equal(t, "1", windows[0].DayOfWeek)
	assert.Equal(t, "09:00:00", windows[0].StartTime)
	assert.Equal(t, "18:00:00", windows[0].EndTime)
	assert.Equal(t, "0", windows[1].DayOfWeek)
	assert.Equal(t, "10:00:00", windows[1].StartTime)
	assert.Equal(t, "14:30:00", windows[1].EndTime)
}

func TestBuildScheduleWindows_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		window models.ScheduleWindowRequest
	}{
		{"нераспознанный день", models.ScheduleWindowRequest{DayOfWeek: "someday", StartTime: "09:00", EndTime: "18:00"}},
		{"битое время начала", models.ScheduleWindowRequest{DayOfWeek: "1", StartTime: "abc", EndTime: "18:00"}},
		{"битое время конца", models.ScheduleWindowRequest{DayOfWeek: "1", StartTime: "09:00", EndTime: "25:99"}},
		{"начало не раньше конца", models.ScheduleWindowRequest{DayOfWeek: "1", StartTime: "18:00", EndTime: "09:00"}},
		{"пустое окно", models.ScheduleWindowRequest{DayOfWeek: "1", StartTime: "09:00", EndTime: "09:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildScheduleWindows([]models.ScheduleWindowRequest{tt.window})
			assert.ErrorIs(t, err, ErrInvalidSchedule)
		})
	}
}

func TestSetSchedule_ReplacesAtomically(t *testing.T) {
	repo := &fakeEmployeeRepo{employee: &domain.Employee{ID: 100, BusinessID: 1, Active: true}}
	svc := newTestService(repo, &fakeServiceRepo{})

	err := svc.SetSchedule(context.Background(), 1, 100, &models.SetScheduleRequest{
		Windows: []models.ScheduleWindowRequest{
			{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "18:00"},
		},
	})
	require.NoError(t, err)

	require.Len(t, repo.gotWindows, 1)
	assert.Equal(t, "1", repo.gotWindows[0].DayOfWeek)
}

func TestSetSchedule_EmptyWindowsClearsSchedule(t *testing.T) {
	repo := &fakeEmployeeRepo{employee: &domain.Employee{ID: 100, BusinessID: 1, Active: true}}
	svc := newTestService(repo, &fakeServiceRepo{})

	err := svc.SetSchedule(context.Background(), 1, 100, &models.SetScheduleRequest{})
	require.NoError(t, err)
	assert.Empty(t, repo.gotWindows)
}

func TestSetSchedule_EmployeeNotFound(t *testing.T) {
	repo := &fakeEmployeeRepo{employeeErr: staffRepo.ErrEmployeeNotFound}
	svc := newTestService(repo, &fakeServiceRepo{})

	err := svc.SetSchedule(context.Background(), 1, 100, &models.SetScheduleRequest{})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestSetServices_DeduplicatesAndValidates(t *testing.T) {
	repo := &fakeEmployeeRepo{employee: &domain.Employee{ID: 100, BusinessID: 1, Active: true}}
	svc := newTestService(repo, &fakeServiceRepo{})

	err := svc.SetServices(context.Background(), 1, 100, &models.SetServicesRequest{
		ServiceIDs: []int64{10, 20, 10},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20}, repo.gotServiceIDs)
}

func TestSetServices_UnknownService(t *testing.T) {
	repo := &fakeEmployeeRepo{employee: &domain.Employee{ID: 100, BusinessID: 1, Active: true}}
	svc := newTestService(repo, &fakeServiceRepo{missing: map[int64]bool{20: true}})

	err := svc.SetServices(context.Background(), 1, 100, &models.SetServicesRequest{
		ServiceIDs: []int64{10, 20},
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
