package staff

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/avkorn/ABS-AppointmentService/internal/domain"
	"github.com/avkorn/ABS-AppointmentService/pkg/dbmetrics"
	"github.com/avkorn/ABS-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с сотрудниками, их расписанием и связями с услугами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateEmployee создает нового сотрудника
func (r *Repository) CreateEmployee(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("employees").
		Columns(
			"business_id",
			"display_name",
			"active",
		).
		Values(
			employee.BusinessID,
			employee.DisplayName,
			employee.Active,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateEmployee - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&employee.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: CreateEmployee - execute insert: %v", ErrExecQuery, err)
	}

	employee.CreatedAt = createdAt.Time
	employee.UpdatedAt = updatedAt.Time

	return employee, nil
}

// GetEmployee получает сотрудника по ID в рамках бизнеса
func (r *Repository) GetEmployee(ctx context.Context, businessID, employeeID int64) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"display_name",
		"active",
		"created_at",
		"updated_at",
	).
		From("employees").
		Where(squirrel.Eq{"id": employeeID, "business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetEmployee - build select query: %v", ErrBuildQuery, err)
	}

	var employee domain.Employee
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&employee.ID,
		&employee.BusinessID,
		&employee.DisplayName,
		&employee.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetEmployee - scan employee: %v", ErrScanRow, err)
	}

	employee.CreatedAt = createdAt.Time
	employee.UpdatedAt = updatedAt.Time

	return &employee, nil
}

// GetEmployees получает список сотрудников бизнеса
func (r *Repository) GetEmployees(ctx context.Context, businessID int64, activeOnly bool) ([]*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"business_id",
		"display_name",
		"active",
		"created_at",
		"updated_at",
	).
		From("employees").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("display_name ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetEmployees - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetEmployees - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		var employee domain.Employee
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&employee.ID,
			&employee.BusinessID,
			&employee.DisplayName,
			&employee.Active,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetEmployees - scan row: %v", ErrScanRow, err)
		}

		employee.CreatedAt = createdAt.Time
		employee.UpdatedAt = updatedAt.Time

		employees = append(employees, &employee)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetEmployees - rows error: %v", ErrScanRow, err)
	}

	return employees, nil
}

// UpdateEmployee обновляет сотрудника
func (r *Repository) UpdateEmployee(ctx context.Context, employee *domain.Employee) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("employees").
		Set("display_name", employee.DisplayName).
		Set("active", employee.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": employee.ID, "business_id": employee.BusinessID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateEmployee - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateEmployee - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateEmployee - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEmployeeNotFound
	}

	return nil
}

// DeleteEmployee удаляет сотрудника (физическое удаление)
// Окна доступности и связи с услугами удаляются каскадно на уровне схемы БД
func (r *Repository) DeleteEmployee(ctx context.Context, businessID, employeeID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("employees").
		Where(squirrel.Eq{"id": employeeID, "business_id": businessID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteEmployee - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteEmployee - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteEmployee - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEmployeeNotFound
	}

	return nil
}

// GetAvailabilityWithEmployees получает все окна доступности сотрудников бизнеса
// вместе с данными сотрудника и набором услуг, которые он выполняет
//
// День недели в БД хранится в разнородных кодировках (0-6, 1-7, названия),
// поэтому фильтрация по дню выполняется на стороне сервиса через pkg/weekday,
// а не в SQL. Строки с нарушенной связкой employee возвращаются с nil Employee -
// потребитель решает, пропускать их или считать ошибкой данных.
func (r *Repository) GetAvailabilityWithEmployees(ctx context.Context, businessID int64) ([]*domain.AvailabilityWithEmployee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"ea.id",
		"ea.employee_id",
		"ea.day_of_week",
		"ea.start_time",
		"ea.end_time",
		"e.id",
		"e.business_id",
		"e.display_name",
		"e.active",
		"COALESCE(array_agg(es.service_id) FILTER (WHERE es.service_id IS NOT NULL), '{}')",
	).
		From("employee_availability ea").
		LeftJoin("employees e ON e.id = ea.employee_id").
		LeftJoin("employee_services es ON es.employee_id = ea.employee_id").
		Where(squirrel.Or{
			squirrel.Eq{"e.business_id": businessID},
			squirrel.Eq{"e.id": nil},
		}).
		GroupBy("ea.id", "ea.employee_id", "ea.day_of_week", "ea.start_time", "ea.end_time",
			"e.id", "e.business_id", "e.display_name", "e.active").
		OrderBy("ea.start_time ASC, ea.employee_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailabilityWithEmployees - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailabilityWithEmployees - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.AvailabilityWithEmployee, 0)
	for rows.Next() {
		var row domain.AvailabilityWithEmployee
		var (
			empID       sql.NullInt64
			empBusiness sql.NullInt64
			empName     sql.NullString
			empActive   sql.NullBool
			serviceIDs  pq.Int64Array
		)

		err := rows.Scan(
			&row.Availability.ID,
			&row.Availability.EmployeeID,
			&row.Availability.DayOfWeek,
			&row.Availability.StartTime,
			&row.Availability.EndTime,
			&empID,
			&empBusiness,
			&empName,
			&empActive,
			&serviceIDs,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAvailabilityWithEmployees - scan row: %v", ErrScanRow, err)
		}

		if empID.Valid {
			row.Employee = &domain.Employee{
				ID:          empID.Int64,
				BusinessID:  empBusiness.Int64,
				DisplayName: empName.String,
				Active:      empActive.Bool,
			}
		}
		row.ServiceIDs = serviceIDs

		result = append(result, &row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAvailabilityWithEmployees - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// ReplaceSchedule заменяет недельное расписание сотрудника целиком
// Выполняется как delete + insert; вызывать внутри транзакции
func (r *Repository) ReplaceSchedule(ctx context.Context, employeeID int64, windows []domain.ScheduleWindow) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("employee_availability").
		Where(squirrel.Eq{"employee_id": employeeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceSchedule - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceSchedule - execute delete: %v", ErrExecQuery, err)
	}

	if len(windows) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("employee_availability").
		Columns("employee_id", "day_of_week", "start_time", "end_time")

	for _, w := range windows {
		insertBuilder = insertBuilder.Values(employeeID, w.DayOfWeek, w.StartTime, w.EndTime)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceSchedule - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceSchedule - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ReplaceServiceLinks заменяет набор услуг сотрудника целиком
// Выполняется как delete + insert; вызывать внутри транзакции
func (r *Repository) ReplaceServiceLinks(ctx context.Context, employeeID int64, serviceIDs []int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("employee_services").
		Where(squirrel.Eq{"employee_id": employeeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceServiceLinks - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceServiceLinks - execute delete: %v", ErrExecQuery, err)
	}

	if len(serviceIDs) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("employee_services").
		Columns("employee_id", "service_id")

	for _, id := range serviceIDs {
		insertBuilder = insertBuilder.Values(employeeID, id)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceServiceLinks - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceServiceLinks - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// CountActive возвращает количество активных сотрудников бизнеса
func (r *Repository) CountActive(ctx context.Context, businessID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("employees").
		Where(squirrel.Eq{"business_id": businessID, "active": true}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActive - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActive - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}
