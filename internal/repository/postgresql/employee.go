package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const employeeColumns = `id, first_name, last_name, email, phone, department, position, status,
	salary, hire_date, created_at, updated_at`

type employeeRepositoryImpl struct {
	db database.Pool
}

func NewEmployeeRepository(db database.Pool) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// scanEmployee reads one row in employeeColumns order. Unknown statuses fail closed.
func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		emp       employee.Employee
		status    string
		updatedAt *time.Time
	)
	err := row.Scan(
		&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email, &emp.Phone,
		&emp.Department, &emp.Position, &status,
		&emp.Salary, &emp.HireDate, &emp.CreatedAt, &updatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	emp.Status, err = employee.ParseStatus(status)
	if err != nil {
		return employee.Employee{}, err
	}
	if updatedAt != nil {
		emp.UpdatedAt = *updatedAt
	}
	return emp, nil
}

func translateEmployeeError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return employee.ErrEmailExists
	}
	return mapStoreError(op, err, employee.ErrEmployeeNotFound)
}

// ListEmployees implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListEmployees(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY created_at, id`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, translateEmployeeError("list employees", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, translateEmployeeError("list employees", err)
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, translateEmployeeError("list employees", err)
	}

	return employees, nil
}

// GetEmployee implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetEmployee(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		return employee.Employee{}, translateEmployeeError("get employee", err)
	}
	return emp, nil
}

// CreateEmployee implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) CreateEmployee(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			id, first_name, last_name, email, phone, department, position, status,
			salary, hire_date, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.ID, newEmployee.FirstName, newEmployee.LastName, newEmployee.Email,
		newEmployee.Phone, newEmployee.Department, newEmployee.Position, string(newEmployee.Status),
		newEmployee.Salary, newEmployee.HireDate, newEmployee.CreatedAt,
	))
	if err != nil {
		return employee.Employee{}, translateEmployeeError("create employee", err)
	}
	return created, nil
}

// UpdateEmployee implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateEmployee(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET first_name = $1, last_name = $2, email = $3, phone = $4, department = $5,
			position = $6, status = $7, salary = $8, hire_date = $9, updated_at = $10
		WHERE id = $11
	`

	tag, err := q.Exec(ctx, query,
		emp.FirstName, emp.LastName, emp.Email, emp.Phone, emp.Department,
		emp.Position, string(emp.Status), emp.Salary, emp.HireDate, nullableTime(emp.UpdatedAt),
		emp.ID,
	)
	if err != nil {
		return translateEmployeeError("update employee", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// DeleteEmployee implements employee.EmployeeRepository.
// The employee is also removed from every project team in the same transaction.
func (e *employeeRepositoryImpl) DeleteEmployee(ctx context.Context, id string) error {
	return WithTransaction(ctx, e.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, e.db)

		tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
		if err != nil {
			return translateEmployeeError("delete employee", err)
		}
		if tag.RowsAffected() == 0 {
			return employee.ErrEmployeeNotFound
		}

		_, err = q.Exec(ctx, `
			UPDATE projects
			SET team_member_ids = array_remove(team_member_ids, $1)
			WHERE $1 = ANY(team_member_ids)
		`, id)
		if err != nil {
			return translateEmployeeError("delete employee", err)
		}
		return nil
	})
}
