package employee

import "context"

// EmployeeRepository is the employee part of the directory store.
type EmployeeRepository interface {
	ListEmployees(ctx context.Context) ([]Employee, error)
	GetEmployee(ctx context.Context, id string) (Employee, error)
	CreateEmployee(ctx context.Context, newEmployee Employee) (Employee, error)
	UpdateEmployee(ctx context.Context, emp Employee) error
	DeleteEmployee(ctx context.Context, id string) error
}
