package directory

import (
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/project"
)

// Store is the directory store: the remote collection of employees, projects and invoices.
// Every call may fail with apperror.ErrStoreUnavailable, ErrNotFound or ErrTimeout.
type Store interface {
	employee.EmployeeRepository
	project.ProjectRepository
	invoice.InvoiceRepository
}
