package postgresql

import (
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/directory"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/database"
)

type store struct {
	employee.EmployeeRepository
	project.ProjectRepository
	invoice.InvoiceRepository
}

// NewStore returns the PostgreSQL-backed directory store.
func NewStore(db database.Pool) directory.Store {
	return store{
		EmployeeRepository: NewEmployeeRepository(db),
		ProjectRepository:  NewProjectRepository(db),
		InvoiceRepository:  NewInvoiceRepository(db),
	}
}
