package directory

import (
	"context"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/project"
)

// DirectoryService validates and stamps records before they reach the Store,
// and tells open workspaces when something changed.
type DirectoryService interface {
	ListEmployees(ctx context.Context) ([]employee.Employee, error)
	GetEmployee(ctx context.Context, id string) (employee.Employee, error)
	CreateEmployee(ctx context.Context, req employee.EmployeeRequest) (employee.Employee, error)
	UpdateEmployee(ctx context.Context, id string, req employee.EmployeeRequest) (employee.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error

	ListProjects(ctx context.Context) ([]project.Project, error)
	GetProject(ctx context.Context, id string) (project.Project, error)
	CreateProject(ctx context.Context, req project.ProjectRequest) (project.Project, error)
	UpdateProject(ctx context.Context, id string, req project.ProjectRequest) (project.Project, error)
	DeleteProject(ctx context.Context, id string) error

	ListInvoices(ctx context.Context) ([]invoice.Invoice, error)
	GetInvoice(ctx context.Context, id string) (invoice.Invoice, error)
	CreateInvoice(ctx context.Context, req invoice.InvoiceRequest) (invoice.Invoice, error)
	UpdateInvoice(ctx context.Context, id string, req invoice.InvoiceRequest) (invoice.Invoice, error)
	DeleteInvoice(ctx context.Context, id string) error
}

// ChangeNotifier is told after every successful mutation.
type ChangeNotifier interface {
	DirectoryChanged(ctx context.Context, collection string, id string)
}

// Collection names carried by change notifications.
const (
	CollectionEmployees = "employees"
	CollectionProjects  = "projects"
	CollectionInvoices  = "invoices"
)
