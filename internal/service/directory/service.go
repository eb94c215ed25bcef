package directory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/directory"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/clock"
	"github.com/google/uuid"
)

type DirectoryServiceImpl struct {
	store    directory.Store
	notifier directory.ChangeNotifier
	clock    clock.Clock
}

func NewDirectoryService(
	store directory.Store,
	notifier directory.ChangeNotifier,
	clk clock.Clock,
) directory.DirectoryService {
	return &DirectoryServiceImpl{
		store:    store,
		notifier: notifier,
		clock:    clk,
	}
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}

func (s *DirectoryServiceImpl) changed(ctx context.Context, collection, id string) {
	if s.notifier == nil {
		return
	}
	s.notifier.DirectoryChanged(ctx, collection, id)
}

// ListEmployees implements directory.DirectoryService.
func (s *DirectoryServiceImpl) ListEmployees(ctx context.Context) ([]employee.Employee, error) {
	return s.store.ListEmployees(ctx)
}

// GetEmployee implements directory.DirectoryService.
func (s *DirectoryServiceImpl) GetEmployee(ctx context.Context, id string) (employee.Employee, error) {
	return s.store.GetEmployee(ctx, id)
}

// CreateEmployee implements directory.DirectoryService.
func (s *DirectoryServiceImpl) CreateEmployee(ctx context.Context, req employee.EmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	id, err := newID()
	if err != nil {
		return employee.Employee{}, err
	}
	newEmployee := req.ToEmployee()
	newEmployee.ID = id
	newEmployee.CreatedAt = s.clock.Now()

	created, err := s.store.CreateEmployee(ctx, newEmployee)
	if err != nil {
		slog.Error("failed to create employee", "email", newEmployee.Email, "error", err)
		return employee.Employee{}, err
	}

	s.changed(ctx, directory.CollectionEmployees, created.ID)
	return created, nil
}

// UpdateEmployee implements directory.DirectoryService.
func (s *DirectoryServiceImpl) UpdateEmployee(ctx context.Context, id string, req employee.EmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	existing, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}

	updated := req.ToEmployee()
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = s.clock.Now()

	if err := s.store.UpdateEmployee(ctx, updated); err != nil {
		slog.Error("failed to update employee", "id", id, "error", err)
		return employee.Employee{}, err
	}

	s.changed(ctx, directory.CollectionEmployees, id)
	return updated, nil
}

// DeleteEmployee implements directory.DirectoryService.
// The store also removes the employee from every project team.
func (s *DirectoryServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if err := s.store.DeleteEmployee(ctx, id); err != nil {
		return err
	}
	s.changed(ctx, directory.CollectionEmployees, id)
	return nil
}

// ListProjects implements directory.DirectoryService.
func (s *DirectoryServiceImpl) ListProjects(ctx context.Context) ([]project.Project, error) {
	return s.store.ListProjects(ctx)
}

// GetProject implements directory.DirectoryService.
func (s *DirectoryServiceImpl) GetProject(ctx context.Context, id string) (project.Project, error) {
	return s.store.GetProject(ctx, id)
}

// CreateProject implements directory.DirectoryService.
func (s *DirectoryServiceImpl) CreateProject(ctx context.Context, req project.ProjectRequest) (project.Project, error) {
	if err := req.Validate(); err != nil {
		return project.Project{}, err
	}

	id, err := newID()
	if err != nil {
		return project.Project{}, err
	}
	newProject := req.ToProject()
	newProject.ID = id
	newProject.CreatedAt = s.clock.Now()

	created, err := s.store.CreateProject(ctx, newProject)
	if err != nil {
		slog.Error("failed to create project", "name", newProject.Name, "error", err)
		return project.Project{}, err
	}

	s.changed(ctx, directory.CollectionProjects, created.ID)
	return created, nil
}

// UpdateProject implements directory.DirectoryService.
func (s *DirectoryServiceImpl) UpdateProject(ctx context.Context, id string, req project.ProjectRequest) (project.Project, error) {
	if err := req.Validate(); err != nil {
		return project.Project{}, err
	}

	existing, err := s.store.GetProject(ctx, id)
	if err != nil {
		return project.Project{}, err
	}

	updated := req.ToProject()
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = s.clock.Now()

	if err := s.store.UpdateProject(ctx, updated); err != nil {
		slog.Error("failed to update project", "id", id, "error", err)
		return project.Project{}, err
	}

	s.changed(ctx, directory.CollectionProjects, id)
	return updated, nil
}

// DeleteProject implements directory.DirectoryService.
// Invoices billed to the project are kept and unlinked.
func (s *DirectoryServiceImpl) DeleteProject(ctx context.Context, id string) error {
	if err := s.store.DeleteProject(ctx, id); err != nil {
		return err
	}
	s.changed(ctx, directory.CollectionProjects, id)
	return nil
}

// ListInvoices implements directory.DirectoryService.
func (s *DirectoryServiceImpl) ListInvoices(ctx context.Context) ([]invoice.Invoice, error) {
	return s.store.ListInvoices(ctx)
}

// GetInvoice implements directory.DirectoryService.
func (s *DirectoryServiceImpl) GetInvoice(ctx context.Context, id string) (invoice.Invoice, error) {
	return s.store.GetInvoice(ctx, id)
}

// CreateInvoice implements directory.DirectoryService.
func (s *DirectoryServiceImpl) CreateInvoice(ctx context.Context, req invoice.InvoiceRequest) (invoice.Invoice, error) {
	if err := req.Validate(); err != nil {
		return invoice.Invoice{}, err
	}
	if err := s.checkProjectExists(ctx, req.ProjectID); err != nil {
		return invoice.Invoice{}, err
	}

	id, err := newID()
	if err != nil {
		return invoice.Invoice{}, err
	}
	newInvoice := req.ToInvoice()
	newInvoice.ID = id
	if newInvoice.IssuedAt.IsZero() {
		newInvoice.IssuedAt = s.clock.Now()
	}

	created, err := s.store.CreateInvoice(ctx, newInvoice)
	if err != nil {
		slog.Error("failed to create invoice", "client", newInvoice.Client, "error", err)
		return invoice.Invoice{}, err
	}

	s.changed(ctx, directory.CollectionInvoices, created.ID)
	return created, nil
}

// UpdateInvoice implements directory.DirectoryService.
// A request without IssuedAt keeps the stored issue time.
func (s *DirectoryServiceImpl) UpdateInvoice(ctx context.Context, id string, req invoice.InvoiceRequest) (invoice.Invoice, error) {
	if err := req.Validate(); err != nil {
		return invoice.Invoice{}, err
	}

	existing, err := s.store.GetInvoice(ctx, id)
	if err != nil {
		return invoice.Invoice{}, err
	}
	if err := s.checkProjectExists(ctx, req.ProjectID); err != nil {
		return invoice.Invoice{}, err
	}

	updated := req.ToInvoice()
	updated.ID = existing.ID
	if updated.IssuedAt.IsZero() {
		updated.IssuedAt = existing.IssuedAt
	}

	if err := s.store.UpdateInvoice(ctx, updated); err != nil {
		slog.Error("failed to update invoice", "id", id, "error", err)
		return invoice.Invoice{}, err
	}

	s.changed(ctx, directory.CollectionInvoices, id)
	return updated, nil
}

// DeleteInvoice implements directory.DirectoryService.
func (s *DirectoryServiceImpl) DeleteInvoice(ctx context.Context, id string) error {
	if err := s.store.DeleteInvoice(ctx, id); err != nil {
		return err
	}
	s.changed(ctx, directory.CollectionInvoices, id)
	return nil
}

// checkProjectExists rejects invoices that reference a project the store does not know.
func (s *DirectoryServiceImpl) checkProjectExists(ctx context.Context, projectID *string) error {
	if projectID == nil {
		return nil
	}
	_, err := s.store.GetProject(ctx, *projectID)
	return err
}
