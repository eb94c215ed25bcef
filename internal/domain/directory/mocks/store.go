// Package mocks holds testify mocks of the directory interfaces.
package mocks

import (
	"context"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/project"
	"github.com/stretchr/testify/mock"
)

// Store mocks directory.Store.
type Store struct {
	mock.Mock
}

func (m *Store) ListEmployees(ctx context.Context) ([]employee.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]employee.Employee), args.Error(1)
}

func (m *Store) GetEmployee(ctx context.Context, id string) (employee.Employee, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(employee.Employee), args.Error(1)
}

func (m *Store) CreateEmployee(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	args := m.Called(ctx, newEmployee)
	return args.Get(0).(employee.Employee), args.Error(1)
}

func (m *Store) UpdateEmployee(ctx context.Context, emp employee.Employee) error {
	return m.Called(ctx, emp).Error(0)
}

func (m *Store) DeleteEmployee(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *Store) ListProjects(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]project.Project), args.Error(1)
}

func (m *Store) GetProject(ctx context.Context, id string) (project.Project, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(project.Project), args.Error(1)
}

func (m *Store) CreateProject(ctx context.Context, newProject project.Project) (project.Project, error) {
	args := m.Called(ctx, newProject)
	return args.Get(0).(project.Project), args.Error(1)
}

func (m *Store) UpdateProject(ctx context.Context, p project.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *Store) DeleteProject(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *Store) ListInvoices(ctx context.Context) ([]invoice.Invoice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoice.Invoice), args.Error(1)
}

func (m *Store) GetInvoice(ctx context.Context, id string) (invoice.Invoice, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(invoice.Invoice), args.Error(1)
}

func (m *Store) CreateInvoice(ctx context.Context, newInvoice invoice.Invoice) (invoice.Invoice, error) {
	args := m.Called(ctx, newInvoice)
	return args.Get(0).(invoice.Invoice), args.Error(1)
}

func (m *Store) UpdateInvoice(ctx context.Context, inv invoice.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *Store) DeleteInvoice(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// ChangeNotifier mocks directory.ChangeNotifier.
type ChangeNotifier struct {
	mock.Mock
}

func (m *ChangeNotifier) DirectoryChanged(ctx context.Context, collection string, id string) {
	m.Called(ctx, collection, id)
}
