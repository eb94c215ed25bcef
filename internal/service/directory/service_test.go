package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/directory"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/directory/mocks"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 5, 14, 9, 30, 0, 0, time.UTC)

func setup(t *testing.T) (*DirectoryServiceImpl, *mocks.Store, *mocks.ChangeNotifier) {
	t.Helper()
	store := new(mocks.Store)
	notifier := new(mocks.ChangeNotifier)
	t.Cleanup(func() {
		store.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})
	svc := NewDirectoryService(store, notifier, clock.NewMockClock(now)).(*DirectoryServiceImpl)
	return svc, store, notifier
}

func isV7(id string) bool {
	parsed, err := uuid.Parse(id)
	return err == nil && parsed.Version() == 7
}

func employeeRequest() employee.EmployeeRequest {
	return employee.EmployeeRequest{
		FirstName:  "Grace",
		LastName:   "Hopper",
		Email:      "grace@example.com",
		Department: "Engineering",
		Salary:     decimal.NewFromInt(7000),
	}
}

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and creation time", func(t *testing.T) {
		svc, store, notifier := setup(t)

		store.On("CreateEmployee", ctx, mock.MatchedBy(func(e employee.Employee) bool {
			return isV7(e.ID) && e.CreatedAt.Equal(now) && e.UpdatedAt.IsZero() && e.Status == employee.StatusActive
		})).Return(employee.Employee{ID: "emp-1", Email: "grace@example.com"}, nil).Once()
		notifier.On("DirectoryChanged", ctx, directory.CollectionEmployees, "emp-1").Once()

		created, err := svc.CreateEmployee(ctx, employeeRequest())
		require.NoError(t, err)
		assert.Equal(t, "emp-1", created.ID)
	})

	t.Run("validation errors never reach the store", func(t *testing.T) {
		svc, _, _ := setup(t)

		req := employeeRequest()
		req.Email = "nope"
		_, err := svc.CreateEmployee(ctx, req)

		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Contains(t, verrs.ToMap(), "email")
	})

	t.Run("duplicate email is a conflict and does not notify", func(t *testing.T) {
		svc, store, _ := setup(t)

		store.On("CreateEmployee", ctx, mock.Anything).Return(employee.Employee{}, employee.ErrEmailExists).Once()

		_, err := svc.CreateEmployee(ctx, employeeRequest())
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})
}

func TestUpdateEmployee(t *testing.T) {
	ctx := context.Background()
	created := now.Add(-48 * time.Hour)

	t.Run("keeps creation time and stamps update time", func(t *testing.T) {
		svc, store, notifier := setup(t)

		store.On("GetEmployee", ctx, "emp-1").Return(employee.Employee{ID: "emp-1", CreatedAt: created}, nil).Once()
		store.On("UpdateEmployee", ctx, mock.MatchedBy(func(e employee.Employee) bool {
			return e.ID == "emp-1" && e.CreatedAt.Equal(created) && e.UpdatedAt.Equal(now)
		})).Return(nil).Once()
		notifier.On("DirectoryChanged", ctx, directory.CollectionEmployees, "emp-1").Once()

		updated, err := svc.UpdateEmployee(ctx, "emp-1", employeeRequest())
		require.NoError(t, err)
		assert.Equal(t, "Grace Hopper", updated.FullName())
		assert.Equal(t, now, updated.LastTouched())
	})

	t.Run("missing employee", func(t *testing.T) {
		svc, store, _ := setup(t)

		store.On("GetEmployee", ctx, "ghost").Return(employee.Employee{}, employee.ErrEmployeeNotFound).Once()

		_, err := svc.UpdateEmployee(ctx, "ghost", employeeRequest())
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		store.AssertNotCalled(t, "UpdateEmployee", mock.Anything, mock.Anything)
	})
}

func TestDeleteEmployee(t *testing.T) {
	ctx := context.Background()

	svc, store, notifier := setup(t)
	store.On("DeleteEmployee", ctx, "emp-1").Return(nil).Once()
	notifier.On("DirectoryChanged", ctx, directory.CollectionEmployees, "emp-1").Once()
	require.NoError(t, svc.DeleteEmployee(ctx, "emp-1"))

	svc, store, _ = setup(t)
	store.On("DeleteEmployee", ctx, "emp-2").Return(apperror.ErrStoreUnavailable).Once()
	assert.ErrorIs(t, svc.DeleteEmployee(ctx, "emp-2"), apperror.ErrStoreUnavailable)
}

func TestCreateProject_DefaultsAndClamp(t *testing.T) {
	ctx := context.Background()
	svc, store, notifier := setup(t)

	store.On("CreateProject", ctx, mock.MatchedBy(func(p project.Project) bool {
		return isV7(p.ID) &&
			p.Status == project.StatusPlanning &&
			p.Priority == project.PriorityMedium &&
			p.CompletionPercentage() == 0 &&
			p.CreatedAt.Equal(now)
	})).Return(project.Project{ID: "prj-1"}, nil).Once()
	notifier.On("DirectoryChanged", ctx, directory.CollectionProjects, "prj-1").Once()

	_, err := svc.CreateProject(ctx, project.ProjectRequest{Name: "Apollo", CompletionPercentage: -20})
	require.NoError(t, err)
}

func TestUpdateProject_StampsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	svc, store, notifier := setup(t)
	created := now.Add(-time.Hour)

	store.On("GetProject", ctx, "prj-1").Return(project.Project{ID: "prj-1", CreatedAt: created}, nil).Once()
	store.On("UpdateProject", ctx, mock.MatchedBy(func(p project.Project) bool {
		return p.CreatedAt.Equal(created) && p.UpdatedAt.Equal(now) && p.Status == project.StatusInProgress
	})).Return(nil).Once()
	notifier.On("DirectoryChanged", ctx, directory.CollectionProjects, "prj-1").Once()

	updated, err := svc.UpdateProject(ctx, "prj-1", project.ProjectRequest{Name: "Apollo", Status: "IN_PROGRESS", CompletionPercentage: 40})
	require.NoError(t, err)
	assert.Equal(t, 40, updated.CompletionPercentage())
}

func TestDeleteProject(t *testing.T) {
	ctx := context.Background()
	svc, store, notifier := setup(t)

	store.On("DeleteProject", ctx, "prj-1").Return(nil).Once()
	notifier.On("DirectoryChanged", ctx, directory.CollectionProjects, "prj-1").Once()

	require.NoError(t, svc.DeleteProject(ctx, "prj-1"))
}

func TestCreateInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("issue time defaults to now", func(t *testing.T) {
		svc, store, notifier := setup(t)

		store.On("CreateInvoice", ctx, mock.MatchedBy(func(inv invoice.Invoice) bool {
			return isV7(inv.ID) && inv.IssuedAt.Equal(now) && inv.ProjectID == nil
		})).Return(invoice.Invoice{ID: "inv-1"}, nil).Once()
		notifier.On("DirectoryChanged", ctx, directory.CollectionInvoices, "inv-1").Once()

		_, err := svc.CreateInvoice(ctx, invoice.InvoiceRequest{Client: "Acme", Amount: decimal.NewFromInt(100)})
		require.NoError(t, err)
	})

	t.Run("unknown project", func(t *testing.T) {
		svc, store, _ := setup(t)
		pid := "prj-x"

		store.On("GetProject", ctx, pid).Return(project.Project{}, project.ErrProjectNotFound).Once()

		_, err := svc.CreateInvoice(ctx, invoice.InvoiceRequest{Client: "Acme", ProjectID: &pid})
		assert.ErrorIs(t, err, project.ErrProjectNotFound)
		store.AssertNotCalled(t, "CreateInvoice", mock.Anything, mock.Anything)
	})
}

func TestUpdateInvoice_KeepsIssueTime(t *testing.T) {
	ctx := context.Background()
	svc, store, notifier := setup(t)
	issued := now.Add(-72 * time.Hour)

	store.On("GetInvoice", ctx, "inv-1").Return(invoice.Invoice{ID: "inv-1", IssuedAt: issued}, nil).Once()
	store.On("UpdateInvoice", ctx, mock.MatchedBy(func(inv invoice.Invoice) bool {
		return inv.IssuedAt.Equal(issued) && inv.Paid
	})).Return(nil).Once()
	notifier.On("DirectoryChanged", ctx, directory.CollectionInvoices, "inv-1").Once()

	updated, err := svc.UpdateInvoice(ctx, "inv-1", invoice.InvoiceRequest{Client: "Acme", Amount: decimal.NewFromInt(100), Paid: true})
	require.NoError(t, err)
	assert.True(t, updated.IsRecognized())
}

func TestDeleteInvoice(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := setup(t)

	store.On("DeleteInvoice", ctx, "inv-1").Return(invoice.ErrInvoiceNotFound).Once()

	assert.ErrorIs(t, svc.DeleteInvoice(ctx, "inv-1"), apperror.ErrNotFound)
}

func TestReadsPassThrough(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := setup(t)

	store.On("ListEmployees", ctx).Return([]employee.Employee{{ID: "e1"}}, nil).Once()
	store.On("ListProjects", ctx).Return(nil, apperror.ErrTimeout).Once()
	store.On("ListInvoices", ctx).Return([]invoice.Invoice{}, nil).Once()
	store.On("GetInvoice", ctx, "inv-1").Return(invoice.Invoice{ID: "inv-1"}, nil).Once()

	emps, err := svc.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, emps, 1)

	_, err = svc.ListProjects(ctx)
	assert.ErrorIs(t, err, apperror.ErrTimeout)

	invs, err := svc.ListInvoices(ctx)
	require.NoError(t, err)
	assert.Empty(t, invs)

	inv, err := svc.GetInvoice(ctx, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, "inv-1", inv.ID)
}
