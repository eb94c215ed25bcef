package workspace

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/directory/mocks"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/workspace"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/clock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type staticIdentity struct {
	identity *user.Identity
}

func (s staticIdentity) CurrentUser(ctx context.Context) (*user.Identity, error) {
	if s.identity == nil {
		return nil, user.ErrNotLoggedIn
	}
	return s.identity, nil
}

func (s staticIdentity) IsLoggedIn(ctx context.Context) bool {
	return s.identity != nil
}

func newTestService(store *mocks.Store, identity *user.Identity, clk clock.Clock) *WorkspaceServiceImpl {
	return NewWorkspaceService(store, staticIdentity{identity}, NewRegistry(testTTL, testLoadTimeout, clk), clk, 3)
}

func fixtures() ([]employee.Employee, []project.Project) {
	employees := []employee.Employee{
		{ID: "e1", FirstName: "Jane", LastName: "Doe", Email: "jane@x.com", Department: "Eng", Status: employee.StatusActive, CreatedAt: base},
		{ID: "e2", FirstName: "John", LastName: "Roe", Email: "john@x.com", Department: "Eng", Status: employee.StatusOnLeave, CreatedAt: base},
	}
	p1 := project.Project{ID: "p1", Name: "Apollo", Status: project.StatusInProgress, TeamMemberIDs: []string{"e1"}, CreatedAt: base}
	p1.SetCompletionPercentage(50)
	p2 := project.Project{ID: "p2", Name: "Gemini", Status: project.StatusPlanning, TeamMemberIDs: []string{"e2"}, CreatedAt: base}
	return employees, []project.Project{p1, p2}
}

func TestLoadWorkspace_BuildsAggregateForIdentity(t *testing.T) {
	clk := clock.NewMockClock(base)
	store := &mocks.Store{}
	employees, projects := fixtures()
	store.On("ListEmployees", mock.Anything).Return(employees, nil).Once()
	store.On("ListProjects", mock.Anything).Return(projects, nil).Once()

	svc := newTestService(store, &user.Identity{UID: "e1", Email: "jane@x.com", Role: user.RoleEmployee}, clk)

	view, err := svc.LoadWorkspace(context.Background(), workspace.SectionProjects, false)
	require.NoError(t, err)
	require.Len(t, view.Projects, 1)
	assert.Equal(t, "p1", view.Projects[0].ID)
	assert.False(t, view.Stale)
	require.NotNil(t, view.CurrentEmployee)
	assert.Nil(t, view.CurrentEmployee.Salary, "employees do not see salaries")

	agg, err := svc.registry.For("e1").Get(context.Background(), false, nil)
	require.NoError(t, err)
	want := &workspace.Aggregate{
		CurrentEmployee:  &employees[0],
		AllEmployees:     employees,
		AssignedProjects: projects[:1],
		ComputedAt:       base,
	}
	if diff := cmp.Diff(want, agg, cmp.AllowUnexported(project.Project{})); diff != "" {
		t.Errorf("aggregate mismatch (-want +got):\n%s", diff)
	}

	store.AssertExpectations(t)
}

func TestLoadWorkspace_SectionSwitchWithinTTLUsesCache(t *testing.T) {
	clk := clock.NewMockClock(base)
	store := &mocks.Store{}
	employees, projects := fixtures()
	store.On("ListEmployees", mock.Anything).Return(employees, nil).Once()
	store.On("ListProjects", mock.Anything).Return(projects, nil).Once()

	svc := newTestService(store, &user.Identity{UID: "e1"}, clk)

	for _, section := range []workspace.Section{workspace.SectionOverview, workspace.SectionTeam, workspace.SectionProfile} {
		_, err := svc.LoadWorkspace(context.Background(), section, false)
		require.NoError(t, err)
		clk.Add(10 * time.Second)
	}

	store.AssertNumberOfCalls(t, "ListEmployees", 1)
	store.AssertNumberOfCalls(t, "ListProjects", 1)
}

func TestLoadWorkspace_FailedRefreshServesStaleView(t *testing.T) {
	clk := clock.NewMockClock(base)
	store := &mocks.Store{}
	employees, projects := fixtures()
	store.On("ListEmployees", mock.Anything).Return(employees, nil).Once()
	store.On("ListProjects", mock.Anything).Return(projects, nil).Once()

	svc := newTestService(store, &user.Identity{UID: "e1"}, clk)
	_, err := svc.LoadWorkspace(context.Background(), workspace.SectionOverview, false)
	require.NoError(t, err)

	store.On("ListEmployees", mock.Anything).Return(nil, apperror.ErrStoreUnavailable).Once()
	store.On("ListProjects", mock.Anything).Return(projects, nil).Maybe()

	view, err := svc.LoadWorkspace(context.Background(), workspace.SectionOverview, true)
	assert.ErrorIs(t, err, apperror.ErrStoreUnavailable)
	require.NotNil(t, view)
	assert.True(t, view.Stale)
	assert.NotEmpty(t, view.Warning)
	assert.Equal(t, 1, view.Stats.Total)
}

func TestLoadWorkspace_FirstLoadFailureReturnsNoView(t *testing.T) {
	store := &mocks.Store{}
	store.On("ListEmployees", mock.Anything).Return(nil, apperror.ErrTimeout)
	store.On("ListProjects", mock.Anything).Return(nil, apperror.ErrTimeout)

	svc := newTestService(store, &user.Identity{UID: "e1"}, clock.NewMockClock(base))

	view, err := svc.LoadWorkspace(context.Background(), workspace.SectionOverview, false)
	assert.Nil(t, view)
	assert.ErrorIs(t, err, apperror.ErrTimeout)
}

func TestLoadWorkspace_RequiresIdentity(t *testing.T) {
	store := &mocks.Store{}
	svc := newTestService(store, nil, clock.NewMockClock(base))

	_, err := svc.LoadWorkspace(context.Background(), workspace.SectionOverview, false)
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
	store.AssertNotCalled(t, "ListEmployees", mock.Anything)
}

func TestInvalidate_ForcesReloadOnNextAccess(t *testing.T) {
	clk := clock.NewMockClock(base)
	store := &mocks.Store{}
	employees, projects := fixtures()
	store.On("ListEmployees", mock.Anything).Return(employees, nil).Twice()
	store.On("ListProjects", mock.Anything).Return(projects, nil).Twice()

	svc := newTestService(store, &user.Identity{UID: "e1"}, clk)

	_, err := svc.LoadWorkspace(context.Background(), workspace.SectionOverview, false)
	require.NoError(t, err)
	svc.Invalidate()
	_, err = svc.LoadWorkspace(context.Background(), workspace.SectionOverview, false)
	require.NoError(t, err)

	store.AssertExpectations(t)
}
