package workspace

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/directory"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/workspace"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/clock"
	"golang.org/x/sync/errgroup"
)

type WorkspaceServiceImpl struct {
	store       directory.Store
	identity    user.IdentityProvider
	registry    *Registry
	clock       clock.Clock
	topProjects int
}

func NewWorkspaceService(
	store directory.Store,
	identity user.IdentityProvider,
	registry *Registry,
	clk clock.Clock,
	topProjects int,
) *WorkspaceServiceImpl {
	return &WorkspaceServiceImpl{
		store:       store,
		identity:    identity,
		registry:    registry,
		clock:       clk,
		topProjects: topProjects,
	}
}

// LoadWorkspace implements workspace.WorkspaceService.
func (s *WorkspaceServiceImpl) LoadWorkspace(ctx context.Context, section workspace.Section, forceRefresh bool) (*workspace.SectionView, error) {
	identity, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, user.ErrNotLoggedIn
	}

	agg, err := s.registry.For(identity.UID).Get(ctx, forceRefresh, s.loader(*identity))
	if agg == nil {
		return nil, err
	}

	view := BuildSectionView(section, agg, s.clock.Now(), s.topProjects, identity.CanManageFinance())
	if err != nil {
		slog.Warn("workspace refresh failed, serving last good aggregate",
			"uid", identity.UID, "computed_at", agg.ComputedAt, "error", err)
		view.Stale = true
		view.Warning = err.Error()
		return view, err
	}
	return view, nil
}

// Invalidate implements workspace.WorkspaceService.
func (s *WorkspaceServiceImpl) Invalidate() {
	s.registry.InvalidateAll()
}

// loader fetches employees and projects concurrently and narrows them to identity.
// Either fetch failing fails the load.
func (s *WorkspaceServiceImpl) loader(identity user.Identity) Loader {
	return func(ctx context.Context) (*workspace.Aggregate, error) {
		var (
			employees []employee.Employee
			projects  []project.Project
		)

		g, gCtx := errgroup.WithContext(ctx)

		g.Go(func() error {
			var err error
			employees, err = s.store.ListEmployees(gCtx)
			return err
		})

		g.Go(func() error {
			var err error
			projects, err = s.store.ListProjects(gCtx)
			return err
		})

		if err := g.Wait(); err != nil {
			return nil, err
		}

		return &workspace.Aggregate{
			CurrentEmployee:  ResolveCurrentEmployee(identity, employees),
			AllEmployees:     employees,
			AssignedProjects: FindAssignedProjects(identity, projects),
			ComputedAt:       s.clock.Now(),
		}, nil
	}
}
