package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/directory"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/format"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	store       directory.Store
	identity    user.IdentityProvider
	clock       clock.Clock
	topProjects int
	feedSize    int
}

func NewDashboardService(
	store directory.Store,
	identity user.IdentityProvider,
	clk clock.Clock,
	topProjects int,
	feedSize int,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		store:       store,
		identity:    identity,
		clock:       clk,
		topProjects: topProjects,
		feedSize:    feedSize,
	}
}

// LoadDashboard returns combined dashboard data.
// The three collections are fetched in parallel; any failure fails the whole load.
func (s *DashboardServiceImpl) LoadDashboard(ctx context.Context) (*dashboard.DashboardResponse, error) {
	if !s.identity.IsLoggedIn(ctx) {
		return nil, user.ErrNotLoggedIn
	}

	var (
		employees []employee.Employee
		projects  []project.Project
		invoices  []invoice.Invoice
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Employees
	g.Go(func() error {
		var err error
		employees, err = s.store.ListEmployees(gCtx)
		return err
	})

	// 2. Projects
	g.Go(func() error {
		var err error
		projects, err = s.store.ListProjects(gCtx)
		return err
	})

	// 3. Invoices
	g.Go(func() error {
		var err error
		invoices, err = s.store.ListInvoices(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	metrics := ComputeMetrics(projects, employees, invoices)

	top := TopRecentProjects(projects, s.topProjects)
	cards := make([]dashboard.ProjectCard, 0, len(top))
	for i := range top {
		cards = append(cards, toProjectCard(&top[i], now))
	}

	feed := BuildActivityFeed(projects, employees, invoices, s.feedSize)
	items := make([]dashboard.ActivityItem, 0, max(1, len(feed)))
	for _, entry := range feed {
		at := entry.At
		items = append(items, dashboard.ActivityItem{
			Kind:    entry.Kind,
			Message: entry.Message,
			At:      &at,
			When:    format.RelativeTimeLabel(entry.At, now),
		})
	}
	if len(items) == 0 {
		items = append(items, dashboard.ActivityItem{
			Kind:    dashboard.ActivityNone,
			Message: dashboard.NoRecentActivity,
		})
	}

	return &dashboard.DashboardResponse{
		Metrics: dashboard.MetricsResponse{
			ActiveProjectCount:     metrics.ActiveProjectCount,
			EmployeeCount:          metrics.EmployeeCount,
			PendingWorkItems:       metrics.PendingWorkItems,
			RecognizedRevenue:      metrics.RecognizedRevenue,
			RecognizedRevenueLabel: format.Currency(metrics.RecognizedRevenue),
		},
		TopProjects:  cards,
		ActivityFeed: items,
		GeneratedAt:  now,
	}, nil
}

func toProjectCard(p *project.Project, now time.Time) dashboard.ProjectCard {
	var end time.Time
	if p.EndDate != nil {
		end = *p.EndDate
	}
	return dashboard.ProjectCard{
		ID:                   p.ID,
		Name:                 p.Name,
		Status:               string(p.Status),
		Priority:             string(p.Priority),
		ProjectManager:       p.ProjectManager,
		CompletionPercentage: p.CompletionPercentage(),
		ProgressLabel:        format.Percent(p.CompletionPercentage()),
		DueLabel:             format.DueDateLabel(end, now),
		UpdatedLabel:         format.RelativeTimeLabel(p.LastTouched(), now),
		Overdue:              p.IsOverdue(now),
	}
}
