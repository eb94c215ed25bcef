package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// LoadDashboard fetches employees, projects and invoices concurrently and
	// returns metrics, the most recently touched projects and the activity feed
	LoadDashboard(ctx context.Context) (*DashboardResponse, error)
}
