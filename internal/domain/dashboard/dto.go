package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

// ========== METRICS ==========

// Metrics are the headline counters of the dashboard
type Metrics struct {
	ActiveProjectCount int
	EmployeeCount      int
	PendingWorkItems   int // coarse remaining-work units, see PendingUnits
	RecognizedRevenue  decimal.Decimal
}

// MetricsResponse is Metrics plus rendered labels
type MetricsResponse struct {
	ActiveProjectCount     int             `json:"active_project_count"`
	EmployeeCount          int             `json:"employee_count"`
	PendingWorkItems       int             `json:"pending_work_items"`
	RecognizedRevenue      decimal.Decimal `json:"recognized_revenue"`
	RecognizedRevenueLabel string          `json:"recognized_revenue_label"`
}

// ========== ACTIVITY FEED ==========

type ActivityKind string

const (
	ActivityProject  ActivityKind = "project"
	ActivityEmployee ActivityKind = "employee"
	ActivityInvoice  ActivityKind = "invoice"
	ActivityNone     ActivityKind = "none"
)

// NoRecentActivity is shown as the single entry of an empty feed
const NoRecentActivity = "No recent activity"

// ActivityEntry is one line of the merged activity feed
type ActivityEntry struct {
	Kind    ActivityKind
	Message string
	At      time.Time
}

// ActivityItem is an ActivityEntry rendered for display
type ActivityItem struct {
	Kind    ActivityKind `json:"kind"`
	Message string       `json:"message"`
	At      *time.Time   `json:"at,omitempty"`
	When    string       `json:"when,omitempty"` // e.g. "5 minutes ago"
}

// ========== PROJECT CARDS ==========

// ProjectCard is an overview card for a recently touched project
type ProjectCard struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Status               string `json:"status"`
	Priority             string `json:"priority"`
	ProjectManager       string `json:"project_manager"`
	CompletionPercentage int    `json:"completion_percentage"`
	ProgressLabel        string `json:"progress_label"` // e.g. "45%"
	DueLabel             string `json:"due_label"`      // e.g. "Due in 3 days"
	UpdatedLabel         string `json:"updated_label"`  // e.g. "2 hours ago"
	Overdue              bool   `json:"overdue"`
}

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the combined response for the dashboard endpoint
type DashboardResponse struct {
	Metrics      MetricsResponse `json:"metrics"`
	TopProjects  []ProjectCard   `json:"top_projects"`
	ActivityFeed []ActivityItem  `json:"activity_feed"` // never empty
	GeneratedAt  time.Time       `json:"generated_at"`
}
