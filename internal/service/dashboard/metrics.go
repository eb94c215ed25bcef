package dashboard

import (
	"slices"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/project"
	"github.com/shopspring/decimal"
)

// ComputeMetrics derives the headline counters. The result does not depend on the order of the inputs.
func ComputeMetrics(projects []project.Project, employees []employee.Employee, invoices []invoice.Invoice) dashboard.Metrics {
	metrics := dashboard.Metrics{
		EmployeeCount:     len(employees),
		PendingWorkItems:  PendingUnits(projects),
		RecognizedRevenue: decimal.Zero,
	}
	for i := range projects {
		if projects[i].IsActive() {
			metrics.ActiveProjectCount++
		}
	}
	for i := range invoices {
		if invoices[i].IsRecognized() {
			metrics.RecognizedRevenue = metrics.RecognizedRevenue.Add(invoices[i].Amount)
		}
	}
	return metrics
}

// PendingUnits sums the remaining work units of every project that is not completed.
func PendingUnits(projects []project.Project) int {
	total := 0
	for i := range projects {
		total += projects[i].RemainingWorkUnits()
	}
	return total
}

// TopRecentProjects returns the n most recently touched projects, without reordering projects itself.
func TopRecentProjects(projects []project.Project, n int) []project.Project {
	sorted := slices.Clone(projects)
	slices.SortStableFunc(sorted, func(a, b project.Project) int {
		return b.LastTouched().Compare(a.LastTouched())
	})
	return sorted[:max(0, min(n, len(sorted)))]
}

// BuildActivityFeed merges one entry per project, employee and invoice, drops entries
// without a usable timestamp, and keeps the n newest. The result may be empty.
func BuildActivityFeed(projects []project.Project, employees []employee.Employee, invoices []invoice.Invoice, n int) []dashboard.ActivityEntry {
	entries := make([]dashboard.ActivityEntry, 0, len(projects)+len(employees)+len(invoices))

	for i := range projects {
		p := &projects[i]
		at := p.CreatedAt
		if at.IsZero() {
			at = p.UpdatedAt
		}
		entries = append(entries, dashboard.ActivityEntry{
			Kind:    dashboard.ActivityProject,
			Message: "Project updated: " + p.Name,
			At:      at,
		})
	}

	for i := range employees {
		emp := &employees[i]
		entries = append(entries, dashboard.ActivityEntry{
			Kind:    dashboard.ActivityEmployee,
			Message: "Employee added: " + emp.FullName(),
			At:      emp.CreatedAt,
		})
	}

	for i := range invoices {
		inv := &invoices[i]
		msg := "Invoice issued: " + inv.ID
		if inv.Paid {
			msg = "Invoice paid: " + inv.ID
		}
		entries = append(entries, dashboard.ActivityEntry{
			Kind:    dashboard.ActivityInvoice,
			Message: msg,
			At:      inv.IssuedAt,
		})
	}

	entries = slices.DeleteFunc(entries, func(e dashboard.ActivityEntry) bool {
		return e.At.UnixMilli() <= 0
	})
	slices.SortStableFunc(entries, func(a, b dashboard.ActivityEntry) int {
		return b.At.Compare(a.At)
	})
	return entries[:max(0, min(n, len(entries)))]
}
