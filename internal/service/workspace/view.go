package workspace

import (
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/workspace"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/format"
)

const dueSoonDays = 7

// ComputeStats counts the assigned projects by state.
func ComputeStats(projects []project.Project, now time.Time) workspace.AssignmentStats {
	stats := workspace.AssignmentStats{Total: len(projects)}
	for i := range projects {
		p := &projects[i]
		switch {
		case p.IsCompleted():
			stats.Completed++
		case p.IsActive():
			stats.Active++
		}

		if p.IsOverdue(now) {
			stats.Overdue++
			continue
		}
		if p.EndDate != nil && !p.IsCompleted() {
			if days := format.CalendarDaysBetween(now, *p.EndDate); days >= 0 && days <= dueSoonDays {
				stats.DueThisWeek++
			}
		}
	}
	return stats
}

func toProjectItem(p *project.Project, now time.Time) workspace.ProjectItem {
	var end time.Time
	if p.EndDate != nil {
		end = *p.EndDate
	}
	return workspace.ProjectItem{
		ID:                   p.ID,
		Name:                 p.Name,
		Status:               string(p.Status),
		Priority:             string(p.Priority),
		ProjectManager:       p.ProjectManager,
		CompletionPercentage: p.CompletionPercentage(),
		ProgressLabel:        format.Percent(p.CompletionPercentage()),
		RemainingUnits:       p.RemainingWorkUnits(),
		Overdue:              p.IsOverdue(now),
		DueLabel:             format.DueDateLabel(end, now),
		UpdatedLabel:         format.RelativeTimeLabel(p.LastTouched(), now),
	}
}

func toProjectItems(projects []project.Project, now time.Time) []workspace.ProjectItem {
	items := make([]workspace.ProjectItem, 0, len(projects))
	for i := range projects {
		items = append(items, toProjectItem(&projects[i], now))
	}
	return items
}

// TeamOf lists the colleagues in the current employee's department, sorted by name.
// Without a resolved employee or department everyone is listed.
func TeamOf(current *employee.Employee, all []employee.Employee) []workspace.TeamMember {
	team := make([]workspace.TeamMember, 0)
	for i := range all {
		emp := &all[i]
		if current != nil {
			if emp.ID == current.ID {
				continue
			}
			if strings.TrimSpace(current.Department) != "" && !sameText(emp.Department, current.Department) {
				continue
			}
		}
		team = append(team, workspace.TeamMember{
			ID:         emp.ID,
			FullName:   emp.FullName(),
			Email:      emp.Email,
			Department: emp.Department,
			Position:   emp.Position,
			Status:     emp.Status,
		})
	}
	slices.SortStableFunc(team, func(a, b workspace.TeamMember) int {
		return strings.Compare(strings.ToLower(a.FullName), strings.ToLower(b.FullName))
	})
	return team
}

// BuildSectionView renders one section of agg. The current employee's salary is
// included only when withSalary is set.
func BuildSectionView(section workspace.Section, agg *workspace.Aggregate, now time.Time, topN int, withSalary bool) *workspace.SectionView {
	view := &workspace.SectionView{
		Section:       section,
		ComputedAt:    agg.ComputedAt,
		ComputedLabel: format.RelativeTimeLabel(agg.ComputedAt, now),
	}
	if agg.CurrentEmployee != nil {
		resp := employee.ToResponse(*agg.CurrentEmployee, withSalary)
		view.CurrentEmployee = &resp
	}

	switch section {
	case workspace.SectionOverview:
		stats := ComputeStats(agg.AssignedProjects, now)
		view.Stats = &stats
		view.Projects = toProjectItems(agg.AssignedProjects[:max(0, min(topN, len(agg.AssignedProjects)))], now)
	case workspace.SectionProjects:
		view.Projects = toProjectItems(agg.AssignedProjects, now)
	case workspace.SectionTeam:
		view.Team = TeamOf(agg.CurrentEmployee, agg.AllEmployees)
	case workspace.SectionProfile:
		// only the current employee
	}
	return view
}
