package workspace

import (
	"slices"
	"strings"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/user"
)

// sameText compares trimmed values case-insensitively. Blank never matches.
func sameText(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}

// ResolveCurrentEmployee finds the employee record of identity: same id, same
// email or same full name as the display name. The first match wins.
// A nil result is expected for identities without an employee record.
func ResolveCurrentEmployee(identity user.Identity, employees []employee.Employee) *employee.Employee {
	for i := range employees {
		emp := &employees[i]
		if sameText(emp.ID, identity.UID) ||
			sameText(emp.Email, identity.Email) ||
			sameText(emp.FullName(), identity.DisplayName) {
			found := *emp
			return &found
		}
	}
	return nil
}

// IsAssigned reports whether identity works on p as a team member or as its manager.
// Matching the manager by display name is a fallback for records that predate manager ids.
func IsAssigned(identity user.Identity, p *project.Project) bool {
	return p.HasTeamMember(identity.UID) ||
		sameText(p.ProjectManagerID, identity.UID) ||
		sameText(p.ProjectManager, identity.DisplayName)
}

// FindAssignedProjects returns the projects assigned to identity, most recently
// touched first. Ties keep their order in projects.
func FindAssignedProjects(identity user.Identity, projects []project.Project) []project.Project {
	assigned := make([]project.Project, 0)
	for i := range projects {
		if IsAssigned(identity, &projects[i]) {
			assigned = append(assigned, projects[i])
		}
	}
	SortByLastTouched(assigned)
	return assigned
}

// SortByLastTouched sorts projects in place, newest first, keeping the order of equal elements.
func SortByLastTouched(projects []project.Project) {
	slices.SortStableFunc(projects, func(a, b project.Project) int {
		return b.LastTouched().Compare(a.LastTouched())
	})
}
