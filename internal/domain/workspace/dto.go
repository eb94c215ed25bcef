package workspace

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/apperror"
)

// Aggregate is the computed bundle behind every workspace section.
// It is rebuilt wholesale on refresh and never mutated after construction.
type Aggregate struct {
	CurrentEmployee  *employee.Employee // nil when the identity has no employee record
	AllEmployees     []employee.Employee
	AssignedProjects []project.Project
	ComputedAt       time.Time
}

type Section string

const (
	SectionOverview Section = "overview"
	SectionProjects Section = "projects"
	SectionTeam     Section = "team"
	SectionProfile  Section = "profile"
)

func ParseSection(s string) (Section, error) {
	switch sec := Section(strings.ToLower(strings.TrimSpace(s))); sec {
	case SectionOverview, SectionProjects, SectionTeam, SectionProfile:
		return sec, nil
	default:
		return "", apperror.Wrap(apperror.ErrInvalidInput, fmt.Sprintf("unknown workspace section %q", s), nil)
	}
}

// State of a workspace cache.
type State int

const (
	StateEmpty State = iota
	StateFresh
	StateStale
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "EMPTY"
	case StateFresh:
		return "FRESH"
	case StateStale:
		return "STALE"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// AssignmentStats counts the assigned projects of the current identity
type AssignmentStats struct {
	Total       int `json:"total"`
	Active      int `json:"active"`
	Completed   int `json:"completed"`
	Overdue     int `json:"overdue"`
	DueThisWeek int `json:"due_this_week"` // not overdue, due within 7 days
}

// ProjectItem is an assigned project rendered for a workspace section
type ProjectItem struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Status               string `json:"status"`
	Priority             string `json:"priority"`
	ProjectManager       string `json:"project_manager"`
	CompletionPercentage int    `json:"completion_percentage"`
	ProgressLabel        string `json:"progress_label"`
	RemainingUnits       int    `json:"remaining_units"`
	Overdue              bool   `json:"overdue"`
	DueLabel             string `json:"due_label"`
	UpdatedLabel         string `json:"updated_label"`
}

// TeamMember is a colleague shown in the team section
type TeamMember struct {
	ID         string          `json:"id"`
	FullName   string          `json:"full_name"`
	Email      string          `json:"email"`
	Department string          `json:"department"`
	Position   string          `json:"position"`
	Status     employee.Status `json:"status"`
}

// SectionView is what a workspace section displays
type SectionView struct {
	Section         Section                    `json:"section"`
	ComputedAt      time.Time                  `json:"computed_at"`
	ComputedLabel   string                     `json:"computed_label"`
	Stale           bool                       `json:"stale"`
	Warning         string                     `json:"warning,omitempty"` // set when a refresh failed
	CurrentEmployee *employee.EmployeeResponse `json:"current_employee"`
	Stats           *AssignmentStats           `json:"stats,omitempty"`
	Projects        []ProjectItem              `json:"projects,omitempty"`
	Team            []TeamMember               `json:"team,omitempty"`
}
