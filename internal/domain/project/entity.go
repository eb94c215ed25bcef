package project

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Project struct {
	ID          string
	Name        string
	Description string
	Status      Status
	Priority    Priority
	// ProjectManager is the manager's display name. Older records carry only this.
	ProjectManager       string
	ProjectManagerID     string
	Budget               decimal.Decimal
	Spent                decimal.Decimal
	completionPercentage int
	StartDate            *time.Time
	EndDate              *time.Time
	TeamMemberIDs        []string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type Status string

const (
	StatusPlanning   Status = "PLANNING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusOnHold     Status = "ON_HOLD"
	StatusCancelled  Status = "CANCELLED"
)

type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// ParseStatus validates a status string. Unknown values fail with ErrInvalidStatus.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.TrimSpace(s)); st {
	case StatusPlanning, StatusInProgress, StatusCompleted, StatusOnHold, StatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// ParsePriority validates a priority string. Unknown values fail with ErrInvalidPriority.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.TrimSpace(s)); p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
}

// CompletionPercentage is always within [0, 100].
func (p *Project) CompletionPercentage() int {
	return p.completionPercentage
}

// SetCompletionPercentage clamps pct into [0, 100].
func (p *Project) SetCompletionPercentage(pct int) {
	p.completionPercentage = max(0, min(100, pct))
}

// IsActive checks if the project is planned or underway
func (p *Project) IsActive() bool {
	return p.Status == StatusPlanning || p.Status == StatusInProgress
}

// IsCompleted checks if the project is done
func (p *Project) IsCompleted() bool {
	return p.Status == StatusCompleted
}

// IsOverdue reports whether the end date is set, strictly before now, and the project is not completed.
func (p *Project) IsOverdue(now time.Time) bool {
	return p.EndDate != nil && p.EndDate.Before(now) && !p.IsCompleted()
}

// LastTouched returns UpdatedAt when set, CreatedAt otherwise.
func (p *Project) LastTouched() time.Time {
	if !p.UpdatedAt.IsZero() {
		return p.UpdatedAt
	}
	return p.CreatedAt
}

// HasTeamMember compares ids case-insensitively.
func (p *Project) HasTeamMember(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	for _, member := range p.TeamMemberIDs {
		if strings.EqualFold(strings.TrimSpace(member), id) {
			return true
		}
	}
	return false
}

// RemainingWorkUnits counts one unit per 25 points of missing completion,
// partial units rounded up by integer division. Completed projects have none.
func (p *Project) RemainingWorkUnits() int {
	if p.IsCompleted() {
		return 0
	}
	return max(0, (100-p.completionPercentage+24)/25)
}
