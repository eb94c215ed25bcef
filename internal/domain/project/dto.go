package project

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ProjectRequest struct {
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	Status               string          `json:"status"`
	Priority             string          `json:"priority"`
	ProjectManager       string          `json:"project_manager"`
	ProjectManagerID     string          `json:"project_manager_id"`
	Budget               decimal.Decimal `json:"budget"`
	Spent                decimal.Decimal `json:"spent"`
	CompletionPercentage int             `json:"completion_percentage"`
	StartDate            *string         `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate              *string         `json:"end_date,omitempty"`   // YYYY-MM-DD
	TeamMemberIDs        []string        `json:"team_member_ids"`
}

func (r *ProjectRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if !validator.IsEmpty(r.Status) {
		if _, err := ParseStatus(r.Status); err != nil {
			errs.Add("status", ErrInvalidStatus.Message)
		}
	}
	if !validator.IsEmpty(r.Priority) {
		if _, err := ParsePriority(r.Priority); err != nil {
			errs.Add("priority", ErrInvalidPriority.Message)
		}
	}
	if r.Budget.IsNegative() || r.Spent.IsNegative() {
		errs.Add("budget", ErrNegativeBudget.Message)
	}

	start, startOK := validator.ParseOptionalDate(r.StartDate)
	if !startOK {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}
	end, endOK := validator.ParseOptionalDate(r.EndDate)
	if !endOK {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}
	if start != nil && end != nil && end.Before(*start) {
		errs.Add("end_date", ErrEndBeforeStart.Message)
	}

	for _, id := range r.TeamMemberIDs {
		if validator.IsEmpty(id) {
			errs.Add("team_member_ids", "team_member_ids must not contain blank ids")
			break
		}
	}

	return errs.Err()
}

// ToProject converts a validated request. Blank status and priority default
// to PLANNING and MEDIUM; the completion percentage is clamped.
func (r *ProjectRequest) ToProject() Project {
	status := StatusPlanning
	if st, err := ParseStatus(r.Status); err == nil {
		status = st
	}
	priority := PriorityMedium
	if pr, err := ParsePriority(r.Priority); err == nil {
		priority = pr
	}
	start, _ := validator.ParseOptionalDate(r.StartDate)
	end, _ := validator.ParseOptionalDate(r.EndDate)

	team := make([]string, 0, len(r.TeamMemberIDs))
	seen := make(map[string]struct{}, len(r.TeamMemberIDs))
	for _, id := range r.TeamMemberIDs {
		id = strings.TrimSpace(id)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		team = append(team, id)
	}

	p := Project{
		Name:             strings.TrimSpace(r.Name),
		Description:      r.Description,
		Status:           status,
		Priority:         priority,
		ProjectManager:   strings.TrimSpace(r.ProjectManager),
		ProjectManagerID: strings.TrimSpace(r.ProjectManagerID),
		Budget:           r.Budget,
		Spent:            r.Spent,
		StartDate:        start,
		EndDate:          end,
		TeamMemberIDs:    team,
	}
	p.SetCompletionPercentage(r.CompletionPercentage)
	return p
}

type ProjectResponse struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	Status               Status          `json:"status"`
	Priority             Priority        `json:"priority"`
	ProjectManager       string          `json:"project_manager"`
	ProjectManagerID     string          `json:"project_manager_id,omitempty"`
	Budget               decimal.Decimal `json:"budget"`
	Spent                decimal.Decimal `json:"spent"`
	CompletionPercentage int             `json:"completion_percentage"`
	StartDate            *string         `json:"start_date,omitempty"`
	EndDate              *string         `json:"end_date,omitempty"`
	TeamMemberIDs        []string        `json:"team_member_ids"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            *time.Time      `json:"updated_at,omitempty"`
}

func ToResponse(p Project) ProjectResponse {
	resp := ProjectResponse{
		ID:                   p.ID,
		Name:                 p.Name,
		Description:          p.Description,
		Status:               p.Status,
		Priority:             p.Priority,
		ProjectManager:       p.ProjectManager,
		ProjectManagerID:     p.ProjectManagerID,
		Budget:               p.Budget,
		Spent:                p.Spent,
		CompletionPercentage: p.CompletionPercentage(),
		StartDate:            formatDate(p.StartDate),
		EndDate:              formatDate(p.EndDate),
		TeamMemberIDs:        p.TeamMemberIDs,
		CreatedAt:            p.CreatedAt,
	}
	if resp.TeamMemberIDs == nil {
		resp.TeamMemberIDs = []string{}
	}
	if !p.UpdatedAt.IsZero() {
		u := p.UpdatedAt
		resp.UpdatedAt = &u
	}
	return resp
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
