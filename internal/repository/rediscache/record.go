package rediscache

import (
	"time"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/project"
	"github.com/shopspring/decimal"
)

// projectRecord is the cached form of a project; completion is not exported on the entity.
type projectRecord struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Description          string           `json:"description"`
	Status               project.Status   `json:"status"`
	Priority             project.Priority `json:"priority"`
	ProjectManager       string           `json:"project_manager"`
	ProjectManagerID     string           `json:"project_manager_id"`
	Budget               decimal.Decimal  `json:"budget"`
	Spent                decimal.Decimal  `json:"spent"`
	CompletionPercentage int              `json:"completion_percentage"`
	StartDate            *time.Time       `json:"start_date,omitempty"`
	EndDate              *time.Time       `json:"end_date,omitempty"`
	TeamMemberIDs        []string         `json:"team_member_ids"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

func toProjectRecords(projects []project.Project) []projectRecord {
	records := make([]projectRecord, 0, len(projects))
	for _, p := range projects {
		records = append(records, projectRecord{
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
			StartDate:            p.StartDate,
			EndDate:              p.EndDate,
			TeamMemberIDs:        p.TeamMemberIDs,
			CreatedAt:            p.CreatedAt,
			UpdatedAt:            p.UpdatedAt,
		})
	}
	return records
}

func fromProjectRecords(records []projectRecord) []project.Project {
	projects := make([]project.Project, 0, len(records))
	for _, r := range records {
		p := project.Project{
			ID:               r.ID,
			Name:             r.Name,
			Description:      r.Description,
			Status:           r.Status,
			Priority:         r.Priority,
			ProjectManager:   r.ProjectManager,
			ProjectManagerID: r.ProjectManagerID,
			Budget:           r.Budget,
			Spent:            r.Spent,
			StartDate:        r.StartDate,
			EndDate:          r.EndDate,
			TeamMemberIDs:    r.TeamMemberIDs,
			CreatedAt:        r.CreatedAt,
			UpdatedAt:        r.UpdatedAt,
		}
		p.SetCompletionPercentage(r.CompletionPercentage)
		projects = append(projects, p)
	}
	return projects
}
