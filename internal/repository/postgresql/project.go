package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const projectColumns = `id, name, description, status, priority, project_manager, project_manager_id,
	budget, spent, completion_percentage, start_date, end_date, team_member_ids, created_at, updated_at`

type projectRepositoryImpl struct {
	db database.Pool
}

func NewProjectRepository(db database.Pool) project.ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

func scanProject(row pgx.Row) (project.Project, error) {
	var (
		p                project.Project
		status, priority string
		completion       int
		managerID        *string
		teamMemberIDs    []string
		updatedAt        *time.Time
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &status, &priority, &p.ProjectManager, &managerID,
		&p.Budget, &p.Spent, &completion, &p.StartDate, &p.EndDate, &teamMemberIDs,
		&p.CreatedAt, &updatedAt,
	)
	if err != nil {
		return project.Project{}, err
	}

	if p.Status, err = project.ParseStatus(status); err != nil {
		return project.Project{}, err
	}
	if p.Priority, err = project.ParsePriority(priority); err != nil {
		return project.Project{}, err
	}
	p.SetCompletionPercentage(completion)
	if managerID != nil {
		p.ProjectManagerID = *managerID
	}
	p.TeamMemberIDs = teamMemberIDs
	if p.TeamMemberIDs == nil {
		p.TeamMemberIDs = []string{}
	}
	if updatedAt != nil {
		p.UpdatedAt = *updatedAt
	}
	return p, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func teamMembers(p project.Project) []string {
	if p.TeamMemberIDs == nil {
		return []string{}
	}
	return p.TeamMemberIDs
}

// ListProjects implements project.ProjectRepository.
func (r *projectRepositoryImpl) ListProjects(ctx context.Context) ([]project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at, id`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, mapStoreError("list projects", err, project.ErrProjectNotFound)
	}
	defer rows.Close()

	projects := make([]project.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, mapStoreError("list projects", err, project.ErrProjectNotFound)
		}
		projects = append(projects, p)
	}

	if err = rows.Err(); err != nil {
		return nil, mapStoreError("list projects", err, project.ErrProjectNotFound)
	}

	return projects, nil
}

// GetProject implements project.ProjectRepository.
func (r *projectRepositoryImpl) GetProject(ctx context.Context, id string) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	p, err := scanProject(q.QueryRow(ctx, query, id))
	if err != nil {
		return project.Project{}, mapStoreError("get project", err, project.ErrProjectNotFound)
	}
	return p, nil
}

// CreateProject implements project.ProjectRepository.
func (r *projectRepositoryImpl) CreateProject(ctx context.Context, newProject project.Project) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO projects (
			id, name, description, status, priority, project_manager, project_manager_id,
			budget, spent, completion_percentage, start_date, end_date, team_member_ids, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + projectColumns

	created, err := scanProject(q.QueryRow(ctx, query,
		newProject.ID, newProject.Name, newProject.Description,
		string(newProject.Status), string(newProject.Priority),
		newProject.ProjectManager, nullableString(newProject.ProjectManagerID),
		newProject.Budget, newProject.Spent, newProject.CompletionPercentage(),
		newProject.StartDate, newProject.EndDate, teamMembers(newProject), newProject.CreatedAt,
	))
	if err != nil {
		return project.Project{}, mapStoreError("create project", err, project.ErrProjectNotFound)
	}
	return created, nil
}

// UpdateProject implements project.ProjectRepository.
func (r *projectRepositoryImpl) UpdateProject(ctx context.Context, p project.Project) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE projects
		SET name = $1, description = $2, status = $3, priority = $4, project_manager = $5,
			project_manager_id = $6, budget = $7, spent = $8, completion_percentage = $9,
			start_date = $10, end_date = $11, team_member_ids = $12, updated_at = $13
		WHERE id = $14
	`

	tag, err := q.Exec(ctx, query,
		p.Name, p.Description, string(p.Status), string(p.Priority), p.ProjectManager,
		nullableString(p.ProjectManagerID), p.Budget, p.Spent, p.CompletionPercentage(),
		p.StartDate, p.EndDate, teamMembers(p), nullableTime(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return mapStoreError("update project", err, project.ErrProjectNotFound)
	}
	if tag.RowsAffected() == 0 {
		return project.ErrProjectNotFound
	}
	return nil
}

// DeleteProject implements project.ProjectRepository.
// Invoices linked to the project keep their history; the link is cleared.
func (r *projectRepositoryImpl) DeleteProject(ctx context.Context, id string) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		if _, err := q.Exec(ctx, `UPDATE invoices SET project_id = NULL WHERE project_id = $1`, id); err != nil {
			return mapStoreError("delete project", err, project.ErrProjectNotFound)
		}

		tag, err := q.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
		if err != nil {
			return mapStoreError("delete project", err, project.ErrProjectNotFound)
		}
		if tag.RowsAffected() == 0 {
			return project.ErrProjectNotFound
		}
		return nil
	})
}
