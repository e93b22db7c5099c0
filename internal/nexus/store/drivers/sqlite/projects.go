package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pixelforge/nexus/internal/nexus/domain"
)

type projectsRepo struct {
	q querier
}

const projectColumns = `id, name, description, status, deadline,
	project_lead_id, created_at, updated_at`

func scanProject(scan func(dest ...any) error) (domain.Project, error) {
	var (
		p    domain.Project
		lead sql.NullString
	)
	err := scan(
		&p.ID, &p.Name, &p.Description, &p.Status, &p.Deadline,
		&lead, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Project{}, err
	}
	p.ProjectLeadID = mapNullStringPtr(lead)
	return p, nil
}

func (r *projectsRepo) GetProjectByID(ctx context.Context, id string) (domain.Project, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)

	p, err := scanProject(row.Scan)
	if err != nil {
		return domain.Project{}, mapNotFound(err)
	}

	devs, err := r.developerIDs(ctx, p.ID)
	if err != nil {
		return domain.Project{}, err
	}
	p.DeveloperIDs = devs
	return p, nil
}

func (r *projectsRepo) CreateProject(ctx context.Context, p domain.Project) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO projects (id, name, description, status, deadline,
			project_lead_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, string(p.Status), p.Deadline,
		mapOptionalString(p.ProjectLeadID), now, now,
	)
	return mapConstraint(err)
}

func (r *projectsRepo) ListActive(ctx context.Context) ([]domain.Project, error) {
	return r.listProjects(ctx,
		`SELECT `+projectColumns+` FROM projects
		 WHERE status = ? ORDER BY created_at DESC`,
		string(domain.ProjectActive))
}

func (r *projectsRepo) ListActiveByDeveloper(ctx context.Context, userID string) ([]domain.Project, error) {
	return r.listProjects(ctx,
		`SELECT p.id, p.name, p.description, p.status, p.deadline,
			p.project_lead_id, p.created_at, p.updated_at
		 FROM projects p
		 JOIN project_developers pd ON pd.project_id = p.id
		 WHERE pd.user_id = ? AND p.status = ?
		 ORDER BY p.created_at DESC`,
		userID, string(domain.ProjectActive))
}

func (r *projectsRepo) SetStatus(ctx context.Context, projectID string, status domain.ProjectStatus) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE projects SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), projectID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *projectsRepo) AddDeveloper(ctx context.Context, projectID, userID string) error {
	// The composite primary key turns a duplicate assignment into a
	// constraint failure rather than a silent dedupe.
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO project_developers (project_id, user_id, created_at)
		 VALUES (?, ?, ?)`,
		projectID, userID, time.Now().UTC(),
	)
	return mapConstraint(err)
}

func (r *projectsRepo) listProjects(ctx context.Context, query string, args ...any) ([]domain.Project, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range projects {
		devs, err := r.developerIDs(ctx, projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].DeveloperIDs = devs
	}
	return projects, nil
}

func (r *projectsRepo) developerIDs(ctx context.Context, projectID string) ([]string, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT user_id FROM project_developers
		 WHERE project_id = ? ORDER BY created_at`,
		projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
