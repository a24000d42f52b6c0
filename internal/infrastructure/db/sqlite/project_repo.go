package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"prtracker/internal/domain"
	"prtracker/internal/domain/project"
)

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	rows, err := query(ctx, r.db,
		`SELECT id, name, description, created_at FROM projects ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []project.Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (r *ProjectRepository) Create(ctx context.Context, name string, description *string) (project.Project, error) {
	now := time.Now().Unix()

	result, err := exec(ctx, r.db,
		`INSERT INTO projects (name, description, created_at) VALUES (?, ?, ?)`,
		name, description, now)
	if err != nil {
		return project.Project{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return project.Project{}, err
	}

	return project.Project{ID: id, Name: name, Description: description, CreatedAt: now}, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (project.Project, error) {
	p, err := scanProject(queryRow(ctx, r.db,
		`SELECT id, name, description, created_at FROM projects WHERE id = ?`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return project.Project{}, projectNotFound()
	}
	if err != nil {
		return project.Project{}, err
	}
	return p, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id int64, name string, description *string) (project.Project, error) {
	result, err := exec(ctx, r.db,
		`UPDATE projects SET name = ?, description = ? WHERE id = ?`,
		name, description, id)
	if err != nil {
		return project.Project{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return project.Project{}, err
	}
	if affected == 0 {
		return project.Project{}, projectNotFound()
	}

	return r.GetByID(ctx, id)
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	result, err := exec(ctx, r.db, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return projectNotFound()
	}
	return nil
}

func scanProject(scan func(dest ...any) error) (project.Project, error) {
	var p project.Project
	var description sql.NullString

	if err := scan(&p.ID, &p.Name, &description, &p.CreatedAt); err != nil {
		return project.Project{}, err
	}
	if description.Valid {
		p.Description = &description.String
	}
	return p, nil
}

func projectNotFound() error {
	return &domain.DomainError{
		Code:       domain.ErrorCodeNotFound,
		Message:    "project not found",
		HTTPStatus: http.StatusNotFound,
	}
}
