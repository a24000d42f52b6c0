package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"prtracker/internal/domain"
	"prtracker/internal/domain/pullrequest"
)

// prSelect is the join-enriched projection the GUI works with.
const prSelect = `
	SELECT
		pr.id, pr.github_id, pr.pr_number, pr.title, pr.author_id,
		pr.project_id, pr.last_updated_at, pr.status, pr.branch, pr.score,
		pr.repository_owner, pr.repository_name,
		tm.github_username AS author_name,
		tm.avatar_url AS author_avatar,
		tm.display_name AS author_display_name,
		p.name AS project_name
	FROM pull_requests pr
	LEFT JOIN team_members tm ON pr.author_id = tm.id
	LEFT JOIN projects p ON pr.project_id = p.id`

type PRRepository struct {
	db *sql.DB
}

func NewPRRepository(db *sql.DB) *PRRepository {
	return &PRRepository{db: db}
}

func (r *PRRepository) List(ctx context.Context) ([]pullrequest.PullRequest, error) {
	rows, err := query(ctx, r.db, prSelect+` ORDER BY pr.last_updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []pullrequest.PullRequest
	for rows.Next() {
		p, err := scanPR(rows.Scan)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (r *PRRepository) GetByGithubID(ctx context.Context, githubID int64) (pullrequest.PullRequest, error) {
	p, err := scanPR(queryRow(ctx, r.db, prSelect+` WHERE pr.github_id = ?`, githubID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return pullrequest.PullRequest{}, prNotFound()
	}
	if err != nil {
		return pullrequest.PullRequest{}, err
	}
	return p, nil
}

func (r *PRRepository) Create(ctx context.Context, pr pullrequest.PullRequest) (pullrequest.PullRequest, error) {
	now := time.Now().Unix()

	result, err := exec(ctx, r.db,
		`INSERT INTO pull_requests
			(github_id, pr_number, title, author_id, project_id, branch, status,
			 repository_owner, repository_name, last_updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		pr.GithubID, pr.Number, pr.Title, pr.AuthorID, pr.ProjectID,
		pr.Branch, pr.Status, pr.RepoOwner, pr.RepoName, now)
	if err != nil {
		return pullrequest.PullRequest{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return pullrequest.PullRequest{}, err
	}

	created, err := scanPR(queryRow(ctx, r.db, prSelect+` WHERE pr.id = ?`, id).Scan)
	if err != nil {
		return pullrequest.PullRequest{}, err
	}
	return created, nil
}

func (r *PRRepository) SetStatus(ctx context.Context, id int64, status string) error {
	return r.pointUpdate(ctx, `UPDATE pull_requests SET status = ? WHERE id = ?`, status, id)
}

func (r *PRRepository) SetScore(ctx context.Context, id int64, score int) error {
	return r.pointUpdate(ctx, `UPDATE pull_requests SET score = ? WHERE id = ?`, score, id)
}

func (r *PRRepository) SetProject(ctx context.Context, id int64, projectID int64) error {
	return r.pointUpdate(ctx, `UPDATE pull_requests SET project_id = ? WHERE id = ?`, projectID, id)
}

func (r *PRRepository) pointUpdate(ctx context.Context, q string, value any, id int64) error {
	result, err := exec(ctx, r.db, q, value, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return prNotFound()
	}
	return nil
}

func (r *PRRepository) CountByProject(ctx context.Context, projectID int64) (int64, error) {
	var count int64
	err := queryRow(ctx, r.db,
		`SELECT COUNT(*) FROM pull_requests WHERE project_id = ?`, projectID,
	).Scan(&count)
	return count, err
}

func scanPR(scan func(dest ...any) error) (pullrequest.PullRequest, error) {
	var p pullrequest.PullRequest
	var title, branch, repoOwner, repoName sql.NullString
	var authorName, authorAvatar, authorDisplayName, projectName sql.NullString
	var projectID sql.NullInt64
	var score sql.NullInt64

	err := scan(
		&p.ID, &p.GithubID, &p.Number, &title, &p.AuthorID,
		&projectID, &p.LastUpdatedAt, &p.Status, &branch, &score,
		&repoOwner, &repoName,
		&authorName, &authorAvatar, &authorDisplayName, &projectName,
	)
	if err != nil {
		return pullrequest.PullRequest{}, err
	}

	if title.Valid {
		p.Title = &title.String
	}
	if projectID.Valid {
		p.ProjectID = &projectID.Int64
	}
	if branch.Valid {
		p.Branch = &branch.String
	}
	if score.Valid {
		v := int(score.Int64)
		p.Score = &v
	}
	if repoOwner.Valid {
		p.RepoOwner = &repoOwner.String
	}
	if repoName.Valid {
		p.RepoName = &repoName.String
	}
	if authorName.Valid {
		p.AuthorName = &authorName.String
	}
	if authorAvatar.Valid {
		p.AuthorAvatar = &authorAvatar.String
	}
	if authorDisplayName.Valid {
		p.AuthorDisplayName = &authorDisplayName.String
	}
	if projectName.Valid {
		p.ProjectName = &projectName.String
	}
	return p, nil
}

func prNotFound() error {
	return &domain.DomainError{
		Code:       domain.ErrorCodeNotFound,
		Message:    "pull request not found",
		HTTPStatus: http.StatusNotFound,
	}
}
