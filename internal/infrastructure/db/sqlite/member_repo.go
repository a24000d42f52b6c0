package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"prtracker/internal/domain"
	"prtracker/internal/domain/member"
)

type MemberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) GetByUsername(ctx context.Context, username string) (member.Member, error) {
	var m member.Member
	var avatarURL, displayName sql.NullString

	err := queryRow(ctx, r.db,
		`SELECT id, github_username, avatar_url, display_name, created_at
		   FROM team_members
		  WHERE github_username = ?`,
		username,
	).Scan(&m.ID, &m.Username, &avatarURL, &displayName, &m.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return member.Member{}, &domain.DomainError{
			Code:       domain.ErrorCodeNotFound,
			Message:    "team member not found",
			HTTPStatus: http.StatusNotFound,
		}
	}
	if err != nil {
		return member.Member{}, err
	}

	if avatarURL.Valid {
		m.AvatarURL = &avatarURL.String
	}
	if displayName.Valid {
		m.DisplayName = &displayName.String
	}
	return m, nil
}

func (r *MemberRepository) Insert(ctx context.Context, m member.Member) (member.Member, error) {
	now := time.Now().Unix()

	result, err := exec(ctx, r.db,
		`INSERT INTO team_members (github_username, avatar_url, display_name, created_at)
		 VALUES (?, ?, ?, ?)`,
		m.Username, m.AvatarURL, m.DisplayName, now)
	if err != nil {
		return member.Member{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return member.Member{}, err
	}

	m.ID = id
	m.CreatedAt = now
	return m, nil
}

func (r *MemberRepository) UpdateProfile(ctx context.Context, id int64, avatarURL, displayName *string) error {
	_, err := exec(ctx, r.db,
		`UPDATE team_members SET avatar_url = ?, display_name = ? WHERE id = ?`,
		avatarURL, displayName, id)
	return err
}
