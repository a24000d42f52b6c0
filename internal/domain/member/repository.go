package member

import "context"

type Repository interface {
	GetByUsername(ctx context.Context, username string) (Member, error)
	Insert(ctx context.Context, m Member) (Member, error)
	UpdateProfile(ctx context.Context, id int64, avatarURL, displayName *string) error
}
