package project

import "context"

type Repository interface {
	List(ctx context.Context) ([]Project, error)
	Create(ctx context.Context, name string, description *string) (Project, error)
	GetByID(ctx context.Context, id int64) (Project, error)
	Update(ctx context.Context, id int64, name string, description *string) (Project, error)
	Delete(ctx context.Context, id int64) error
}
