package project

import (
	"context"
	"fmt"
	"net/http"

	"prtracker/internal/domain"
)

type Service interface {
	List(ctx context.Context) ([]Project, error)
	Create(ctx context.Context, name string, description *string) (Project, error)
	Get(ctx context.Context, id int64) (Project, error)
	Update(ctx context.Context, id int64, name string, description *string) (Project, error)
	Delete(ctx context.Context, id int64) error
}

// References reports how many pull requests are assigned to a project. It is
// the delete guard: a project with assigned pull requests must stay.
type References interface {
	CountByProject(ctx context.Context, projectID int64) (int64, error)
}

type service struct {
	uow      domain.UnitOfWork
	projects Repository
	refs     References
	events   domain.EventBus
}

func NewService(uow domain.UnitOfWork, projects Repository, refs References, events domain.EventBus) Service {
	return &service{
		uow:      uow,
		projects: projects,
		refs:     refs,
		events:   events,
	}
}

func (s *service) List(ctx context.Context) ([]Project, error) {
	return s.projects.List(ctx)
}

func (s *service) Create(ctx context.Context, name string, description *string) (Project, error) {
	var res Project

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.projects.Create(ctx, name, description)
		if err != nil {
			return err
		}
		res = p

		if s.events != nil {
			s.events.Publish(ctx, domain.Event{
				Type:    "project.created",
				Payload: map[string]any{"project_id": p.ID, "name": p.Name},
			})
		}
		return nil
	})

	return res, err
}

func (s *service) Get(ctx context.Context, id int64) (Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id int64, name string, description *string) (Project, error) {
	var res Project

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.projects.Update(ctx, id, name, description)
		if err != nil {
			return err
		}
		res = p

		if s.events != nil {
			s.events.Publish(ctx, domain.Event{
				Type:    "project.updated",
				Payload: map[string]any{"project_id": p.ID},
			})
		}
		return nil
	})

	return res, err
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		count, err := s.refs.CountByProject(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return &domain.DomainError{
				Code:       domain.ErrorCodeProjectInUse,
				Message:    fmt.Sprintf("cannot delete project: %d pull requests are assigned to this project, reassign them first", count),
				HTTPStatus: http.StatusConflict,
			}
		}

		if err := s.projects.Delete(ctx, id); err != nil {
			return err
		}

		if s.events != nil {
			s.events.Publish(ctx, domain.Event{
				Type:    "project.deleted",
				Payload: map[string]any{"project_id": id},
			})
		}
		return nil
	})

	return err
}
