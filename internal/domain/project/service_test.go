package project_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"prtracker/internal/domain"
	"prtracker/internal/domain/project"
)

type uowStub struct{}

func (uowStub) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type eventBusFake struct{ events []domain.Event }

func (e *eventBusFake) Publish(ctx context.Context, ev domain.Event) { e.events = append(e.events, ev) }

type projectRepoFake struct {
	byID   map[int64]project.Project
	nextID int64
}

func newProjectRepoFake() *projectRepoFake {
	return &projectRepoFake{byID: map[int64]project.Project{}, nextID: 1}
}

func (r *projectRepoFake) List(ctx context.Context) ([]project.Project, error) {
	var res []project.Project
	for _, p := range r.byID {
		res = append(res, p)
	}
	return res, nil
}

func (r *projectRepoFake) Create(ctx context.Context, name string, description *string) (project.Project, error) {
	p := project.Project{ID: r.nextID, Name: name, Description: description}
	r.byID[p.ID] = p
	r.nextID++
	return p, nil
}

func (r *projectRepoFake) GetByID(ctx context.Context, id int64) (project.Project, error) {
	p, ok := r.byID[id]
	if !ok {
		return project.Project{}, &domain.DomainError{
			Code: domain.ErrorCodeNotFound, Message: "project not found", HTTPStatus: http.StatusNotFound,
		}
	}
	return p, nil
}

func (r *projectRepoFake) Update(ctx context.Context, id int64, name string, description *string) (project.Project, error) {
	p, ok := r.byID[id]
	if !ok {
		return project.Project{}, &domain.DomainError{
			Code: domain.ErrorCodeNotFound, Message: "project not found", HTTPStatus: http.StatusNotFound,
		}
	}
	p.Name = name
	p.Description = description
	r.byID[id] = p
	return p, nil
}

func (r *projectRepoFake) Delete(ctx context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return &domain.DomainError{
			Code: domain.ErrorCodeNotFound, Message: "project not found", HTTPStatus: http.StatusNotFound,
		}
	}
	delete(r.byID, id)
	return nil
}

type refsFake struct{ counts map[int64]int64 }

func (r *refsFake) CountByProject(ctx context.Context, projectID int64) (int64, error) {
	return r.counts[projectID], nil
}

func newService(repo *projectRepoFake, refs *refsFake, events *eventBusFake) project.Service {
	return project.NewService(uowStub{}, repo, refs, events)
}

func TestCreateThenGet(t *testing.T) {
	repo := newProjectRepoFake()
	svc := newService(repo, &refsFake{counts: map[int64]int64{}}, &eventBusFake{})

	desc := "REST API and services"
	created, err := svc.Create(context.Background(), "Backend API", &desc)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Backend API" || got.Description == nil || *got.Description != desc {
		t.Fatalf("unexpected project: %+v", got)
	}
}

func TestDelete_NoReferences(t *testing.T) {
	repo := newProjectRepoFake()
	events := &eventBusFake{}
	svc := newService(repo, &refsFake{counts: map[int64]int64{}}, events)

	p, _ := svc.Create(context.Background(), "DevOps Tools", nil)

	if err := svc.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), p.ID); err == nil {
		t.Fatalf("project should be gone")
	}
}

func TestDelete_BlockedByPullRequests(t *testing.T) {
	repo := newProjectRepoFake()
	svc := newService(repo, &refsFake{counts: map[int64]int64{1: 3}}, &eventBusFake{})

	p, _ := svc.Create(context.Background(), "Frontend Core", nil)

	err := svc.Delete(context.Background(), p.ID)
	var de *domain.DomainError
	if err == nil || !errors.As(err, &de) || de.Code != domain.ErrorCodeProjectInUse {
		t.Fatalf("expected PROJECT_IN_USE, got %v", err)
	}
	if !strings.Contains(de.Message, "3 pull requests") {
		t.Fatalf("error should carry the count, got %q", de.Message)
	}

	// the project must stay intact
	if _, err := svc.Get(context.Background(), p.ID); err != nil {
		t.Fatalf("project should still exist: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := newProjectRepoFake()
	svc := newService(repo, &refsFake{counts: map[int64]int64{}}, &eventBusFake{})

	err := svc.Delete(context.Background(), 42)
	var de *domain.DomainError
	if err == nil || !errors.As(err, &de) || de.Code != domain.ErrorCodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
