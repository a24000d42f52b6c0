package pullrequest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"prtracker/internal/domain"
	"prtracker/internal/domain/member"
	"prtracker/internal/domain/project"
)

type Service interface {
	List(ctx context.Context) ([]PullRequest, error)
	GetByGithubID(ctx context.Context, githubID int64) (PullRequest, error)
	Ingest(ctx context.Context, prURL string, projectID int64, token string) (PullRequest, error)
	SetStatus(ctx context.Context, id int64, status string) (PullRequest, error)
	SetScore(ctx context.Context, id int64, score int) error
	AssignProject(ctx context.Context, id, projectID int64) error
	History(ctx context.Context, prID int64) ([]History, error)
}

type service struct {
	uow      domain.UnitOfWork
	prs      Repository
	history  HistoryRepository
	members  member.Service
	projects project.Repository
	gateway  Gateway
	tokens   TokenSource
	events   domain.EventBus
}

func NewService(
	uow domain.UnitOfWork,
	prs Repository,
	history HistoryRepository,
	members member.Service,
	projects project.Repository,
	gateway Gateway,
	tokens TokenSource,
	events domain.EventBus,
) Service {
	return &service{
		uow:      uow,
		prs:      prs,
		history:  history,
		members:  members,
		projects: projects,
		gateway:  gateway,
		tokens:   tokens,
		events:   events,
	}
}

func (s *service) List(ctx context.Context) ([]PullRequest, error) {
	return s.prs.List(ctx)
}

func (s *service) GetByGithubID(ctx context.Context, githubID int64) (PullRequest, error) {
	return s.prs.GetByGithubID(ctx, githubID)
}

// Ingest parses a GitHub PR URL, fetches the PR from the API and records it
// locally with the Waiting status. Duplicates are rejected before any write.
func (s *service) Ingest(ctx context.Context, prURL string, projectID int64, token string) (PullRequest, error) {
	ref, err := ParseRemoteRef(prURL)
	if err != nil {
		return PullRequest{}, err
	}

	if token == "" {
		stored, ok, err := s.tokens.Get(ctx)
		if err != nil {
			return PullRequest{}, err
		}
		if !ok {
			return PullRequest{}, &domain.DomainError{
				Code:       domain.ErrorCodeNoToken,
				Message:    "no GitHub token provided and none stored, save a token first",
				HTTPStatus: http.StatusUnauthorized,
			}
		}
		token = stored
	}

	remote, err := s.gateway.FetchPullRequest(ctx, token, ref)
	if err != nil {
		return PullRequest{}, err
	}

	var res PullRequest

	err = s.uow.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.prs.GetByGithubID(ctx, remote.GithubID)
		if err == nil {
			return duplicateError(existing, ref)
		}
		if !isNotFound(err) {
			return err
		}

		if _, err := s.projects.GetByID(ctx, projectID); err != nil {
			return err
		}

		author, err := s.members.Ensure(ctx, member.Profile{
			Username:    remote.Author.Login,
			AvatarURL:   remote.Author.AvatarURL,
			DisplayName: remote.Author.DisplayName,
		})
		if err != nil {
			return err
		}

		title := remote.Title
		branch := remote.Branch
		created, err := s.prs.Create(ctx, PullRequest{
			GithubID:  remote.GithubID,
			Number:    ref.Number,
			Title:     &title,
			AuthorID:  author.ID,
			ProjectID: &projectID,
			Status:    StatusWaiting,
			Branch:    &branch,
			RepoOwner: &ref.Owner,
			RepoName:  &ref.Repo,
		})
		if err != nil {
			return err
		}

		if err := s.history.Add(ctx, created.ID, ActionAdded); err != nil {
			return err
		}
		res = created

		if s.events != nil {
			s.events.Publish(ctx, domain.Event{
				Type: "pr.ingested",
				Payload: map[string]any{
					"pr_id":     created.ID,
					"github_id": created.GithubID,
					"author":    remote.Author.Login,
				},
			})
		}
		return nil
	})

	return res, err
}

func (s *service) SetStatus(ctx context.Context, id int64, status string) (PullRequest, error) {
	var res PullRequest

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.prs.SetStatus(ctx, id, status); err != nil {
			return err
		}
		if err := s.history.Add(ctx, id, ActionStatusChanged); err != nil {
			return err
		}
		res = PullRequest{ID: id, Status: status}

		if s.events != nil {
			s.events.Publish(ctx, domain.Event{
				Type:    "pr.status_changed",
				Payload: map[string]any{"pr_id": id, "status": status},
			})
		}
		return nil
	})

	return res, err
}

func (s *service) SetScore(ctx context.Context, id int64, score int) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.prs.SetScore(ctx, id, score); err != nil {
			return err
		}
		if err := s.history.Add(ctx, id, ActionScoreChanged); err != nil {
			return err
		}

		if s.events != nil {
			s.events.Publish(ctx, domain.Event{
				Type:    "pr.score_changed",
				Payload: map[string]any{"pr_id": id, "score": score},
			})
		}
		return nil
	})
}

func (s *service) AssignProject(ctx context.Context, id, projectID int64) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.projects.GetByID(ctx, projectID); err != nil {
			return err
		}
		if err := s.prs.SetProject(ctx, id, projectID); err != nil {
			return err
		}
		if err := s.history.Add(ctx, id, ActionProjectChanged); err != nil {
			return err
		}

		if s.events != nil {
			s.events.Publish(ctx, domain.Event{
				Type:    "pr.project_changed",
				Payload: map[string]any{"pr_id": id, "project_id": projectID},
			})
		}
		return nil
	})
}

func (s *service) History(ctx context.Context, prID int64) ([]History, error) {
	return s.history.ListByPR(ctx, prID)
}

func duplicateError(existing PullRequest, ref RemoteRef) error {
	title := "Untitled"
	if existing.Title != nil {
		title = *existing.Title
	}
	projectName := "Unknown Project"
	if existing.ProjectName != nil {
		projectName = *existing.ProjectName
	}
	return &domain.DomainError{
		Code: domain.ErrorCodePRExists,
		Message: fmt.Sprintf("this PR is already added: %s (#%d), project %s, status %s",
			title, ref.Number, projectName, existing.Status),
		HTTPStatus: http.StatusConflict,
	}
}

func isNotFound(err error) bool {
	var de *domain.DomainError
	return errors.As(err, &de) && de.Code == domain.ErrorCodeNotFound
}
