package pullrequest

import "context"

type Repository interface {
	List(ctx context.Context) ([]PullRequest, error)
	GetByGithubID(ctx context.Context, githubID int64) (PullRequest, error)
	Create(ctx context.Context, pr PullRequest) (PullRequest, error)
	SetStatus(ctx context.Context, id int64, status string) error
	SetScore(ctx context.Context, id int64, score int) error
	SetProject(ctx context.Context, id int64, projectID int64) error
	CountByProject(ctx context.Context, projectID int64) (int64, error)
}

type HistoryRepository interface {
	Add(ctx context.Context, prID int64, action string) error
	ListByPR(ctx context.Context, prID int64) ([]History, error)
}

// Gateway fetches pull request metadata from GitHub.
type Gateway interface {
	FetchPullRequest(ctx context.Context, token string, ref RemoteRef) (Remote, error)
}

// TokenSource supplies the stored GitHub token when the caller did not pass
// one. Absence is reported via the bool, not an error.
type TokenSource interface {
	Get(ctx context.Context) (string, bool, error)
}
