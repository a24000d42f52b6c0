package pullrequest

// StatusWaiting is the lifecycle state assigned to a freshly ingested pull
// request. Status is otherwise free text chosen by the user.
const StatusWaiting = "Waiting"

// PullRequest is one tracked pull request. GithubID is GitHub's immutable id
// for the PR, distinct from the local row id and from Number (the human-facing
// number within a repository). The Author*/ProjectName fields are join-enriched
// display data for the GUI.
type PullRequest struct {
	ID            int64
	GithubID      int64
	Number        int64
	Title         *string
	AuthorID      int64
	ProjectID     *int64
	LastUpdatedAt int64
	Status        string
	Branch        *string
	Score         *int
	RepoOwner     *string
	RepoName      *string

	AuthorName        *string
	AuthorAvatar      *string
	AuthorDisplayName *string
	ProjectName       *string
}

// History is one recorded action on a pull request.
type History struct {
	ID          int64
	PRID        int64
	Action      string
	PerformedAt int64
}

const (
	ActionAdded          = "added"
	ActionStatusChanged  = "status_changed"
	ActionScoreChanged   = "score_changed"
	ActionProjectChanged = "project_changed"
)

// RemoteRef locates a pull request on GitHub.
type RemoteRef struct {
	Owner  string
	Repo   string
	Number int64
}

// RemoteAuthor is the author profile reported by the GitHub API.
type RemoteAuthor struct {
	Login       string
	AvatarURL   *string
	DisplayName *string
}

// Remote is the pull request metadata fetched from GitHub during ingestion.
type Remote struct {
	GithubID int64
	Title    string
	Author   RemoteAuthor
	Branch   string
}
