package dto

type Project struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   int64   `json:"created_at"`
}

type PullRequest struct {
	ID            int64   `json:"id"`
	GithubID      int64   `json:"github_id"`
	PRNumber      int64   `json:"pr_number"`
	Title         *string `json:"title"`
	AuthorID      int64   `json:"author_id"`
	ProjectID     *int64  `json:"project_id"`
	LastUpdatedAt int64   `json:"last_updated_at"`
	Status        string  `json:"status"`
	Branch        *string `json:"branch"`
	Score         *int    `json:"score"`
	RepoOwner     *string `json:"repository_owner"`
	RepoName      *string `json:"repository_name"`

	AuthorName        *string `json:"author_name"`
	AuthorAvatar      *string `json:"author_avatar"`
	AuthorDisplayName *string `json:"author_display_name"`
	ProjectName       *string `json:"project_name"`
}

type HistoryEntry struct {
	ID          int64  `json:"id"`
	PRID        int64  `json:"pr_id"`
	Action      string `json:"action"`
	PerformedAt int64  `json:"performed_at"`
}

type GitHubUser struct {
	Login     string  `json:"login"`
	ID        int64   `json:"id"`
	AvatarURL string  `json:"avatar_url"`
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Company   *string `json:"company"`
}

type TokenInfo struct {
	Valid              bool        `json:"valid"`
	User               *GitHubUser `json:"user"`
	Scopes             []string    `json:"scopes"`
	RateLimitRemaining *int        `json:"rate_limit_remaining"`
	RateLimitTotal     *int        `json:"rate_limit_total"`
}
