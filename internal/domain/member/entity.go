package member

// Member is a team member keyed by GitHub username. Rows are created lazily
// the first time an ingested pull request references the username.
type Member struct {
	ID          int64
	Username    string
	AvatarURL   *string
	DisplayName *string
	CreatedAt   int64
}

// Profile is what the GitHub API reports about a pull request author.
type Profile struct {
	Username    string
	AvatarURL   *string
	DisplayName *string
}
