package token

// RemoteUser is the GitHub account a token authenticates as.
type RemoteUser struct {
	Login     string
	ID        int64
	AvatarURL string
	Name      *string
	Email     *string
	Company   *string
}

// Info is the result of verifying a token against the GitHub API, including
// the rate-limit and scope metadata taken from the response headers.
type Info struct {
	Valid              bool
	User               *RemoteUser
	Scopes             []string
	RateLimitRemaining *int
	RateLimitTotal     *int
}
