// Package github talks to the GitHub REST API for token verification and
// pull request ingestion.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	gh "github.com/google/go-github/v62/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"prtracker/internal/domain"
	"prtracker/internal/domain/pullrequest"
	"prtracker/internal/domain/token"
)

type Client struct {
	baseURL *url.URL // overridden in tests
	log     *zap.Logger
}

func NewClient(log *zap.Logger) *Client {
	return &Client{log: log}
}

// api builds a REST client for one token. Tokens arrive per request, so the
// client is rebuilt per call rather than held.
func (c *Client) api(tok string) (*gh.Client, error) {
	waiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("create rate limit waiter: %w", err)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: tok})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   waiter,
			Source: ts,
		},
	}

	client := gh.NewClient(httpClient)
	if c.baseURL != nil {
		client.BaseURL = c.baseURL
	}
	return client, nil
}

// VerifyToken checks the token against the current-user endpoint and captures
// the scope and rate-limit response headers. An HTTP-level rejection yields an
// invalid Info, not an error.
func (c *Client) VerifyToken(ctx context.Context, tok string) (token.Info, error) {
	client, err := c.api(tok)
	if err != nil {
		return token.Info{}, err
	}

	user, resp, err := client.Users.Get(ctx, "")

	var info token.Info
	if resp != nil {
		info.Scopes = parseScopes(resp.Header.Get("X-OAuth-Scopes"))
		remaining, limit := resp.Rate.Remaining, resp.Rate.Limit
		info.RateLimitRemaining = &remaining
		info.RateLimitTotal = &limit
	}

	if err != nil {
		var ghErr *gh.ErrorResponse
		if errors.As(err, &ghErr) {
			c.log.Warn("token verification rejected",
				zap.Int("status", ghErr.Response.StatusCode))
			return info, nil
		}
		return token.Info{}, externalError(http.StatusBadGateway,
			"failed to reach GitHub: "+err.Error())
	}

	info.Valid = true
	info.User = &token.RemoteUser{
		Login:     user.GetLogin(),
		ID:        user.GetID(),
		AvatarURL: user.GetAvatarURL(),
		Name:      user.Name,
		Email:     user.Email,
		Company:   user.Company,
	}

	c.log.Info("token verified",
		zap.String("login", info.User.Login),
		zap.Strings("scopes", info.Scopes))
	return info, nil
}

// FetchPullRequest probes repository access first, then fetches the pull
// request itself, so failures carry guidance specific to what went wrong.
func (c *Client) FetchPullRequest(ctx context.Context, tok string, ref pullrequest.RemoteRef) (pullrequest.Remote, error) {
	client, err := c.api(tok)
	if err != nil {
		return pullrequest.Remote{}, err
	}

	if _, _, err := client.Repositories.Get(ctx, ref.Owner, ref.Repo); err != nil {
		return pullrequest.Remote{}, c.repoAccessError(ref, err)
	}

	pr, _, err := client.PullRequests.Get(ctx, ref.Owner, ref.Repo, int(ref.Number))
	if err != nil {
		return pullrequest.Remote{}, c.fetchError(ref, err)
	}

	remote := pullrequest.Remote{
		GithubID: pr.GetID(),
		Title:    pr.GetTitle(),
		Branch:   pr.GetHead().GetRef(),
	}
	if user := pr.GetUser(); user != nil {
		remote.Author = pullrequest.RemoteAuthor{
			Login:       user.GetLogin(),
			DisplayName: user.Name,
		}
		if avatar := user.GetAvatarURL(); avatar != "" {
			remote.Author.AvatarURL = &avatar
		}
	}

	c.log.Info("pull request fetched",
		zap.String("repo", ref.Owner+"/"+ref.Repo),
		zap.Int64("number", ref.Number),
		zap.String("author", remote.Author.Login))
	return remote, nil
}

func (c *Client) repoAccessError(ref pullrequest.RemoteRef, err error) error {
	status, body := upstream(err)
	switch status {
	case http.StatusUnauthorized:
		return externalError(status, "GitHub token is invalid or expired, update your token in settings")
	case http.StatusForbidden:
		return forbiddenError(status, body)
	default:
		return externalError(statusOrBadGateway(status),
			fmt.Sprintf("cannot access repository %s/%s: %s", ref.Owner, ref.Repo, err.Error()))
	}
}

func (c *Client) fetchError(ref pullrequest.RemoteRef, err error) error {
	status, body := upstream(err)
	switch status {
	case http.StatusNotFound:
		return externalError(status, fmt.Sprintf(
			"PR #%d not found in %s/%s: check the URL and make sure your token has 'Pull requests' read access to this repository",
			ref.Number, ref.Owner, ref.Repo))
	case http.StatusUnauthorized:
		return externalError(status, "GitHub token is invalid or expired, update your token in settings")
	case http.StatusForbidden:
		return forbiddenError(status, body)
	default:
		return externalError(statusOrBadGateway(status),
			fmt.Sprintf("GitHub API error fetching PR #%d from %s/%s: %s", ref.Number, ref.Owner, ref.Repo, err.Error()))
	}
}

func forbiddenError(status int, body string) error {
	if strings.Contains(body, "personal access token (classic)") {
		return externalError(status,
			"this organization blocks classic tokens, create a fine-grained personal access token instead")
	}
	return externalError(status,
		"access forbidden: for private repositories your GitHub token needs the 'repo' scope")
}

// upstream unpacks the status code and error message from a go-github error.
// A transport-level failure has no response and reports status 0.
func upstream(err error) (int, string) {
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode, ghErr.Message
	}
	return 0, err.Error()
}

func statusOrBadGateway(status int) int {
	if status == 0 {
		return http.StatusBadGateway
	}
	return status
}

func externalError(status int, msg string) error {
	return &domain.DomainError{
		Code:       domain.ErrorCodeGitHub,
		Message:    msg,
		HTTPStatus: status,
	}
}

func parseScopes(header string) []string {
	if header == "" {
		return nil
	}

	parts := strings.Split(header, ",")
	scopes := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			scopes = append(scopes, s)
		}
	}
	return scopes
}
