package pullrequest

import (
	"net/http"
	"regexp"
	"strconv"

	"prtracker/internal/domain"
)

var prURLPattern = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)/pull/(\d+)`)

// ParseRemoteRef extracts owner, repository and PR number from a GitHub pull
// request URL of the form https://github.com/<owner>/<repo>/pull/<number>.
func ParseRemoteRef(rawURL string) (RemoteRef, error) {
	caps := prURLPattern.FindStringSubmatch(rawURL)
	if caps == nil {
		return RemoteRef{}, &domain.DomainError{
			Code:       domain.ErrorCodeBadURL,
			Message:    "invalid GitHub PR URL format, expected: https://github.com/owner/repo/pull/123",
			HTTPStatus: http.StatusBadRequest,
		}
	}

	number, err := strconv.ParseInt(caps[3], 10, 64)
	if err != nil {
		return RemoteRef{}, &domain.DomainError{
			Code:       domain.ErrorCodeBadURL,
			Message:    "invalid PR number in URL",
			HTTPStatus: http.StatusBadRequest,
		}
	}

	return RemoteRef{Owner: caps[1], Repo: caps[2], Number: number}, nil
}
