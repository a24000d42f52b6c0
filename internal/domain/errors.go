package domain

type ErrorCode string

const (
	ErrorCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrorCodePRExists     ErrorCode = "PR_EXISTS"
	ErrorCodeProjectInUse ErrorCode = "PROJECT_IN_USE"
	ErrorCodeBadURL       ErrorCode = "BAD_URL"
	ErrorCodeNoToken      ErrorCode = "NO_TOKEN"
	ErrorCodeGitHub       ErrorCode = "GITHUB_ERROR"
	ErrorCodeKeychain     ErrorCode = "KEYCHAIN_ERROR"
)

// DomainError carries an error code and the HTTP status the handler layer
// should respond with.
type DomainError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
}

func (e *DomainError) Error() string {
	return e.Message
}
