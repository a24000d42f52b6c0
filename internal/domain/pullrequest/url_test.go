package pullrequest_test

import (
	"errors"
	"testing"

	"prtracker/internal/domain"
	"prtracker/internal/domain/pullrequest"
)

func TestParseRemoteRef(t *testing.T) {
	ref, err := pullrequest.ParseRemoteRef("https://github.com/acme/widgets/pull/42")
	if err != nil {
		t.Fatalf("ParseRemoteRef: %v", err)
	}
	if ref.Owner != "acme" || ref.Repo != "widgets" || ref.Number != 42 {
		t.Fatalf("unexpected ref: %+v", ref)
	}
}

func TestParseRemoteRef_WithTrailingPath(t *testing.T) {
	ref, err := pullrequest.ParseRemoteRef("https://github.com/acme/widgets/pull/42/files")
	if err != nil {
		t.Fatalf("ParseRemoteRef: %v", err)
	}
	if ref.Number != 42 {
		t.Fatalf("unexpected number: %d", ref.Number)
	}
}

func TestParseRemoteRef_Malformed(t *testing.T) {
	cases := []string{
		"https://github.com/acme/widgets",
		"https://github.com/acme/widgets/issues/42",
		"https://gitlab.com/acme/widgets/pull/42",
		"not a url",
		"",
	}

	for _, raw := range cases {
		_, err := pullrequest.ParseRemoteRef(raw)
		var de *domain.DomainError
		if err == nil || !errors.As(err, &de) || de.Code != domain.ErrorCodeBadURL {
			t.Fatalf("expected BAD_URL for %q, got %v", raw, err)
		}
	}
}
