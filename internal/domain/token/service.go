package token

import (
	"context"

	"prtracker/internal/domain"
)

// Store persists the single GitHub token in the OS-native secret store.
// Get reports absence through the bool rather than an error.
type Store interface {
	Save(token string) error
	Get() (string, bool, error)
	Delete() error
}

// Verifier checks a token against the GitHub API.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (Info, error)
}

type Service interface {
	Save(ctx context.Context, token string) error
	Get(ctx context.Context) (string, bool, error)
	Delete(ctx context.Context) error
	Verify(ctx context.Context, token string) (Info, error)
	TestStored(ctx context.Context) (Info, error)
}

type service struct {
	store    Store
	verifier Verifier
	events   domain.EventBus
}

func NewService(store Store, verifier Verifier, events domain.EventBus) Service {
	return &service{
		store:    store,
		verifier: verifier,
		events:   events,
	}
}

func (s *service) Save(ctx context.Context, tok string) error {
	if err := s.store.Save(tok); err != nil {
		return err
	}
	if s.events != nil {
		s.events.Publish(ctx, domain.Event{Type: "token.saved"})
	}
	return nil
}

func (s *service) Get(ctx context.Context) (string, bool, error) {
	return s.store.Get()
}

func (s *service) Delete(ctx context.Context) error {
	if err := s.store.Delete(); err != nil {
		return err
	}
	if s.events != nil {
		s.events.Publish(ctx, domain.Event{Type: "token.deleted"})
	}
	return nil
}

func (s *service) Verify(ctx context.Context, tok string) (Info, error) {
	return s.verifier.VerifyToken(ctx, tok)
}

// TestStored verifies the currently stored token. A missing token is an
// invalid result, not an error.
func (s *service) TestStored(ctx context.Context) (Info, error) {
	tok, ok, err := s.store.Get()
	if err != nil {
		return Info{}, err
	}
	if !ok {
		return Info{Valid: false}, nil
	}
	return s.verifier.VerifyToken(ctx, tok)
}
