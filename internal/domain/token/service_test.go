package token_test

import (
	"context"
	"testing"

	"prtracker/internal/domain"
	"prtracker/internal/domain/token"
)

type eventBusFake struct{ events []domain.Event }

func (e *eventBusFake) Publish(ctx context.Context, ev domain.Event) { e.events = append(e.events, ev) }

type storeFake struct {
	value string
	set   bool
}

func (s *storeFake) Save(tok string) error {
	s.value = tok
	s.set = true
	return nil
}

func (s *storeFake) Get() (string, bool, error) {
	if !s.set {
		return "", false, nil
	}
	return s.value, true, nil
}

func (s *storeFake) Delete() error {
	s.value = ""
	s.set = false
	return nil
}

type verifierFake struct {
	info  token.Info
	calls int
}

func (v *verifierFake) VerifyToken(ctx context.Context, tok string) (token.Info, error) {
	v.calls++
	return v.info, nil
}

func TestSaveGetDelete(t *testing.T) {
	store := &storeFake{}
	svc := token.NewService(store, &verifierFake{}, &eventBusFake{})

	if err := svc.Save(context.Background(), "ghp_abc123"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := svc.Get(context.Background())
	if err != nil || !ok || got != "ghp_abc123" {
		t.Fatalf("Get: %q %v %v", got, ok, err)
	}

	if err := svc.Delete(context.Background()); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// absence is not an error
	_, ok, err = svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get after delete: %v", err)
	}
	if ok {
		t.Fatalf("token should be absent after delete")
	}
}

func TestTestStored(t *testing.T) {
	store := &storeFake{}
	verifier := &verifierFake{info: token.Info{Valid: true}}
	svc := token.NewService(store, verifier, &eventBusFake{})

	_ = svc.Save(context.Background(), "ghp_abc123")

	info, err := svc.TestStored(context.Background())
	if err != nil {
		t.Fatalf("TestStored: %v", err)
	}
	if !info.Valid || verifier.calls != 1 {
		t.Fatalf("expected a verified token, got %+v (calls=%d)", info, verifier.calls)
	}
}

func TestTestStored_NoToken(t *testing.T) {
	verifier := &verifierFake{info: token.Info{Valid: true}}
	svc := token.NewService(&storeFake{}, verifier, &eventBusFake{})

	info, err := svc.TestStored(context.Background())
	if err != nil {
		t.Fatalf("TestStored: %v", err)
	}
	if info.Valid {
		t.Fatalf("missing token must not verify as valid")
	}
	if verifier.calls != 0 {
		t.Fatalf("verifier must not be called without a stored token")
	}
}
