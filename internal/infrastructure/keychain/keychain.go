// Package keychain persists the GitHub token in the OS-native secret store.
package keychain

import (
	"errors"
	"net/http"

	"github.com/zalando/go-keyring"

	"prtracker/internal/domain"
)

const (
	service = "PRTracker"
	account = "github_token"
)

type Store struct{}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Save(token string) error {
	if err := keyring.Set(service, account, token); err != nil {
		return keychainError("failed to save token to keychain: " + err.Error())
	}
	return nil
}

// Get returns the stored token. Absence is reported through the bool.
func (s *Store) Get() (string, bool, error) {
	token, err := keyring.Get(service, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, keychainError("failed to read token from keychain: " + err.Error())
	}
	return token, true, nil
}

// Delete removes the stored token. Deleting a missing entry is a no-op.
func (s *Store) Delete() error {
	err := keyring.Delete(service, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	if err != nil {
		return keychainError("failed to delete token from keychain: " + err.Error())
	}
	return nil
}

func keychainError(msg string) error {
	return &domain.DomainError{
		Code:       domain.ErrorCodeKeychain,
		Message:    msg,
		HTTPStatus: http.StatusInternalServerError,
	}
}
