// Package storage provides object storage implementations for file uploads.
package storage

import (
	"context"
	"errors"
	"io"

	identityapp "github.com/dentalcalc/backend/internal/application/identity"
)

// StubLogoStorage is a placeholder LogoStorage for development environments
// without an object store. It discards the upload body and returns a
// deterministic URL.
type StubLogoStorage struct {
	// BaseURL is the base URL for generated object URLs.
	// Defaults to "https://storage.example.com" if not set.
	BaseURL string
}

// NewStubLogoStorage creates a new StubLogoStorage
func NewStubLogoStorage() *StubLogoStorage {
	return &StubLogoStorage{
		BaseURL: "https://storage.example.com",
	}
}

// Ensure StubLogoStorage implements LogoStorage
var _ identityapp.LogoStorage = (*StubLogoStorage)(nil)

// Upload discards the body and returns a stub URL for the key
func (s *StubLogoStorage) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	return s.BaseURL + "/" + key, nil
}
