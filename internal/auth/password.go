package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid password")

// Ensure PasswordGate implements Authenticator
var _ Authenticator = (*PasswordGate)(nil)

// PasswordGate checks a single shared password. Only the bcrypt hash is
// kept in memory.
type PasswordGate struct {
	hash []byte
}

// NewPasswordGate hashes password for later comparison.
func NewPasswordGate(password string) (*PasswordGate, error) {
	if password == "" {
		return nil, errors.New("password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &PasswordGate{hash: hash}, nil
}

// Authenticate compares credential against the stored hash.
func (g *PasswordGate) Authenticate(_ context.Context, credential string) error {
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(credential)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
