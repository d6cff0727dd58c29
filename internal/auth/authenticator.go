package auth

import "context"

// Authenticator verifies a credential presented at login.
// Implementations can swap the shared password for something stronger
// without changing the service layer.
type Authenticator interface {
	// Authenticate returns ErrInvalidCredentials when credential is rejected.
	Authenticate(ctx context.Context, credential string) error
}
