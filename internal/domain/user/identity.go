package user

import "context"

// IdentityProvider exposes the identity established for the current request.
// It never authenticates; it only reads what the provider already verified.
type IdentityProvider interface {
	// CurrentUser returns the current identity or apperror.ErrUnauthenticated
	CurrentUser(ctx context.Context) (*Identity, error)

	// IsLoggedIn reports whether an identity is present
	IsLoggedIn(ctx context.Context) bool
}
