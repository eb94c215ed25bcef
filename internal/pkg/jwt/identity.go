package jwt

import (
	"context"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

const (
	ClaimUserID = "user_id"
	ClaimEmail  = "email"
	ClaimName   = "name"
	ClaimRole   = "role"
	ClaimType   = "type"

	TokenTypeAccess = "access"
)

// ClaimsIdentity reads the signed-in user from the verified token jwtauth put on the context.
type ClaimsIdentity struct{}

func NewClaimsIdentity() ClaimsIdentity {
	return ClaimsIdentity{}
}

func (ClaimsIdentity) CurrentUser(ctx context.Context) (*user.Identity, error) {
	return IdentityFromContext(ctx)
}

func (ClaimsIdentity) IsLoggedIn(ctx context.Context) bool {
	_, err := IdentityFromContext(ctx)
	return err == nil
}

func IdentityFromContext(ctx context.Context) (*user.Identity, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return nil, user.ErrNotLoggedIn
	}

	if tokenType, _ := claims[ClaimType].(string); tokenType != TokenTypeAccess {
		return nil, user.ErrNotLoggedIn
	}

	uid, _ := claims[ClaimUserID].(string)
	if uid == "" {
		return nil, user.ErrNotLoggedIn
	}

	roleStr, _ := claims[ClaimRole].(string)
	role, err := user.ParseRole(roleStr)
	if err != nil {
		return nil, user.ErrNotLoggedIn
	}

	email, _ := claims[ClaimEmail].(string)
	name, _ := claims[ClaimName].(string)

	return &user.Identity{
		UID:         uid,
		Email:       email,
		DisplayName: name,
		Role:        role,
	}, nil
}
