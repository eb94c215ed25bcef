package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/workspace-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests without a verified access token that carries a usable identity.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.HandleError(w, user.ErrNotLoggedIn)
			return
		}

		if _, err := jwt.IdentityFromContext(r.Context()); err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
