package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/workspace-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/jwt"
)

// RequireManagingDirector requires the managing director role
func RequireManagingDirector(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := jwt.IdentityFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if !identity.IsManagingDirector() {
			response.HandleError(w, user.ErrManagingDirectorRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireProjectManager requires project manager or managing director role
func RequireProjectManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := jwt.IdentityFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if !identity.CanManageProjects() {
			response.HandleError(w, user.ErrProjectManagerRoleRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
