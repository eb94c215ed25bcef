package http

import (
	"net/http"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/workspace-backend-go/internal/handler/http/response"
)

type MeHandler interface {
	GetMe(w http.ResponseWriter, r *http.Request)
}

type meHandlerImpl struct {
	identity user.IdentityProvider
}

func NewMeHandler(identity user.IdentityProvider) MeHandler {
	return &meHandlerImpl{identity: identity}
}

// GetMe handles GET /me
func (h *meHandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	identity, err := h.identity.CurrentUser(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, user.ToMeResponse(*identity))
}
