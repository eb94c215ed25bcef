package http

import (
	"net/http"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/workspace"
	"github.com/cmlabs-hris/workspace-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type WorkspaceHandler interface {
	// GetSection returns one workspace section; ?refresh=true bypasses the cache
	GetSection(w http.ResponseWriter, r *http.Request)
}

type workspaceHandlerImpl struct {
	workspaceService workspace.WorkspaceService
}

func NewWorkspaceHandler(workspaceService workspace.WorkspaceService) WorkspaceHandler {
	return &workspaceHandlerImpl{workspaceService: workspaceService}
}

// GetSection handles GET /workspace/{section}
func (h *workspaceHandlerImpl) GetSection(w http.ResponseWriter, r *http.Request) {
	section, err := workspace.ParseSection(chi.URLParam(r, "section"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	forceRefresh := getBoolQueryParam(r, "refresh", false)

	view, err := h.workspaceService.LoadWorkspace(r.Context(), section, forceRefresh)
	if err != nil && view == nil {
		response.HandleError(w, err)
		return
	}

	// A failed refresh still answers with the last good view, marked stale.
	response.Success(w, view)
}
