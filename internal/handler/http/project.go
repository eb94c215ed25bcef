package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/directory"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/workspace-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ProjectHandler interface {
	ListProjects(w http.ResponseWriter, r *http.Request)
	GetProject(w http.ResponseWriter, r *http.Request)
	CreateProject(w http.ResponseWriter, r *http.Request)
	UpdateProject(w http.ResponseWriter, r *http.Request)
	DeleteProject(w http.ResponseWriter, r *http.Request)
}

type projectHandlerImpl struct {
	directoryService directory.DirectoryService
}

func NewProjectHandler(directoryService directory.DirectoryService) ProjectHandler {
	return &projectHandlerImpl{directoryService: directoryService}
}

// ListProjects implements ProjectHandler
func (h *projectHandlerImpl) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.directoryService.ListProjects(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]project.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		result = append(result, project.ToResponse(p))
	}

	response.SuccessWithMeta(w, result, listMeta(len(result)))
}

// GetProject implements ProjectHandler
func (h *projectHandlerImpl) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Project ID is required", nil)
		return
	}

	p, err := h.directoryService.GetProject(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, project.ToResponse(p))
}

// CreateProject implements ProjectHandler
func (h *projectHandlerImpl) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req project.ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.directoryService.CreateProject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Project created successfully", project.ToResponse(created))
}

// UpdateProject implements ProjectHandler
func (h *projectHandlerImpl) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Project ID is required", nil)
		return
	}

	var req project.ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.directoryService.UpdateProject(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Project updated successfully", project.ToResponse(updated))
}

// DeleteProject implements ProjectHandler
func (h *projectHandlerImpl) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Project ID is required", nil)
		return
	}

	if err := h.directoryService.DeleteProject(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Project deleted successfully", nil)
}
