package http

import (
	"net/http"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/workspace-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDashboard returns metrics, recent projects and the activity feed
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.LoadDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
