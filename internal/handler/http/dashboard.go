package http

import (
	"net/http"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/vacay-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetStats returns headcount and request counters for the caller's company
	GetStats(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetStats handles GET /stats
func (h *dashboardHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	result, err := h.dashboardService.GetStats(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
