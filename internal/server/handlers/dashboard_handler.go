package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/herdtrack/internal/service/dashboard"
)

// DashboardHandler serves the role-specific landing view.
type DashboardHandler struct {
	svc *dashboard.Service
}

// NewDashboardHandler constructs the dashboard HTTP adapter.
func NewDashboardHandler(svc *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Overview renders the dashboard of the signed-in user. Requires RequireUser.
func (h *DashboardHandler) Overview(c *gin.Context) {
	user, _ := currentUser(c)
	c.JSON(http.StatusOK, h.svc.Overview(c.Request.Context(), user))
}
