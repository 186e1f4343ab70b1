package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/babygenie/service-planner/internal/application"
	"github.com/babygenie/service-planner/internal/platform/response"
)

// MilestoneHandler serves developmental milestones.
type MilestoneHandler struct {
	service *application.MilestoneService
}

// NewMilestoneHandler creates a new MilestoneHandler.
func NewMilestoneHandler(service *application.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{service: service}
}

// RegisterRoutes registers milestone routes.
func (h *MilestoneHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/api/v1/milestones", h.ListForWeek)
}

// ListForWeek handles GET /api/v1/milestones?week=N.
func (h *MilestoneHandler) ListForWeek(c *gin.Context) {
	week, err := strconv.Atoi(c.Query("week"))
	if err != nil {
		response.BadRequest(c, "week query parameter must be a number")
		return
	}

	milestones, err := h.service.ForWeek(c.Request.Context(), week)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, milestones)
}
