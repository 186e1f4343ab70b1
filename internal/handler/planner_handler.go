package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/babygenie/service-planner/internal/application"
	"github.com/babygenie/service-planner/internal/domain/planning"
	"github.com/babygenie/service-planner/internal/platform/response"
)

// PlannerHandler handles HTTP requests for weekend planning.
type PlannerHandler struct {
	planner  *application.PlannerService
	profiles *application.ProfileService
}

// NewPlannerHandler creates a new PlannerHandler.
func NewPlannerHandler(planner *application.PlannerService, profiles *application.ProfileService) *PlannerHandler {
	return &PlannerHandler{planner: planner, profiles: profiles}
}

// RegisterRoutes registers the planning routes. extra is applied to plan creation only.
func (h *PlannerHandler) RegisterRoutes(r *gin.RouterGroup, extra ...gin.HandlerFunc) {
	weekend := r.Group("/api/v1/weekend")
	{
		weekend.POST("/plans", withMiddleware(extra, h.CreatePlans)...)
		weekend.GET("/plans/:id", h.GetPlanLog)
	}
	r.POST("/api/v1/profiles/:id/plans", withMiddleware(extra, h.CreatePlansForProfile)...)
}

// CreatePlans handles POST /api/v1/weekend/plans.
func (h *PlannerHandler) CreatePlans(c *gin.Context) {
	var req planning.PlanningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.planner.Plan(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreatePlansForProfile handles POST /api/v1/profiles/:id/plans.
func (h *PlannerHandler) CreatePlansForProfile(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid profile ID")
		return
	}

	var req application.ProfilePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	planReq, err := h.profiles.PlanningRequest(c.Request.Context(), profileID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.planner.Plan(c.Request.Context(), planReq)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetPlanLog handles GET /api/v1/weekend/plans/:id.
func (h *PlannerHandler) GetPlanLog(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid plan request ID")
		return
	}

	result, err := h.planner.GetPlanLog(c.Request.Context(), requestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// withMiddleware returns a fresh chain of extra followed by h.
func withMiddleware(extra []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(extra)+1)
	chain = append(chain, extra...)
	return append(chain, h)
}
