package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/babygenie/service-planner/internal/application"
	"github.com/babygenie/service-planner/internal/platform/middleware"
	"github.com/babygenie/service-planner/internal/platform/response"
)

// AdminPlanHandler handles admin HTTP requests for plan logs.
type AdminPlanHandler struct {
	service *application.PlannerService
}

// NewAdminPlanHandler creates a new AdminPlanHandler.
func NewAdminPlanHandler(service *application.PlannerService) *AdminPlanHandler {
	return &AdminPlanHandler{service: service}
}

// RegisterRoutes registers admin plan routes behind the admin token.
func (h *AdminPlanHandler) RegisterRoutes(r *gin.RouterGroup, adminToken string) {
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.RequireAdminToken(adminToken))
	{
		admin.GET("/plans", h.ListPlans)
		admin.GET("/stats/plans", h.PlanStats)
	}
}

// ListPlans handles GET /api/v1/admin/plans.
func (h *AdminPlanHandler) ListPlans(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	logs, total, err := h.service.ListPlanLogs(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, logs, total, page, limit)
}

// PlanStats handles GET /api/v1/admin/stats/plans.
func (h *AdminPlanHandler) PlanStats(c *gin.Context) {
	stats, err := h.service.PlanStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}
