package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/babygenie/service-planner/internal/application"
	"github.com/babygenie/service-planner/internal/domain/recipe"
	"github.com/babygenie/service-planner/internal/platform/response"
)

// RecipeHandler handles recipe creation requests.
type RecipeHandler struct {
	service *application.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(service *application.RecipeService) *RecipeHandler {
	return &RecipeHandler{service: service}
}

// RegisterRoutes registers recipe routes. extra runs before the handler.
func (h *RecipeHandler) RegisterRoutes(r *gin.RouterGroup, extra ...gin.HandlerFunc) {
	r.POST("/api/v1/recipes", withMiddleware(extra, h.CreateRecipe)...)
}

// CreateRecipe handles POST /api/v1/recipes.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req recipe.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateRecipe(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
