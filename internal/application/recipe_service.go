package application

import (
	"context"
	"errors"

	"go.uber.org/zap"

	recipeDomain "github.com/babygenie/service-planner/internal/domain/recipe"
	"github.com/babygenie/service-planner/internal/platform/domain"
)

const recipeUpstream = "llm"

var errGeneratorUnavailable = errors.New("recipe generator is not configured")

// RecipeService runs the four-stage recipe chain against a text generator.
type RecipeService struct {
	generator recipeDomain.TextGenerator
	logger    *zap.Logger
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(generator recipeDomain.TextGenerator, logger *zap.Logger) *RecipeService {
	return &RecipeService{generator: generator, logger: logger}
}

// CreateRecipe analyzes the ingredients, researches the cuisine, estimates
// nutrition and then generates the recipe. Any generator failure aborts the chain.
func (s *RecipeService) CreateRecipe(ctx context.Context, req recipeDomain.Request) (*recipeDomain.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.generator == nil {
		return nil, domain.NewUpstreamError(recipeUpstream, errGeneratorUnavailable)
	}

	ingredients := req.IngredientList()
	filled := req.WithDefaults()

	analysis, err := s.run(ctx, recipeDomain.StageIngredientAnalysis, recipeDomain.AnalysisPrompt(ingredients, req.Cuisine))
	if err != nil {
		return nil, err
	}
	if _, err := s.run(ctx, recipeDomain.StageCuisineResearch, recipeDomain.CuisinePrompt(filled.Cuisine, filled.Difficulty)); err != nil {
		return nil, err
	}
	nutrition, err := s.run(ctx, recipeDomain.StageNutritionCalculation, recipeDomain.NutritionPrompt(ingredients, filled.Servings))
	if err != nil {
		return nil, err
	}
	result, err := s.run(ctx, recipeDomain.StageRecipeGeneration,
		recipeDomain.GenerationPrompt(ingredients, filled.Cuisine, filled.Difficulty, nutrition, analysis))
	if err != nil {
		return nil, err
	}

	recipe := recipeDomain.NewRecipe(req)
	s.logger.Info("recipe created",
		zap.String("recipe_id", recipe.ID),
		zap.Int("ingredients", len(req.Ingredients)),
	)
	return recipeDomain.NewResponse(recipe, result), nil
}

func (s *RecipeService) run(ctx context.Context, stage recipeDomain.Stage, p recipeDomain.Prompt) (string, error) {
	out, err := s.generator.Generate(ctx, p.System, p.User)
	if err != nil {
		s.logger.Error("recipe stage failed",
			zap.String("stage", string(stage)),
			zap.Error(err),
		)
		return "", domain.NewUpstreamError(recipeUpstream, err)
	}
	s.logger.Debug("recipe stage completed", zap.String("stage", string(stage)))
	return out, nil
}
