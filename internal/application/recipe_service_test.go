package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	recipeDomain "github.com/babygenie/service-planner/internal/domain/recipe"
	"github.com/babygenie/service-planner/internal/platform/domain"
)

func recipeRequest() recipeDomain.Request {
	return recipeDomain.Request{
		Ingredients: []recipeDomain.Ingredient{
			{Name: "chicken", Quantity: "500", Unit: "g"},
			{Name: "rice", Quantity: "2", Unit: "cups"},
		},
	}
}

func TestCreateRecipe_RunsStagesInOrder(t *testing.T) {
	gen := new(MockTextGenerator)
	var order []string
	record := func(stage string) func(mock.Arguments) {
		return func(mock.Arguments) { order = append(order, stage) }
	}
	gen.On("Generate", mock.Anything, mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.HasPrefix(p, "Analyze these ingredients")
	})).Return("analysis", nil).Run(record("analysis"))
	gen.On("Generate", mock.Anything, mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.HasPrefix(p, "Research general cuisine for intermediate")
	})).Return("research", nil).Run(record("research"))
	gen.On("Generate", mock.Anything, mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.HasPrefix(p, "Calculate nutrition") && strings.Contains(p, "Servings: 4")
	})).Return("nutrition", nil).Run(record("nutrition"))
	gen.On("Generate", mock.Anything, mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.HasPrefix(p, "Create a recipe using: 500 g chicken, 2 cups rice") &&
			strings.Contains(p, "Nutrition: nutrition") &&
			strings.Contains(p, "Analysis: analysis")
	})).Return("Chicken rice bowl", nil).Run(record("generation"))

	svc := NewRecipeService(gen, zap.NewNop())
	resp, err := svc.CreateRecipe(context.Background(), recipeRequest())

	require.NoError(t, err)
	assert.Equal(t, []string{"analysis", "research", "nutrition", "generation"}, order)
	assert.Equal(t, "Chicken rice bowl", resp.Result)
	assert.Equal(t, "Recipe Creator", resp.AgentType)
	assert.Equal(t, recipeDomain.Route(), resp.RouteTaken)
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, 4, resp.Recipes[0].Servings)
	assert.Equal(t, []string{"olive oil", "onion", "garlic"}, resp.ShoppingList)
	gen.AssertExpectations(t)
}

func TestCreateRecipe_GeneratorErrorAborts(t *testing.T) {
	gen := new(MockTextGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("quota exceeded")).Once()

	svc := NewRecipeService(gen, zap.NewNop())
	_, err := svc.CreateRecipe(context.Background(), recipeRequest())

	require.Error(t, err)
	assert.True(t, domain.IsUpstream(err))
	gen.AssertNumberOfCalls(t, "Generate", 1)
}

func TestCreateRecipe_RequiresIngredients(t *testing.T) {
	gen := new(MockTextGenerator)
	svc := NewRecipeService(gen, zap.NewNop())

	_, err := svc.CreateRecipe(context.Background(), recipeDomain.Request{})

	assert.True(t, domain.IsValidation(err))
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateRecipe_NoGenerator(t *testing.T) {
	svc := NewRecipeService(nil, zap.NewNop())
	_, err := svc.CreateRecipe(context.Background(), recipeRequest())
	assert.True(t, domain.IsUpstream(err))
}
