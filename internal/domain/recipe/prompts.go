package recipe

import (
	"context"
	"fmt"
	"strings"
)

// TextGenerator produces a completion for a system instruction and a user prompt.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Stage names one step of the recipe chain.
type Stage string

const (
	StageIngredientAnalysis   Stage = "ingredient_analysis"
	StageCuisineResearch      Stage = "cuisine_research"
	StageNutritionCalculation Stage = "nutrition_calculation"
	StageRecipeGeneration     Stage = "recipe_generation"
)

// Stages is the fixed chain order.
var Stages = []Stage{
	StageIngredientAnalysis,
	StageCuisineResearch,
	StageNutritionCalculation,
	StageRecipeGeneration,
}

// Route renders the chain as "a -> b -> c -> d".
func Route() string {
	names := make([]string, len(Stages))
	for i, s := range Stages {
		names[i] = string(s)
	}
	return strings.Join(names, " -> ")
}

// Prompt is a system instruction paired with a user prompt.
type Prompt struct {
	System string
	User   string
}

// AnalysisPrompt asks for recipe ideas from the ingredients. An empty cuisine means any.
func AnalysisPrompt(ingredients, cuisine string) Prompt {
	if cuisine == "" {
		cuisine = "Any cuisine"
	}
	return Prompt{
		System: "You are a culinary expert. Analyze ingredients and suggest recipe possibilities. Be concise and practical.",
		User: fmt.Sprintf(`Analyze these ingredients for recipe creation: %s

Cuisine preference: %s

Provide:
1. Recipe possibilities (3-4 ideas)
2. Missing key ingredients for each
3. Ingredient substitutions
4. Cooking techniques needed

Keep response under 200 words.`, ingredients, cuisine),
	}
}

// CuisinePrompt asks for techniques and flavor profiles of a cuisine.
func CuisinePrompt(cuisine, difficulty string) Prompt {
	return Prompt{
		System: "You are a culinary researcher specializing in global cuisines. Provide concise, practical cooking information.",
		User: fmt.Sprintf(`Research %s cuisine for %s level cooking.

Focus on:
- Key cooking techniques
- Essential flavor profiles
- Common ingredients
- Traditional methods
- Modern adaptations

Keep under 150 words.`, cuisine, difficulty),
	}
}

// NutritionPrompt asks for per-serving nutrition.
func NutritionPrompt(ingredients string, servings int) Prompt {
	return Prompt{
		System: "You are a nutrition expert. Calculate approximate nutritional values for recipes. Be realistic and practical.",
		User: fmt.Sprintf(`Calculate nutrition for this recipe: %s

Servings: %d

Provide per serving:
- Calories (realistic range)
- Protein (grams)
- Carbs (grams)
- Fat (grams)
- Fiber (grams)

Format as JSON-like structure for easy parsing.`, ingredients, servings),
	}
}

// GenerationPrompt asks for the full recipe using the earlier stages' output.
func GenerationPrompt(ingredients, cuisine, difficulty, nutrition, analysis string) Prompt {
	return Prompt{
		System: `You are a master chef and recipe creator. Generate detailed, practical recipes that are:
- Clear and easy to follow
- Include helpful cooking tips
- Provide realistic timing
- Include ingredient substitutions
- Match the specified cuisine and difficulty level

Format the response as a structured recipe with clear sections.`,
		User: fmt.Sprintf(`Create a recipe using: %s

Cuisine: %s
Difficulty: %s
Nutrition: %s
Analysis: %s

Generate a complete recipe with:
1. Recipe title and description
2. Detailed ingredients list
3. Step-by-step instructions with timing
4. Cooking tips and techniques
5. Ingredient substitutions
6. Serving suggestions

Make it practical and delicious!`, ingredients, cuisine, difficulty, nutrition, analysis),
	}
}
