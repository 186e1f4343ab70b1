package recipe

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/babygenie/service-planner/internal/platform/domain"
)

// Defaults applied when the request leaves a preference empty.
const (
	DefaultCuisine    = "general"
	DefaultDifficulty = "intermediate"
	DefaultServings   = 4

	AgentType = "Recipe Creator"
)

// Ingredient is an item the cook has on hand.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit,omitempty"`
	Category string `json:"category,omitempty"`
}

func (i Ingredient) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{i.Quantity, i.Unit, i.Name} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Request asks for a recipe built around the given ingredients.
type Request struct {
	Ingredients         []Ingredient `json:"ingredients"`
	Cuisine             string       `json:"cuisine,omitempty"`
	Difficulty          string       `json:"difficulty,omitempty"`
	CookingTime         string       `json:"cookingTime,omitempty"`
	CalorieRange        string       `json:"calorieRange,omitempty"`
	DietaryRestrictions []string     `json:"dietaryRestrictions,omitempty"`
	SeasoningProfileID  string       `json:"seasoningProfileId,omitempty"`
	Servings            int          `json:"servings,omitempty"`
}

// Validate checks that at least one named ingredient was supplied.
func (r Request) Validate() error {
	if len(r.Ingredients) == 0 {
		return domain.NewValidationError("at least one ingredient is required")
	}
	for i, ing := range r.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return domain.NewValidationError(fmt.Sprintf("ingredient %d: name is required", i+1))
		}
	}
	if r.Servings < 0 {
		return domain.NewValidationError("servings cannot be negative")
	}
	return nil
}

// IngredientList joins the ingredients as "<qty> <unit> <name>, ...".
func (r Request) IngredientList() string {
	items := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		items[i] = ing.String()
	}
	return strings.Join(items, ", ")
}

// WithDefaults fills empty cuisine, difficulty and servings.
func (r Request) WithDefaults() Request {
	if strings.TrimSpace(r.Cuisine) == "" {
		r.Cuisine = DefaultCuisine
	}
	if strings.TrimSpace(r.Difficulty) == "" {
		r.Difficulty = DefaultDifficulty
	}
	if r.Servings == 0 {
		r.Servings = DefaultServings
	}
	return r
}

// Step is one numbered instruction.
type Step struct {
	Step        int    `json:"step"`
	Instruction string `json:"instruction"`
	Time        string `json:"time,omitempty"`
	Tips        string `json:"tips,omitempty"`
}

// Nutrition is the per-serving nutritional estimate.
type Nutrition struct {
	Calories   int     `json:"calories"`
	Protein    float64 `json:"protein"`
	Carbs      float64 `json:"carbs"`
	Fat        float64 `json:"fat"`
	Fiber      float64 `json:"fiber"`
	PerServing bool    `json:"perServing"`
}

// Recipe is the structured recipe returned to the client.
type Recipe struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Ingredients   []Ingredient        `json:"ingredients"`
	Instructions  []Step              `json:"instructions"`
	Nutrition     Nutrition           `json:"nutrition"`
	Cuisine       string              `json:"cuisine"`
	Difficulty    string              `json:"difficulty"`
	CookingTime   string              `json:"cookingTime"`
	Servings      int                 `json:"servings"`
	PrepTime      string              `json:"prepTime"`
	TotalTime     string              `json:"totalTime"`
	Tips          []string            `json:"tips"`
	Substitutions map[string][]string `json:"substitutions,omitempty"`
	ImageURL      string              `json:"imageUrl,omitempty"`
	Rating        *float64            `json:"rating,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// NewRecipe builds the structured summary that accompanies a generated recipe.
// Nutrition and timings are fixed estimates; the generated text carries the detail.
func NewRecipe(req Request) Recipe {
	cuisine := req.Cuisine
	if strings.TrimSpace(cuisine) == "" {
		cuisine = "General"
	}
	filled := req.WithDefaults()

	return Recipe{
		ID:          uuid.New().String(),
		Title:       "Generated Recipe",
		Description: "A delicious recipe created from your ingredients",
		Ingredients: req.Ingredients,
		Instructions: []Step{
			{Step: 1, Instruction: "Follow the generated recipe instructions", Time: "30 min"},
		},
		Nutrition: Nutrition{
			Calories:   500,
			Protein:    25,
			Carbs:      45,
			Fat:        20,
			Fiber:      8,
			PerServing: true,
		},
		Cuisine:     cuisine,
		Difficulty:  filled.Difficulty,
		CookingTime: "30 minutes",
		Servings:    filled.Servings,
		PrepTime:    "10 minutes",
		TotalTime:   "40 minutes",
		Tips:        []string{"Use fresh ingredients for best results", "Adjust seasoning to taste"},
		CreatedAt:   time.Now().UTC(),
	}
}

// Response is the recipe creator's reply.
type Response struct {
	Recipes              []Recipe `json:"recipes"`
	AgentType            string   `json:"agent_type"`
	RouteTaken           string   `json:"route_taken"`
	Result               string   `json:"result"`
	SeasoningSuggestions []string `json:"seasoning_suggestions,omitempty"`
	MissingIngredients   []string `json:"missing_ingredients,omitempty"`
	ShoppingList         []string `json:"shopping_list,omitempty"`
}

// NewResponse builds the reply for one generated recipe.
func NewResponse(r Recipe, result string) *Response {
	return &Response{
		Recipes:              []Recipe{r},
		AgentType:            AgentType,
		RouteTaken:           Route(),
		Result:               result,
		SeasoningSuggestions: []string{"salt", "pepper", "garlic", "herbs"},
		MissingIngredients:   []string{"olive oil", "onion"},
		ShoppingList:         []string{"olive oil", "onion", "garlic"},
	}
}
