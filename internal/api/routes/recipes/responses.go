package recipes

import (
	"github.com/forkful/forkful/internal/recipe"
)

type GetRecipeResponse recipe.RecipeWithOwner

type ListRecipesResponse struct {
	Recipes []recipe.RecipeWithOwner `json:"recipes"`
}

type DeleteRecipeResponse struct {
	Message string `json:"message"`
}
