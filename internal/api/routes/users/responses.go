package users

import (
	"github.com/forkful/forkful/internal/recipe"
)

type MyRecipesResponse struct {
	Recipes []recipe.RecipeWithOwner `json:"recipes"`
}

// ListFavoritesResponse carries the caller's favorites, populated. Favorites
// whose recipe has been deleted never appear.
type ListFavoritesResponse struct {
	Favorites []recipe.RecipeWithOwner `json:"favorites"`
}

// FavoriteIDsResponse is returned from favorite mutations: the message plus
// the membership set as it stands after the operation.
type FavoriteIDsResponse struct {
	Message   string   `json:"message"`
	Favorites []string `json:"favorites"`
}
