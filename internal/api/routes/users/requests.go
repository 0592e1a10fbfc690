package users

type AddFavoriteRequest struct {
	RecipeID string `json:"recipeId" validate:"required"`
}
