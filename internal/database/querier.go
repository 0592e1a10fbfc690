package database

import "context"

// Querier is the storage seam for the API handlers. *Queries implements it
// over Postgres; tests substitute an in-memory store.
type Querier interface {
	CheckUsersTableExists(ctx context.Context) (bool, error)
	ApplySchema(ctx context.Context) error

	UpsertUserByEmail(ctx context.Context, arg UpsertUserByEmailParams) (User, error)
	GetUserByID(ctx context.Context, id string) (User, error)

	CreateRecipe(ctx context.Context, arg CreateRecipeParams) (Recipe, error)
	GetRecipeByID(ctx context.Context, id string) (RecipeWithAuthor, error)
	ListRecipes(ctx context.Context) ([]RecipeWithAuthor, error)
	ListRecipesByAuthor(ctx context.Context, authorID string) ([]RecipeWithAuthor, error)
	UpdateRecipe(ctx context.Context, arg UpdateRecipeParams) (Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error
	RecipeExists(ctx context.Context, id string) (bool, error)

	ListRecipeRatings(ctx context.Context, recipeID string) ([]RecipeRating, error)
	ListRecipeRatingsForRecipes(ctx context.Context, recipeIDs []string) ([]RecipeRating, error)
	UpsertRecipeRating(ctx context.Context, arg UpsertRecipeRatingParams) error

	ListFavoriteIDs(ctx context.Context, userID string) ([]string, error)
	ListFavoriteRecipes(ctx context.Context, userID string) ([]RecipeWithAuthor, error)
	AddFavorite(ctx context.Context, arg AddFavoriteParams) error
	RemoveFavorite(ctx context.Context, arg RemoveFavoriteParams) (int64, error)
}

var _ Querier = (*Queries)(nil)
