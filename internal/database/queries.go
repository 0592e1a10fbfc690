package database

import (
	"context"
)

const checkUsersTableExists = `
SELECT EXISTS (
    SELECT 1 FROM information_schema.tables
    WHERE table_schema = 'public' AND table_name = 'users'
)
`

func (q *Queries) CheckUsersTableExists(ctx context.Context) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, checkUsersTableExists).Scan(&exists)
	return exists, err
}

func (q *Queries) ApplySchema(ctx context.Context) error {
	_, err := q.db.Exec(ctx, schema)
	return err
}

const upsertUserByEmail = `
INSERT INTO users (id, name, email, image)
VALUES ($1, $2, $3, $4)
ON CONFLICT (email) DO UPDATE
SET name = EXCLUDED.name,
    image = EXCLUDED.image,
    updated_at = now()
RETURNING id, name, email, image, created_at, updated_at
`

type UpsertUserByEmailParams struct {
	ID    string
	Name  string
	Email string
	Image string
}

// UpsertUserByEmail creates the user on first sign-in and refreshes the
// profile on every subsequent one. The provided ID is only used on insert.
func (q *Queries) UpsertUserByEmail(ctx context.Context, arg UpsertUserByEmailParams) (User, error) {
	row := q.db.QueryRow(ctx, upsertUserByEmail, arg.ID, arg.Name, arg.Email, arg.Image)
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Image, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const getUserByID = `
SELECT id, name, email, image, created_at, updated_at
FROM users
WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Image, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const createRecipe = `
INSERT INTO recipes (id, title, cooking_time, image, ingredients, instructions, difficulty, tags, author_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, title, cooking_time, image, ingredients, instructions, difficulty, tags, author_id, created_at, updated_at
`

type CreateRecipeParams struct {
	ID           string
	Title        string
	CookingTime  int32
	Image        string
	Ingredients  []string
	Instructions string
	Difficulty   string
	Tags         []string
	AuthorID     string
}

func (q *Queries) CreateRecipe(ctx context.Context, arg CreateRecipeParams) (Recipe, error) {
	row := q.db.QueryRow(ctx, createRecipe,
		arg.ID,
		arg.Title,
		arg.CookingTime,
		arg.Image,
		arg.Ingredients,
		arg.Instructions,
		arg.Difficulty,
		arg.Tags,
		arg.AuthorID,
	)
	var r Recipe
	err := row.Scan(
		&r.ID,
		&r.Title,
		&r.CookingTime,
		&r.Image,
		&r.Ingredients,
		&r.Instructions,
		&r.Difficulty,
		&r.Tags,
		&r.AuthorID,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

const recipeWithAuthorColumns = `
r.id, r.title, r.cooking_time, r.image, r.ingredients, r.instructions,
r.difficulty, r.tags, r.author_id, r.created_at, r.updated_at,
u.name, u.email, u.image
`

const getRecipeByID = `
SELECT ` + recipeWithAuthorColumns + `
FROM recipes r
JOIN users u ON u.id = r.author_id
WHERE r.id = $1
`

func (q *Queries) GetRecipeByID(ctx context.Context, id string) (RecipeWithAuthor, error) {
	row := q.db.QueryRow(ctx, getRecipeByID, id)
	var r RecipeWithAuthor
	err := scanRecipeWithAuthor(row, &r)
	return r, err
}

const listRecipes = `
SELECT ` + recipeWithAuthorColumns + `
FROM recipes r
JOIN users u ON u.id = r.author_id
ORDER BY r.created_at DESC, r.id DESC
`

func (q *Queries) ListRecipes(ctx context.Context) ([]RecipeWithAuthor, error) {
	rows, err := q.db.Query(ctx, listRecipes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecipesWithAuthor(rows)
}

const listRecipesByAuthor = `
SELECT ` + recipeWithAuthorColumns + `
FROM recipes r
JOIN users u ON u.id = r.author_id
WHERE r.author_id = $1
ORDER BY r.created_at DESC, r.id DESC
`

func (q *Queries) ListRecipesByAuthor(ctx context.Context, authorID string) ([]RecipeWithAuthor, error) {
	rows, err := q.db.Query(ctx, listRecipesByAuthor, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecipesWithAuthor(rows)
}

const updateRecipe = `
UPDATE recipes
SET title = $2,
    cooking_time = $3,
    image = $4,
    ingredients = $5,
    instructions = $6,
    difficulty = $7,
    tags = $8,
    updated_at = now()
WHERE id = $1
RETURNING id, title, cooking_time, image, ingredients, instructions, difficulty, tags, author_id, created_at, updated_at
`

type UpdateRecipeParams struct {
	ID           string
	Title        string
	CookingTime  int32
	Image        string
	Ingredients  []string
	Instructions string
	Difficulty   string
	Tags         []string
}

// UpdateRecipe replaces every author-editable field. author_id is never
// touched here; authorship is immutable.
func (q *Queries) UpdateRecipe(ctx context.Context, arg UpdateRecipeParams) (Recipe, error) {
	row := q.db.QueryRow(ctx, updateRecipe,
		arg.ID,
		arg.Title,
		arg.CookingTime,
		arg.Image,
		arg.Ingredients,
		arg.Instructions,
		arg.Difficulty,
		arg.Tags,
	)
	var r Recipe
	err := row.Scan(
		&r.ID,
		&r.Title,
		&r.CookingTime,
		&r.Image,
		&r.Ingredients,
		&r.Instructions,
		&r.Difficulty,
		&r.Tags,
		&r.AuthorID,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

// deleteRecipe removes the recipe and any favorites pointing at it in a
// single statement, so the cleanup is atomic with the delete. Ratings go
// away via the ON DELETE CASCADE on recipe_ratings.
const deleteRecipe = `
WITH removed_favorites AS (
    DELETE FROM user_favorites WHERE recipe_id = $1
)
DELETE FROM recipes WHERE id = $1
`

func (q *Queries) DeleteRecipe(ctx context.Context, id string) error {
	_, err := q.db.Exec(ctx, deleteRecipe, id)
	return err
}

const recipeExists = `
SELECT EXISTS (SELECT 1 FROM recipes WHERE id = $1)
`

func (q *Queries) RecipeExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, recipeExists, id).Scan(&exists)
	return exists, err
}

const listRecipeRatings = `
SELECT recipe_id, user_id, value
FROM recipe_ratings
WHERE recipe_id = $1
ORDER BY created_at, user_id
`

func (q *Queries) ListRecipeRatings(ctx context.Context, recipeID string) ([]RecipeRating, error) {
	rows, err := q.db.Query(ctx, listRecipeRatings, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []RecipeRating
	for rows.Next() {
		var r RecipeRating
		if err := rows.Scan(&r.RecipeID, &r.UserID, &r.Value); err != nil {
			return nil, err
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

const listRecipeRatingsForRecipes = `
SELECT recipe_id, user_id, value
FROM recipe_ratings
WHERE recipe_id = ANY($1)
ORDER BY recipe_id, created_at, user_id
`

// ListRecipeRatingsForRecipes fetches rating rows for a batch of recipes in
// one round trip, for use by listing endpoints.
func (q *Queries) ListRecipeRatingsForRecipes(ctx context.Context, recipeIDs []string) ([]RecipeRating, error) {
	rows, err := q.db.Query(ctx, listRecipeRatingsForRecipes, recipeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []RecipeRating
	for rows.Next() {
		var r RecipeRating
		if err := rows.Scan(&r.RecipeID, &r.UserID, &r.Value); err != nil {
			return nil, err
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

const upsertRecipeRating = `
INSERT INTO recipe_ratings (recipe_id, user_id, value)
VALUES ($1, $2, $3)
ON CONFLICT (recipe_id, user_id) DO UPDATE
SET value = EXCLUDED.value,
    updated_at = now()
`

type UpsertRecipeRatingParams struct {
	RecipeID string
	UserID   string
	Value    int32
}

func (q *Queries) UpsertRecipeRating(ctx context.Context, arg UpsertRecipeRatingParams) error {
	_, err := q.db.Exec(ctx, upsertRecipeRating, arg.RecipeID, arg.UserID, arg.Value)
	return err
}

const listFavoriteIDs = `
SELECT recipe_id
FROM user_favorites
WHERE user_id = $1
ORDER BY added_at, recipe_id
`

func (q *Queries) ListFavoriteIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := q.db.Query(ctx, listFavoriteIDs, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// The join drops favorites whose recipe no longer exists, so a dangling
// reference can never surface in a listing.
const listFavoriteRecipes = `
SELECT ` + recipeWithAuthorColumns + `
FROM user_favorites f
JOIN recipes r ON r.id = f.recipe_id
JOIN users u ON u.id = r.author_id
WHERE f.user_id = $1
ORDER BY f.added_at, f.recipe_id
`

func (q *Queries) ListFavoriteRecipes(ctx context.Context, userID string) ([]RecipeWithAuthor, error) {
	rows, err := q.db.Query(ctx, listFavoriteRecipes, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecipesWithAuthor(rows)
}

const addFavorite = `
INSERT INTO user_favorites (user_id, recipe_id)
VALUES ($1, $2)
ON CONFLICT (user_id, recipe_id) DO NOTHING
`

type AddFavoriteParams struct {
	UserID   string
	RecipeID string
}

func (q *Queries) AddFavorite(ctx context.Context, arg AddFavoriteParams) error {
	_, err := q.db.Exec(ctx, addFavorite, arg.UserID, arg.RecipeID)
	return err
}

const removeFavorite = `
DELETE FROM user_favorites
WHERE user_id = $1 AND recipe_id = $2
`

type RemoveFavoriteParams struct {
	UserID   string
	RecipeID string
}

func (q *Queries) RemoveFavorite(ctx context.Context, arg RemoveFavoriteParams) (int64, error) {
	tag, err := q.db.Exec(ctx, removeFavorite, arg.UserID, arg.RecipeID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
