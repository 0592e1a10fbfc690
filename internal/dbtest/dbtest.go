// Package dbtest provides an in-memory database.Querier for handler tests.
package dbtest

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/forkful/forkful/internal/database"
)

// Store implements database.Querier over plain maps. The zero value is not
// usable; construct with New. Setting Err makes every call fail with it,
// which stands in for a storage outage.
type Store struct {
	mu sync.Mutex

	Err error

	users       map[string]database.User
	recipes     map[string]database.Recipe
	recipeOrder []string
	ratings     map[string][]database.RecipeRating
	favorites   map[string][]string
}

var _ database.Querier = (*Store)(nil)

func New() *Store {
	return &Store{
		users:     make(map[string]database.User),
		recipes:   make(map[string]database.Recipe),
		ratings:   make(map[string][]database.RecipeRating),
		favorites: make(map[string][]string),
	}
}

func now() pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: time.Now(), Valid: true}
}

// PutUser seeds a user.
func (s *Store) PutUser(u database.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// PutRecipe seeds a recipe.
func (s *Store) PutRecipe(r database.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes[r.ID] = r
	s.recipeOrder = append(s.recipeOrder, r.ID)
}

// PutFavorite seeds a favorite without any existence check, so tests can
// create dangling references.
func (s *Store) PutFavorite(userID, recipeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favorites[userID] = append(s.favorites[userID], recipeID)
}

// Ratings returns the rating rows for a recipe in insertion order.
func (s *Store) Ratings(recipeID string) []database.RecipeRating {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]database.RecipeRating, len(s.ratings[recipeID]))
	copy(out, s.ratings[recipeID])
	return out
}

// Favorites returns a user's favorite ids in insertion order.
func (s *Store) Favorites(userID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.favorites[userID]))
	copy(out, s.favorites[userID])
	return out
}

// HasRecipe reports whether a recipe is present.
func (s *Store) HasRecipe(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.recipes[id]
	return ok
}

func (s *Store) CheckUsersTableExists(ctx context.Context) (bool, error) {
	return true, s.Err
}

func (s *Store) ApplySchema(ctx context.Context) error {
	return s.Err
}

func (s *Store) UpsertUserByEmail(ctx context.Context, arg database.UpsertUserByEmailParams) (database.User, error) {
	if s.Err != nil {
		return database.User{}, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, u := range s.users {
		if u.Email == arg.Email {
			u.Name = arg.Name
			u.Image = arg.Image
			u.UpdatedAt = now()
			s.users[id] = u
			return u, nil
		}
	}

	u := database.User{
		ID:        arg.ID,
		Name:      arg.Name,
		Email:     arg.Email,
		Image:     arg.Image,
		CreatedAt: now(),
		UpdatedAt: now(),
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (database.User, error) {
	if s.Err != nil {
		return database.User{}, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return database.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (s *Store) CreateRecipe(ctx context.Context, arg database.CreateRecipeParams) (database.Recipe, error) {
	if s.Err != nil {
		return database.Recipe{}, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r := database.Recipe{
		ID:           arg.ID,
		Title:        arg.Title,
		CookingTime:  arg.CookingTime,
		Image:        arg.Image,
		Ingredients:  arg.Ingredients,
		Instructions: arg.Instructions,
		Difficulty:   arg.Difficulty,
		Tags:         arg.Tags,
		AuthorID:     arg.AuthorID,
		CreatedAt:    now(),
		UpdatedAt:    now(),
	}
	s.recipes[r.ID] = r
	s.recipeOrder = append(s.recipeOrder, r.ID)
	return r, nil
}

func (s *Store) withAuthorLocked(r database.Recipe) database.RecipeWithAuthor {
	author := s.users[r.AuthorID]
	return database.RecipeWithAuthor{
		Recipe:      r,
		AuthorName:  author.Name,
		AuthorEmail: author.Email,
		AuthorImage: author.Image,
	}
}

func (s *Store) GetRecipeByID(ctx context.Context, id string) (database.RecipeWithAuthor, error) {
	if s.Err != nil {
		return database.RecipeWithAuthor{}, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[id]
	if !ok {
		return database.RecipeWithAuthor{}, pgx.ErrNoRows
	}
	return s.withAuthorLocked(r), nil
}

func (s *Store) ListRecipes(ctx context.Context) ([]database.RecipeWithAuthor, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// Newest first, like the Postgres query.
	var out []database.RecipeWithAuthor
	for i := len(s.recipeOrder) - 1; i >= 0; i-- {
		if r, ok := s.recipes[s.recipeOrder[i]]; ok {
			out = append(out, s.withAuthorLocked(r))
		}
	}
	return out, nil
}

func (s *Store) ListRecipesByAuthor(ctx context.Context, authorID string) ([]database.RecipeWithAuthor, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []database.RecipeWithAuthor
	for i := len(s.recipeOrder) - 1; i >= 0; i-- {
		if r, ok := s.recipes[s.recipeOrder[i]]; ok && r.AuthorID == authorID {
			out = append(out, s.withAuthorLocked(r))
		}
	}
	return out, nil
}

func (s *Store) UpdateRecipe(ctx context.Context, arg database.UpdateRecipeParams) (database.Recipe, error) {
	if s.Err != nil {
		return database.Recipe{}, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[arg.ID]
	if !ok {
		return database.Recipe{}, pgx.ErrNoRows
	}

	r.Title = arg.Title
	r.CookingTime = arg.CookingTime
	r.Image = arg.Image
	r.Ingredients = arg.Ingredients
	r.Instructions = arg.Instructions
	r.Difficulty = arg.Difficulty
	r.Tags = arg.Tags
	r.UpdatedAt = now()
	s.recipes[arg.ID] = r
	return r, nil
}

func (s *Store) DeleteRecipe(ctx context.Context, id string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.recipes, id)
	delete(s.ratings, id)
	for userID, favs := range s.favorites {
		kept := favs[:0]
		for _, f := range favs {
			if f != id {
				kept = append(kept, f)
			}
		}
		s.favorites[userID] = kept
	}
	return nil
}

func (s *Store) RecipeExists(ctx context.Context, id string) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.recipes[id]
	return ok, nil
}

func (s *Store) ListRecipeRatings(ctx context.Context, recipeID string) ([]database.RecipeRating, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Ratings(recipeID), nil
}

func (s *Store) ListRecipeRatingsForRecipes(ctx context.Context, recipeIDs []string) ([]database.RecipeRating, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []database.RecipeRating
	for _, id := range recipeIDs {
		out = append(out, s.ratings[id]...)
	}
	return out, nil
}

func (s *Store) UpsertRecipeRating(ctx context.Context, arg database.UpsertRecipeRatingParams) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.ratings[arg.RecipeID]
	for i := range rows {
		if rows[i].UserID == arg.UserID {
			rows[i].Value = arg.Value
			return nil
		}
	}
	s.ratings[arg.RecipeID] = append(rows, database.RecipeRating{
		RecipeID: arg.RecipeID,
		UserID:   arg.UserID,
		Value:    arg.Value,
	})
	return nil
}

func (s *Store) ListFavoriteIDs(ctx context.Context, userID string) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Favorites(userID), nil
}

func (s *Store) ListFavoriteRecipes(ctx context.Context, userID string) ([]database.RecipeWithAuthor, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []database.RecipeWithAuthor
	for _, id := range s.favorites[userID] {
		if r, ok := s.recipes[id]; ok {
			out = append(out, s.withAuthorLocked(r))
		}
	}
	return out, nil
}

func (s *Store) AddFavorite(ctx context.Context, arg database.AddFavoriteParams) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.favorites[arg.UserID] {
		if f == arg.RecipeID {
			return nil
		}
	}
	s.favorites[arg.UserID] = append(s.favorites[arg.UserID], arg.RecipeID)
	return nil
}

func (s *Store) RemoveFavorite(ctx context.Context, arg database.RemoveFavoriteParams) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	favs := s.favorites[arg.UserID]
	kept := make([]string, 0, len(favs))
	var removed int64
	for _, f := range favs {
		if f == arg.RecipeID {
			removed++
			continue
		}
		kept = append(kept, f)
	}
	s.favorites[arg.UserID] = kept
	return removed, nil
}
