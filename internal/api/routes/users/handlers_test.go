package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	apiError "github.com/forkful/forkful/internal/api/error"
	"github.com/forkful/forkful/internal/api/requestid"
	"github.com/forkful/forkful/internal/api/token"
	"github.com/forkful/forkful/internal/database"
	"github.com/forkful/forkful/internal/dbtest"
	"github.com/forkful/forkful/internal/env"
	"github.com/forkful/forkful/internal/log"
)

func seedUser(store *dbtest.Store, id, name string) {
	store.PutUser(database.User{
		ID:    id,
		Name:  name,
		Email: name + "@example.com",
	})
}

func seedRecipe(store *dbtest.Store, id, authorID string) {
	store.PutRecipe(database.Recipe{
		ID:           id,
		Title:        "Dal Tadka",
		CookingTime:  45,
		Ingredients:  []string{"lentils", "ghee"},
		Instructions: "Boil the lentils, temper the spices.",
		Difficulty:   "Medium",
		Tags:         []string{"dinner"},
		AuthorID:     authorID,
	})
}

func newRequest(store *dbtest.Store, method, target, body, userID, routeID string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))

	e := env.New(log.NullLogger(), &database.Database{Querier: store}, nil)
	ctx := env.WithCtx(req.Context(), e)
	ctx = requestid.InjectRequestID(ctx, 12345)
	if userID != "" {
		ctx = token.UserIDWithCtx(ctx, userID)
	}
	if routeID != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", routeID)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) apiError.ErrorCode {
	t.Helper()
	var apiErr apiError.Error
	if err := json.NewDecoder(rec.Body).Decode(&apiErr); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return apiErr.Code
}

func TestHandleAddFavorite(t *testing.T) {
	tests := []struct {
		name          string
		seed          func(*dbtest.Store)
		body          string
		wantStatus    int
		wantCode      apiError.ErrorCode
		wantFavorites []string
	}{
		{
			name: "add favorite",
			seed: func(s *dbtest.Store) {
				seedUser(s, "author-1", "alice")
				seedRecipe(s, "recipe-1", "author-1")
			},
			body:          `{"recipeId": "recipe-1"}`,
			wantStatus:    http.StatusOK,
			wantFavorites: []string{"recipe-1"},
		},
		{
			name: "adding twice is a no-op",
			seed: func(s *dbtest.Store) {
				seedUser(s, "author-1", "alice")
				seedRecipe(s, "recipe-1", "author-1")
				s.PutFavorite("user-1", "recipe-1")
			},
			body:          `{"recipeId": "recipe-1"}`,
			wantStatus:    http.StatusOK,
			wantFavorites: []string{"recipe-1"},
		},
		{
			name: "preserves earlier favorites",
			seed: func(s *dbtest.Store) {
				seedUser(s, "author-1", "alice")
				seedRecipe(s, "recipe-1", "author-1")
				seedRecipe(s, "recipe-2", "author-1")
				s.PutFavorite("user-1", "recipe-2")
			},
			body:          `{"recipeId": "recipe-1"}`,
			wantStatus:    http.StatusOK,
			wantFavorites: []string{"recipe-2", "recipe-1"},
		},
		{
			name:          "recipe does not exist",
			seed:          func(s *dbtest.Store) {},
			body:          `{"recipeId": "missing"}`,
			wantStatus:    http.StatusNotFound,
			wantCode:      apiError.RecipeNotFound,
			wantFavorites: nil,
		},
		{
			name:          "missing recipe id",
			seed:          func(s *dbtest.Store) {},
			body:          `{}`,
			wantStatus:    http.StatusBadRequest,
			wantCode:      apiError.BadRequest,
			wantFavorites: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := dbtest.New()
			tt.seed(store)

			req := newRequest(store, http.MethodPost, "/api/users/favorites", tt.body, "user-1", "")
			rec := httptest.NewRecorder()
			HandleAddFavorite(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}

			favs := store.Favorites("user-1")
			if len(favs) != len(tt.wantFavorites) {
				t.Fatalf("expected favorites %v, got %v", tt.wantFavorites, favs)
			}
			for i := range favs {
				if favs[i] != tt.wantFavorites[i] {
					t.Fatalf("expected favorites %v, got %v", tt.wantFavorites, favs)
				}
			}

			if tt.wantStatus != http.StatusOK {
				if code := decodeErrorCode(t, rec); code != tt.wantCode {
					t.Errorf("expected error code %s, got %s", tt.wantCode, code)
				}
				return
			}

			var resp FavoriteIDsResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(resp.Favorites) != len(tt.wantFavorites) {
				t.Errorf("expected response favorites %v, got %v", tt.wantFavorites, resp.Favorites)
			}
		})
	}
}

func TestHandleRemoveFavorite(t *testing.T) {
	tests := []struct {
		name          string
		seed          func(*dbtest.Store)
		routeID       string
		wantFavorites []string
	}{
		{
			name: "remove favorite",
			seed: func(s *dbtest.Store) {
				seedUser(s, "author-1", "alice")
				seedRecipe(s, "recipe-1", "author-1")
				s.PutFavorite("user-1", "recipe-1")
			},
			routeID:       "recipe-1",
			wantFavorites: []string{},
		},
		{
			name: "removing an absent id is a no-op",
			seed: func(s *dbtest.Store) {
				seedUser(s, "author-1", "alice")
				seedRecipe(s, "recipe-1", "author-1")
				s.PutFavorite("user-1", "recipe-1")
			},
			routeID:       "recipe-2",
			wantFavorites: []string{"recipe-1"},
		},
		{
			name: "dangling favorite can still be removed",
			seed: func(s *dbtest.Store) {
				// No recipe row backs this id.
				s.PutFavorite("user-1", "ghost-recipe")
			},
			routeID:       "ghost-recipe",
			wantFavorites: []string{},
		},
		{
			name: "only the named id is removed",
			seed: func(s *dbtest.Store) {
				s.PutFavorite("user-1", "recipe-1")
				s.PutFavorite("user-1", "recipe-2")
				s.PutFavorite("user-1", "recipe-3")
			},
			routeID:       "recipe-2",
			wantFavorites: []string{"recipe-1", "recipe-3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := dbtest.New()
			tt.seed(store)

			req := newRequest(store, http.MethodDelete, "/api/users/favorites/"+tt.routeID, "", "user-1", tt.routeID)
			rec := httptest.NewRecorder()
			HandleRemoveFavorite(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
			}

			favs := store.Favorites("user-1")
			if len(favs) != len(tt.wantFavorites) {
				t.Fatalf("expected favorites %v, got %v", tt.wantFavorites, favs)
			}
			for i := range favs {
				if favs[i] != tt.wantFavorites[i] {
					t.Fatalf("expected favorites %v, got %v", tt.wantFavorites, favs)
				}
			}

			var resp FavoriteIDsResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(resp.Favorites) != len(tt.wantFavorites) {
				t.Errorf("expected response favorites %v, got %v", tt.wantFavorites, resp.Favorites)
			}
		})
	}
}

func TestHandleListFavorites(t *testing.T) {
	store := dbtest.New()
	seedUser(store, "author-1", "alice")
	seedRecipe(store, "recipe-1", "author-1")
	store.PutFavorite("user-1", "recipe-1")
	// A favorite whose recipe was deleted out from under it must not appear.
	store.PutFavorite("user-1", "ghost-recipe")
	_ = store.UpsertRecipeRating(context.Background(), database.UpsertRecipeRatingParams{
		RecipeID: "recipe-1", UserID: "user-1", Value: 5,
	})

	req := newRequest(store, http.MethodGet, "/api/users/favorites", "", "user-1", "")
	rec := httptest.NewRecorder()
	HandleListFavorites(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp ListFavoritesResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Favorites) != 1 {
		t.Fatalf("expected 1 favorite, got %d", len(resp.Favorites))
	}
	if resp.Favorites[0].ID != "recipe-1" {
		t.Errorf("expected recipe-1, got %q", resp.Favorites[0].ID)
	}
	if resp.Favorites[0].Author.Name != "alice" {
		t.Errorf("expected populated author, got %+v", resp.Favorites[0].Author)
	}
	if resp.Favorites[0].User != 5 {
		t.Errorf("expected userRating 5, got %d", resp.Favorites[0].User)
	}
}

func TestHandleMyRecipes(t *testing.T) {
	store := dbtest.New()
	seedUser(store, "author-1", "alice")
	seedUser(store, "author-2", "bob")
	seedRecipe(store, "recipe-1", "author-1")
	seedRecipe(store, "recipe-2", "author-2")
	seedRecipe(store, "recipe-3", "author-1")

	req := newRequest(store, http.MethodGet, "/api/users/my-recipes", "", "author-1", "")
	rec := httptest.NewRecorder()
	HandleMyRecipes(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp MyRecipesResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Recipes) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(resp.Recipes))
	}
	// Newest first.
	if resp.Recipes[0].ID != "recipe-3" || resp.Recipes[1].ID != "recipe-1" {
		t.Errorf("expected [recipe-3 recipe-1], got [%s %s]",
			resp.Recipes[0].ID, resp.Recipes[1].ID)
	}
}
