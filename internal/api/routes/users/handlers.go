// Package users contains handlers for the user resource.
package users

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	apiError "github.com/forkful/forkful/internal/api/error"
	"github.com/forkful/forkful/internal/api/requestid"
	"github.com/forkful/forkful/internal/api/token"
	"github.com/forkful/forkful/internal/database"
	"github.com/forkful/forkful/internal/env"
	"github.com/forkful/forkful/internal/favorites"
	mJson "github.com/forkful/forkful/internal/json"
	"github.com/forkful/forkful/internal/metrics"
	"github.com/forkful/forkful/internal/rating"
	"github.com/forkful/forkful/internal/recipe"
)

func writeJSON(w http.ResponseWriter, status int, payload any) error {
	resp, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(resp)
	return err
}

// HandleMyRecipes godoc
//
//	@Summary	List recipes authored by the caller.
//	@Tags		User
//	@Produce	json
//	@Success	200	{object}	MyRecipesResponse
//	@Security	AccessTokenCookie
//	@Router		/api/users/my-recipes [GET]
func HandleMyRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "listing authored recipes")
	rows, err := env.Database.ListRecipesByAuthor(ctx, userID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to list recipes", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	recipes, err := withSummaries(r, rows, userID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to load rating summaries", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	if err := writeJSON(w, http.StatusOK, MyRecipesResponse{Recipes: recipes}); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
		return
	}
}

func withSummaries(
	r *http.Request,
	rows []database.RecipeWithAuthor,
	userID string,
) ([]recipe.RecipeWithOwner, error) {
	env := env.EnvFromCtx(r.Context())

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	ratings, err := env.Database.ListRecipeRatingsForRecipes(r.Context(), ids)
	if err != nil {
		return nil, err
	}
	grouped := recipe.GroupEntries(ratings)

	out := make([]recipe.RecipeWithOwner, 0, len(rows))
	for _, row := range rows {
		out = append(out, recipe.FromRow(row, rating.Summarize(grouped[row.ID], userID)))
	}
	return out, nil
}

// HandleListFavorites godoc
//
//	@Summary	List the caller's favorite recipes.
//	@Tags		User, Favorites
//	@Produce	json
//	@Success	200	{object}	ListFavoritesResponse
//	@Security	AccessTokenCookie
//	@Router		/api/users/favorites [GET]
func HandleListFavorites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "listing favorites")
	rows, err := env.Database.ListFavoriteRecipes(ctx, userID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to list favorites", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	recipes, err := withSummaries(r, rows, userID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to load rating summaries", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	if err := writeJSON(w, http.StatusOK, ListFavoritesResponse{Favorites: recipes}); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
		return
	}
}

// HandleAddFavorite godoc
//
//	@Summary	Add a recipe to the caller's favorites. Idempotent.
//	@Tags		User, Favorites
//	@Accept		json
//	@Param		request	body	AddFavoriteRequest	true	"Add Favorite Request"
//	@Success	200	{object}	FavoriteIDsResponse
//	@Failure	404	{object}	apiError.Error	"Recipe not found"
//	@Security	AccessTokenCookie
//	@Router		/api/users/favorites [POST]
func HandleAddFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Decode JSON
	env.Logger.DebugContext(ctx, "Reading request body")
	var request AddFavoriteRequest
	defer func() { _ = r.Body.Close() }()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := mJson.DecodeJSON(&request, decoder); err != nil {
		env.Logger.ErrorContext(ctx, "failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(request); err != nil {
		env.Logger.ErrorContext(ctx, "failed to validate request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "recipe id is required", requestID)
		return
	}

	// Adding requires the recipe to exist; removal below does not.
	exists, err := env.Database.RecipeExists(ctx, request.RecipeID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to check recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if !exists {
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	}

	favs, err := env.Database.ListFavoriteIDs(ctx, userID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to list favorites", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Membership check before insert keeps the add explicitly idempotent;
	// the table's primary key is only a backstop.
	updated, changed := favorites.Add(favs, request.RecipeID)
	if changed {
		if err := env.Database.AddFavorite(ctx, database.AddFavoriteParams{
			UserID:   userID,
			RecipeID: request.RecipeID,
		}); err != nil {
			env.Logger.ErrorContext(ctx, "failed to persist favorite", slog.Any("error", err))
			_ = apiError.EncodeInternalError(w, requestID)
			return
		}
		metrics.FavoritesAdded.Inc()
	}

	resp := FavoriteIDsResponse{Message: "recipe added to favorites", Favorites: updated}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
		return
	}
}

// HandleRemoveFavorite godoc
//
//	@Summary	Remove a recipe from the caller's favorites. Idempotent.
//	@Tags		User, Favorites
//	@Param		id	path	string	true	"Recipe ID"
//	@Success	200	{object}	FavoriteIDsResponse
//	@Security	AccessTokenCookie
//	@Router		/api/users/favorites/{id} [DELETE]
func HandleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Pure set membership: the id does not need to reference a live recipe.
	recipeID := chi.URLParam(r, "id")
	env.Logger.DebugContext(ctx, "removing favorite", slog.String("recipe-id", recipeID))
	removed, err := env.Database.RemoveFavorite(ctx, database.RemoveFavoriteParams{
		UserID:   userID,
		RecipeID: recipeID,
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to remove favorite", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if removed > 0 {
		metrics.FavoritesRemoved.Inc()
	}

	favs, err := env.Database.ListFavoriteIDs(ctx, userID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to list favorites", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	resp := FavoriteIDsResponse{Message: "recipe removed from favorites", Favorites: favs}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
		return
	}
}
