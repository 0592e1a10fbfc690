// Package recipes contains handlers for the recipes endpoint.
package recipes

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"

	apiError "github.com/forkful/forkful/internal/api/error"
	"github.com/forkful/forkful/internal/api/requestid"
	"github.com/forkful/forkful/internal/api/token"
	"github.com/forkful/forkful/internal/database"
	"github.com/forkful/forkful/internal/env"
	mJson "github.com/forkful/forkful/internal/json"
	"github.com/forkful/forkful/internal/metrics"
	"github.com/forkful/forkful/internal/rating"
	"github.com/forkful/forkful/internal/recipe"
)

// checkImage probes the submitted image URL when the probe is configured.
// An empty URL is always fine; images are optional.
func checkImage(r *http.Request, url string) error {
	e := env.EnvFromCtx(r.Context())
	if url == "" || e.Images == nil {
		return nil
	}
	return e.Images.Probe(r.Context(), url)
}

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

// HandleCreateRecipe godoc
//
//	@Summary	Create a recipe.
//	@Tags		Recipes
//	@Accept		json
//	@Param		request	body	CreateRecipeRequest	true	"Create Recipe Request"
//	@Success	201	{object}	GetRecipeResponse
//	@Failure	400	{object}	apiError.Error	"Bad request / validation error"
//	@Failure	401	{object}	apiError.Error	"Unauthorized"
//	@Security	AccessTokenCookie
//	@Router		/api/recipes [POST]
func HandleCreateRecipe(w http.ResponseWriter, r *http.Request) {
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
	var request CreateRecipeRequest
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
		_ = apiError.EncodeError(w, apiError.BadRequest, "missing or invalid recipe fields", requestID)
		return
	}

	if err := checkImage(r, request.Image); err != nil {
		env.Logger.ErrorContext(ctx, "failed to probe image url", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "image url does not serve an image", requestID)
		return
	}

	// Create recipe
	env.Logger.DebugContext(ctx, "creating recipe")
	tags := request.Tags
	if tags == nil {
		tags = []string{}
	}
	created, err := env.Database.CreateRecipe(ctx, database.CreateRecipeParams{
		ID:           ulid.Make().String(),
		Title:        request.Title,
		CookingTime:  request.CookingTime,
		Image:        request.Image,
		Ingredients:  request.Ingredients,
		Instructions: request.Instructions,
		Difficulty:   request.Difficulty,
		Tags:         tags,
		AuthorID:     userID,
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to create recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	metrics.RecipesCreated.Inc()

	author, err := env.Database.GetUserByID(ctx, userID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to fetch author", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	row := database.RecipeWithAuthor{
		Recipe:      created,
		AuthorName:  author.Name,
		AuthorEmail: author.Email,
		AuthorImage: author.Image,
	}

	// Write response
	env.Logger.DebugContext(ctx, "writing response")
	resp := GetRecipeResponse(recipe.FromRow(row, rating.Summary{}))
	if err := writeJSON(w, http.StatusCreated, resp); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
		return
	}
}

// HandleListRecipes godoc
//
//	@Summary	List all recipes with their rating summaries.
//	@Tags		Recipes
//	@Produce	json
//	@Success	200	{object}	ListRecipesResponse
//	@Security	AccessTokenCookie
//	@Router		/api/recipes [GET]
func HandleListRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "listing recipes")
	rows, err := env.Database.ListRecipes(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to list recipes", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	resp, err := recipesWithSummaries(r, rows, userID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to load rating summaries", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	if err := writeJSON(w, http.StatusOK, ListRecipesResponse{Recipes: resp}); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
		return
	}
}

// recipesWithSummaries attaches a rating summary to every row, fetching all
// rating entries for the batch in one query.
func recipesWithSummaries(
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

// HandleGetRecipe godoc
//
//	@Summary	Get a recipe by id, author populated, with the caller's rating.
//	@Tags		Recipes
//	@Produce	json
//	@Param		id	path	string	true	"Recipe ID"
//	@Success	200	{object}	GetRecipeResponse
//	@Failure	404	{object}	apiError.Error	"Recipe not found"
//	@Security	AccessTokenCookie
//	@Router		/api/recipes/{id} [GET]
func HandleGetRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	recipeID := chi.URLParam(r, "id")
	env.Logger.DebugContext(ctx, "fetching recipe", slog.String("recipe-id", recipeID))
	row, err := env.Database.GetRecipeByID(ctx, recipeID)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to fetch recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	ratings, err := env.Database.ListRecipeRatings(ctx, recipeID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to fetch ratings", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	resp := GetRecipeResponse(recipe.FromRow(row, rating.Summarize(recipe.Entries(ratings), userID)))
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
		return
	}
}

// HandleUpdateRecipe godoc
//
//	@Summary	Replace a recipe's editable fields. Author only.
//	@Tags		Recipes
//	@Accept		json
//	@Param		id		path	string				true	"Recipe ID"
//	@Param		request	body	UpdateRecipeRequest	true	"Update Recipe Request"
//	@Success	200	{object}	GetRecipeResponse
//	@Failure	400	{object}	apiError.Error	"Bad request / validation error"
//	@Failure	403	{object}	apiError.Error	"Caller is not the author"
//	@Failure	404	{object}	apiError.Error	"Recipe not found"
//	@Security	AccessTokenCookie
//	@Router		/api/recipes/{id} [PUT]
func HandleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
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
	var request UpdateRecipeRequest
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
		_ = apiError.EncodeError(w, apiError.BadRequest, "missing or invalid recipe fields", requestID)
		return
	}

	// Ownership gate: only the author may mutate the recipe.
	recipeID := chi.URLParam(r, "id")
	row, err := env.Database.GetRecipeByID(ctx, recipeID)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to fetch recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if row.AuthorID != userID {
		_ = apiError.EncodeError(w, apiError.RecipeNotOwned, "only the author may edit a recipe", requestID)
		return
	}

	if err := checkImage(r, request.Image); err != nil {
		env.Logger.ErrorContext(ctx, "failed to probe image url", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "image url does not serve an image", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "updating recipe", slog.String("recipe-id", recipeID))
	tags := request.Tags
	if tags == nil {
		tags = []string{}
	}
	updated, err := env.Database.UpdateRecipe(ctx, database.UpdateRecipeParams{
		ID:           recipeID,
		Title:        request.Title,
		CookingTime:  request.CookingTime,
		Image:        request.Image,
		Ingredients:  request.Ingredients,
		Instructions: request.Instructions,
		Difficulty:   request.Difficulty,
		Tags:         tags,
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to update recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	ratings, err := env.Database.ListRecipeRatings(ctx, recipeID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to fetch ratings", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	row.Recipe = updated
	resp := GetRecipeResponse(recipe.FromRow(row, rating.Summarize(recipe.Entries(ratings), userID)))
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
		return
	}
}

// HandleDeleteRecipe godoc
//
//	@Summary	Delete a recipe. Author only. Cleans up favorites pointing at it.
//	@Tags		Recipes
//	@Param		id	path	string	true	"Recipe ID"
//	@Success	200	{object}	DeleteRecipeResponse
//	@Failure	403	{object}	apiError.Error	"Caller is not the author"
//	@Failure	404	{object}	apiError.Error	"Recipe not found"
//	@Security	AccessTokenCookie
//	@Router		/api/recipes/{id} [DELETE]
func HandleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	recipeID := chi.URLParam(r, "id")
	row, err := env.Database.GetRecipeByID(ctx, recipeID)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to fetch recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if row.AuthorID != userID {
		_ = apiError.EncodeError(w, apiError.RecipeNotOwned, "only the author may delete a recipe", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "deleting recipe", slog.String("recipe-id", recipeID))
	if err := env.Database.DeleteRecipe(ctx, recipeID); err != nil {
		env.Logger.ErrorContext(ctx, "failed to delete recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	metrics.RecipesDeleted.Inc()

	if err := writeJSON(w, http.StatusOK, DeleteRecipeResponse{Message: "recipe deleted"}); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
		return
	}
}

// HandleRateRecipe godoc
//
//	@Summary	Add or update the caller's rating of a recipe.
//	@Tags		Recipes, Ratings
//	@Accept		json
//	@Param		id		path	string				true	"Recipe ID"
//	@Param		request	body	RateRecipeRequest	true	"Rate Recipe Request"
//	@Success	200	{object}	GetRecipeResponse
//	@Failure	400	{object}	apiError.Error	"Rating outside 1..5"
//	@Failure	404	{object}	apiError.Error	"Recipe not found"
//	@Security	AccessTokenCookie
//	@Router		/api/recipes/{id}/rate [POST]
func HandleRateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Decode JSON. A fractional value fails the int decode, so non-integers
	// are rejected here before the aggregator ever sees them.
	env.Logger.DebugContext(ctx, "Reading request body")
	var request RateRecipeRequest
	defer func() { _ = r.Body.Close() }()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := mJson.DecodeJSON(&request, decoder); err != nil {
		env.Logger.ErrorContext(ctx, "failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}
	if err := rating.ValidateValue(request.Value); err != nil {
		_ = apiError.EncodeError(w, apiError.InvalidRating, err.Error(), requestID)
		return
	}

	recipeID := chi.URLParam(r, "id")
	row, err := env.Database.GetRecipeByID(ctx, recipeID)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to fetch recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "upserting rating",
		slog.String("recipe-id", recipeID), slog.Int("value", int(request.Value)))
	rows, err := env.Database.ListRecipeRatings(ctx, recipeID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to fetch ratings", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	entries, err := rating.Apply(recipe.Entries(rows), userID, request.Value)
	if err != nil {
		_ = apiError.EncodeError(w, apiError.InvalidRating, err.Error(), requestID)
		return
	}

	if err := env.Database.UpsertRecipeRating(ctx, database.UpsertRecipeRatingParams{
		RecipeID: recipeID,
		UserID:   userID,
		Value:    request.Value,
	}); err != nil {
		env.Logger.ErrorContext(ctx, "failed to persist rating", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	metrics.RatingsSubmitted.Inc()

	resp := GetRecipeResponse(recipe.FromRow(row, rating.Summarize(entries, userID)))
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
		return
	}
}
