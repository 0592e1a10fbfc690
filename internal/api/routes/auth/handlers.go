// Package auth contains handlers for session issuance.
package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"

	apiError "github.com/forkful/forkful/internal/api/error"
	"github.com/forkful/forkful/internal/api/requestid"
	"github.com/forkful/forkful/internal/api/token"
	"github.com/forkful/forkful/internal/database"
	"github.com/forkful/forkful/internal/env"
	mJson "github.com/forkful/forkful/internal/json"
)

type SessionResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}

// HandleCreateSession godoc
//
//	@Summary	Upsert the user by email and issue an access-token cookie.
//	@Tags		Auth
//	@Accept		json
//	@Param		request	body	CreateSessionRequest	true	"Verified identity profile"
//	@Success	200	{object}	SessionResponse
//	@Failure	400	{object}	apiError.Error	"Bad request / validation error"
//	@Router		/api/auth/session [POST]
func HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	// Decode JSON
	env.Logger.DebugContext(ctx, "Reading request body")
	var request CreateSessionRequest
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
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}

	// Upsert user. Every successful authentication refreshes the profile;
	// the generated id only sticks on first sign-in.
	env.Logger.DebugContext(ctx, "upserting user", slog.String("email", request.Email))
	user, err := env.Database.UpsertUserByEmail(ctx, database.UpsertUserByEmailParams{
		ID:    ulid.Make().String(),
		Name:  request.Name,
		Email: request.Email,
		Image: request.Image,
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to upsert user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	accessToken, err := token.NewAccessToken(user.ID, env)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to create access token", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	http.SetCookie(w, token.NewAccessTokenCookie(accessToken, env))

	// Write response
	env.Logger.DebugContext(ctx, "writing response")
	resp, err := json.Marshal(SessionResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Image: user.Image,
	})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to marshal response", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	if _, err := w.Write(resp); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
		return
	}
}

// HandleLogout godoc
//
//	@Summary	Clear the access-token cookie.
//	@Tags		Auth
//	@Success	200	{object}	LogoutResponse
//	@Router		/api/auth/logout [POST]
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	http.SetCookie(w, token.ExpiredAccessTokenCookie(env))

	resp, err := json.Marshal(LogoutResponse{Message: "logged out"})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to marshal response", slog.Any("error", err))
		return
	}
	w.Header().Add("Content-Type", "application/json")
	if _, err := w.Write(resp); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
		return
	}
}
