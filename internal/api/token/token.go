// Package token contains utilities for access tokens and caller identity.
package token

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/forkful/forkful/internal/env"
	"github.com/forkful/forkful/internal/jwt"
)

const (
	accessTokenLifetime = 60 * 60 // 1 hour, matches jwt.JWTDuration
)

type userIDKeyType struct{}

var userIDKey userIDKeyType

var ErrNoUserID = errors.New("no user id in context")

// UserIDWithCtx stores the authenticated caller's user id in the context.
func UserIDWithCtx(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromCtx extracts the authenticated caller's user id from the context.
func UserIDFromCtx(ctx context.Context) (string, error) {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id, nil
	}
	return "", ErrNoUserID
}

func AccessTokenName(env *env.Env) string {
	if env.Get("ENV") == "PROD" {
		return "__Host-Forkful-access"
	}
	return "access"
}

// NewAccessToken mints a signed JWT for the given user.
func NewAccessToken(userID string, env *env.Env) (string, error) {
	secret := env.Get("APP_SECRET")
	if secret == "" {
		return "", errors.New("environment variable APP_SECRET not defined")
	}

	version := env.Get("APP_SECRET_VERSION")
	if version == "" {
		version = jwt.DefaultKID
	}

	token, err := jwt.GenerateJWT(jwt.JWTParams{UserID: userID}, []byte(secret), version)
	if err != nil {
		return "", fmt.Errorf("generating access token: %w", err)
	}
	return token, nil
}

func NewAccessTokenCookie(token string, env *env.Env) *http.Cookie {
	cookie := &http.Cookie{
		Name:     AccessTokenName(env),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   accessTokenLifetime,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	}

	if env.Get("ENV") == "PROD" {
		cookie.Secure = true
	}

	return cookie
}

// ExpiredAccessTokenCookie returns a cookie that clears the access token.
func ExpiredAccessTokenCookie(env *env.Env) *http.Cookie {
	cookie := NewAccessTokenCookie("", env)
	cookie.MaxAge = -1
	return cookie
}
