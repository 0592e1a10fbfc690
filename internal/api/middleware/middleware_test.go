package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	apiError "github.com/forkful/forkful/internal/api/error"
	"github.com/forkful/forkful/internal/api/token"
	"github.com/forkful/forkful/internal/config"
	"github.com/forkful/forkful/internal/env"
	"github.com/forkful/forkful/internal/log"
)

const testSecret = "test-secret-32-bytes-long-1234567890"

func testEnv(t *testing.T) *env.Env {
	t.Helper()
	secret := config.AppSecretValue(testSecret)
	conf := &config.Config{
		AppSecret: config.AppSecret{
			Value:   &secret,
			Version: "1",
		},
		Env: config.EnvDev,
	}
	e := env.New(log.NullLogger(), nil, conf)
	return e
}

// expiredToken signs a token whose exp is already in the past.
func expiredToken(t *testing.T) string {
	t.Helper()
	claims := jwtlib.MapClaims{
		"sub": "user-1",
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	tok.Header["kid"] = "1"
	signed, err := tok.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign expired token: %v", err)
	}
	return signed
}

func TestRequireUser(t *testing.T) {
	tests := []struct {
		name          string
		setupRequest  func(*testing.T, *http.Request, *env.Env)
		wantStatus    int
		wantErrorCode apiError.ErrorCode
		wantUserID    string
	}{
		{
			name: "valid access token",
			setupRequest: func(t *testing.T, r *http.Request, e *env.Env) {
				accessToken, err := token.NewAccessToken("user-1", e)
				if err != nil {
					t.Fatalf("failed to create access token: %v", err)
				}
				r.AddCookie(&http.Cookie{
					Name:  token.AccessTokenName(e),
					Value: accessToken,
				})
			},
			wantStatus: http.StatusOK,
			wantUserID: "user-1",
		},
		{
			name:          "missing cookie",
			setupRequest:  func(t *testing.T, r *http.Request, e *env.Env) {},
			wantStatus:    http.StatusUnauthorized,
			wantErrorCode: apiError.InvalidAccessToken,
		},
		{
			name: "garbage token",
			setupRequest: func(t *testing.T, r *http.Request, e *env.Env) {
				r.AddCookie(&http.Cookie{
					Name:  token.AccessTokenName(e),
					Value: "not-a-jwt",
				})
			},
			wantStatus:    http.StatusUnauthorized,
			wantErrorCode: apiError.InvalidAccessToken,
		},
		{
			name: "expired token",
			setupRequest: func(t *testing.T, r *http.Request, e *env.Env) {
				r.AddCookie(&http.Cookie{
					Name:  token.AccessTokenName(e),
					Value: expiredToken(t),
				})
			},
			wantStatus:    http.StatusUnauthorized,
			wantErrorCode: apiError.ExpiredAccessToken,
		},
		{
			name: "token signed with another secret",
			setupRequest: func(t *testing.T, r *http.Request, e *env.Env) {
				other := config.AppSecretValue("another-secret-32-bytes-long-123456")
				otherEnv := env.New(log.NullLogger(), nil, &config.Config{
					AppSecret: config.AppSecret{Value: &other, Version: "1"},
					Env:       config.EnvDev,
				})
				accessToken, err := token.NewAccessToken("user-1", otherEnv)
				if err != nil {
					t.Fatalf("failed to create access token: %v", err)
				}
				r.AddCookie(&http.Cookie{
					Name:  token.AccessTokenName(e),
					Value: accessToken,
				})
			},
			wantStatus:    http.StatusUnauthorized,
			wantErrorCode: apiError.InvalidAccessToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testEnv(t)

			var gotUserID string
			var nextCalled bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				if id, err := token.UserIDFromCtx(r.Context()); err == nil {
					gotUserID = id
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req = req.WithContext(env.WithCtx(req.Context(), e))
			tt.setupRequest(t, req, e)

			rec := httptest.NewRecorder()
			RequireUser(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			if tt.wantStatus == http.StatusOK {
				if !nextCalled {
					t.Error("expected next handler to be called")
				}
				if gotUserID != tt.wantUserID {
					t.Errorf("expected user id %q in context, got %q", tt.wantUserID, gotUserID)
				}
				return
			}

			if nextCalled {
				t.Error("next handler should not be called on auth failure")
			}

			var apiErr apiError.Error
			if err := json.NewDecoder(rec.Body).Decode(&apiErr); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if apiErr.Code != tt.wantErrorCode {
				t.Errorf("expected error code %s, got %s", tt.wantErrorCode, apiErr.Code)
			}
		})
	}
}

func TestAddCors(t *testing.T) {
	tests := []struct {
		name       string
		envName    string
		hostOrigin string
		origin     string
		wantOrigin string
	}{
		{
			name:       "prod uses host origin",
			envName:    config.EnvProd,
			hostOrigin: "https://forkful.example.com",
			origin:     "https://evil.example.com",
			wantOrigin: "https://forkful.example.com",
		},
		{
			name:       "dev echoes request origin",
			envName:    config.EnvDev,
			hostOrigin: "http://localhost:8080",
			origin:     "http://localhost:3000",
			wantOrigin: "http://localhost:3000",
		},
		{
			name:       "dev without origin falls back to host origin",
			envName:    config.EnvDev,
			hostOrigin: "http://localhost:8080",
			origin:     "",
			wantOrigin: "http://localhost:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := &config.Config{
				HostOrigin: tt.hostOrigin,
				Env:        tt.envName,
			}
			e := env.New(log.NullLogger(), nil, conf)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req = req.WithContext(env.WithCtx(req.Context(), e))
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}

			rec := httptest.NewRecorder()
			AddCors(next).ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("expected Access-Control-Allow-Origin %q, got %q", tt.wantOrigin, got)
			}
			if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
				t.Errorf("expected Access-Control-Allow-Credentials true, got %q", got)
			}
		})
	}
}

func TestAddCorsPreflight(t *testing.T) {
	conf := &config.Config{
		HostOrigin: "http://localhost:8080",
		Env:        config.EnvDev,
	}
	e := env.New(log.NullLogger(), nil, conf)

	var nextCalled bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	})

	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	req = req.WithContext(env.WithCtx(req.Context(), e))

	rec := httptest.NewRecorder()
	AddCors(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
	if nextCalled {
		t.Error("next handler should not be called for preflight requests")
	}
}
