// Package env provides a structure for managing application-wide dependencies.
package env

import (
	"context"
	"log/slog"
	"os"

	"github.com/forkful/forkful/internal/config"
	"github.com/forkful/forkful/internal/database"
	"github.com/forkful/forkful/internal/log"
	"github.com/forkful/forkful/internal/webimage"
)

type envKeyType struct{}

var envKey envKeyType

type Env struct {
	Logger   *slog.Logger
	Database *database.Database
	Config   *config.Config

	// Images is nil unless the image-URL probe is enabled in config.
	Images *webimage.Prober
}

func New(logger *slog.Logger, db *database.Database, conf *config.Config) *Env {
	if logger == nil {
		logger = log.NullLogger()
	}

	return &Env{
		Logger:   logger,
		Database: db,
		Config:   conf,
	}
}

func Null() *Env {
	return &Env{
		Logger: log.NullLogger(),
	}
}

// WithCtx injects the environment into a context.
func WithCtx(ctx context.Context, e *Env) context.Context {
	return context.WithValue(ctx, envKey, e)
}

// EnvFromCtx extracts the environment from a context. A null environment is
// returned when none was injected, so callers never dereference nil.
func EnvFromCtx(ctx context.Context) *Env {
	if e, ok := ctx.Value(envKey).(*Env); ok {
		return e
	}
	return Null()
}

// Get resolves well-known settings from the loaded config, falling back to
// process environment variables.
func (e *Env) Get(key string) string {
	if e.Config != nil {
		switch key {
		case "ENV":
			return e.Config.Env
		case "APP_SECRET":
			if e.Config.AppSecret.Value != nil {
				return string(*e.Config.AppSecret.Value)
			}
		case "APP_SECRET_VERSION":
			return e.Config.AppSecret.Version
		case "HOST_ORIGIN":
			return e.Config.HostOrigin
		}
	}
	return os.Getenv(key)
}
