// Package setup is responsible for setting up components.
package setup

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/forkful/forkful/internal/config"
	"github.com/forkful/forkful/internal/database"
	"github.com/forkful/forkful/internal/webimage"
)

func Database(ctx context.Context, conf config.Config) (*database.Database, error) {
	if conf.Database.User == "" {
		return nil, NewConfigValueMissingError("database.user")
	}
	if conf.Database.Password == "" {
		return nil, NewConfigValueMissingError("database.password")
	}
	if conf.Database.Database == "" {
		return nil, NewConfigValueMissingError("database.database")
	}

	dbString := fmt.Sprintf("postgresql://%s:%s@%s:%d/%s",
		conf.Database.User,
		conf.Database.Password,
		conf.Database.Host,
		conf.Database.Port,
		conf.Database.Database,
	)

	// Creating DB connection
	pool, err := pgxpool.New(ctx, dbString)
	if err != nil {
		return nil, fmt.Errorf("creating database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db := database.NewDatabase(pool)
	if err := database.EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	return db, nil
}

// Images returns an image-URL prober, or nil when the probe is disabled.
func Images(conf config.Config) *webimage.Prober {
	if !conf.ImageCheck.Enabled {
		return nil
	}

	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 2
	return webimage.NewProber(client)
}
