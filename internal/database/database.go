// Package database provides the Postgres storage layer.
package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Database struct {
	Querier
}

func NewDatabase(pool *pgxpool.Pool) *Database {
	return &Database{
		Querier: New(pool),
	}
}

// EnsureSchema applies the schema to the Postgres database if it is not
// already present.
func EnsureSchema(ctx context.Context, db *Database) error {
	exists, err := db.CheckUsersTableExists(ctx)
	if err != nil {
		return fmt.Errorf("ensuring schema exists: %w", err)
	}

	if exists {
		return nil
	}

	if err := db.ApplySchema(ctx); err != nil {
		return fmt.Errorf("applying database schema: %w", err)
	}

	return nil
}
