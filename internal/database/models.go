package database

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type User struct {
	ID        string
	Name      string
	Email     string
	Image     string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type Recipe struct {
	ID           string
	Title        string
	CookingTime  int32
	Image        string
	Ingredients  []string
	Instructions string
	Difficulty   string
	Tags         []string
	AuthorID     string
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

type RecipeRating struct {
	RecipeID string
	UserID   string
	Value    int32
}

// RecipeWithAuthor is a recipe row joined with its author's public profile.
type RecipeWithAuthor struct {
	Recipe
	AuthorName  string
	AuthorEmail string
	AuthorImage string
}
