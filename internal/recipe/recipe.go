// Package recipe contains the API representation of recipes.
package recipe

import (
	"time"

	"github.com/forkful/forkful/internal/database"
	"github.com/forkful/forkful/internal/rating"
)

// Owner is the public slice of a recipe author's profile.
type Owner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
}

// RecipeWithOwner is the canonical wire shape for a recipe: the stored fields,
// the populated author, and the derived rating summary. Callers that need
// only a subset ignore the extra fields.
type RecipeWithOwner struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	CookingTime  int32     `json:"cookingTime"`
	Image        string    `json:"image,omitempty"`
	Ingredients  []string  `json:"ingredients"`
	Instructions string    `json:"instructions"`
	Difficulty   string    `json:"difficulty"`
	Tags         []string  `json:"tags"`
	Author       Owner     `json:"author"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	rating.Summary
}

// FromRow builds the wire representation from a joined recipe row and a
// precomputed rating summary.
func FromRow(row database.RecipeWithAuthor, summary rating.Summary) RecipeWithOwner {
	return RecipeWithOwner{
		ID:           row.ID,
		Title:        row.Title,
		CookingTime:  row.CookingTime,
		Image:        row.Image,
		Ingredients:  row.Ingredients,
		Instructions: row.Instructions,
		Difficulty:   row.Difficulty,
		Tags:         row.Tags,
		Author: Owner{
			ID:    row.AuthorID,
			Name:  row.AuthorName,
			Email: row.AuthorEmail,
			Image: row.AuthorImage,
		},
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
		Summary:   summary,
	}
}

// Entries converts rating rows into aggregator entries.
func Entries(rows []database.RecipeRating) []rating.Entry {
	entries := make([]rating.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, rating.Entry{UserID: r.UserID, Value: r.Value})
	}
	return entries
}

// GroupEntries buckets rating rows from a batch query by recipe id.
func GroupEntries(rows []database.RecipeRating) map[string][]rating.Entry {
	grouped := make(map[string][]rating.Entry)
	for _, r := range rows {
		grouped[r.RecipeID] = append(grouped[r.RecipeID], rating.Entry{UserID: r.UserID, Value: r.Value})
	}
	return grouped
}
