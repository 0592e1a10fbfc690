package database

import (
	"github.com/jackc/pgx/v5"
)

func scanRecipeWithAuthor(row pgx.Row, r *RecipeWithAuthor) error {
	return row.Scan(
		&r.ID,
		&r.Title,
		&r.CookingTime,
		&r.Image,
		&r.Ingredients,
		&r.Instructions,
		&r.Difficulty,
		&r.Tags,
		&r.AuthorID,
		&r.CreatedAt,
		&r.UpdatedAt,
		&r.AuthorName,
		&r.AuthorEmail,
		&r.AuthorImage,
	)
}

func collectRecipesWithAuthor(rows pgx.Rows) ([]RecipeWithAuthor, error) {
	var recipes []RecipeWithAuthor
	for rows.Next() {
		var r RecipeWithAuthor
		if err := scanRecipeWithAuthor(rows, &r); err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}
