package recipes

type CreateRecipeRequest struct {
	Title        string   `json:"title" validate:"required"`
	CookingTime  int32    `json:"cookingTime" validate:"required,gt=0"`
	Image        string   `json:"image" validate:"omitempty,url"`
	Ingredients  []string `json:"ingredients" validate:"required,min=1,dive,required"`
	Instructions string   `json:"instructions" validate:"required"`
	Difficulty   string   `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	Tags         []string `json:"tags" validate:"omitempty,dive,required"`
}

// UpdateRecipeRequest carries the full replacement state of a recipe's
// author-editable fields.
type UpdateRecipeRequest CreateRecipeRequest

type RateRecipeRequest struct {
	Value int32 `json:"value"`
}
