package model

import "time"

// Recipe represents a recipe in the database, with its tag and
// ingredient associations loaded where the query asks for them.
type Recipe struct {
	ID          int64
	UserID      int64
	Title       string
	TimeMinutes int
	Price       string // decimal, normalized to two places
	Link        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Tags        []Tag
	Ingredients []Ingredient
}

// RecipeRequest represents a recipe create or full-replace payload.
// Nested tags and ingredients are get-or-created for the caller.
type RecipeRequest struct {
	Title       string              `json:"title" validate:"required,max=255"`
	TimeMinutes int                 `json:"time_minutes" validate:"required,min=1"`
	Price       string              `json:"price" validate:"required,price"`
	Link        string              `json:"link" validate:"omitempty,max=255"`
	Description string              `json:"description"`
	Tags        []TagRequest        `json:"tags" validate:"omitempty,dive"`
	Ingredients []IngredientRequest `json:"ingredients" validate:"omitempty,dive"`
}

// UpdateRecipeRequest represents a partial recipe update. Nil fields
// are left untouched. A non-nil Tags or Ingredients slice replaces the
// association set wholesale; an empty slice clears it.
type UpdateRecipeRequest struct {
	Title       *string              `json:"title" validate:"omitempty,max=255"`
	TimeMinutes *int                 `json:"time_minutes" validate:"omitempty,min=1"`
	Price       *string              `json:"price" validate:"omitempty,price"`
	Link        *string              `json:"link" validate:"omitempty,max=255"`
	Description *string              `json:"description"`
	Tags        *[]TagRequest        `json:"tags" validate:"omitempty,dive"`
	Ingredients *[]IngredientRequest `json:"ingredients" validate:"omitempty,dive"`
}

// RecipeResponse is the summary form used in recipe lists.
type RecipeResponse struct {
	ID          int64                `json:"id"`
	Title       string               `json:"title"`
	TimeMinutes int                  `json:"time_minutes"`
	Price       string               `json:"price"`
	Link        string               `json:"link"`
	Tags        []TagResponse        `json:"tags"`
	Ingredients []IngredientResponse `json:"ingredients"`
}

// RecipeDetailResponse is the detail form; it adds the description.
type RecipeDetailResponse struct {
	RecipeResponse
	Description string `json:"description"`
}
