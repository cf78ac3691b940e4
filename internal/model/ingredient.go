package model

// Ingredient represents a user-owned ingredient in the database.
// Ingredients attach to recipes through the recipe_ingredients join table.
type Ingredient struct {
	ID     int64
	UserID int64
	Name   string
}

// IngredientRequest carries an ingredient name, both for renames and
// for the nested ingredient lists on recipe writes.
type IngredientRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// IngredientResponse represents an ingredient in API responses.
type IngredientResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
