package model

// Tag represents a user-owned tag in the database.
// Tags label recipes through the recipe_tags join table.
type Tag struct {
	ID     int64
	UserID int64
	Name   string
}

// TagRequest carries a tag name, both for renames and for the nested
// tag lists on recipe writes.
type TagRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// TagResponse represents a tag in API responses.
type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
