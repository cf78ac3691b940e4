package model

import "time"

// User represents a user in the database.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUserRequest represents a user registration request.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5,max=1024"`
	Name     string `json:"name" validate:"max=255"`
}

// TokenRequest represents a credential exchange request.
type TokenRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries a signed JWT for use on authenticated routes.
type TokenResponse struct {
	Token string `json:"token"`
}

// UpdateUserRequest represents a partial update to the authenticated user.
// Nil fields are left untouched; a non-nil password is re-hashed.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Password *string `json:"password" validate:"omitempty,min=5,max=1024"`
}

// UserResponse represents user data safe for API responses (no sensitive fields).
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
