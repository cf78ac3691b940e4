package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dev-abhisheks/recipe-app-api/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets the generated ID and timestamps on
// the user struct.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (email, name, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		user.Email, user.Name, user.PasswordHash, formatTime(now), formatTime(now),
	)
	if err != nil {
		if isDuplicateError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, email, name, password_hash, created_at, updated_at FROM users WHERE email = ?`
	return r.getUser(ctx, query, email)
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT id, email, name, password_hash, created_at, updated_at FROM users WHERE id = ?`
	return r.getUser(ctx, query, id)
}

// Update persists the user's name and password hash.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET name = ?, password_hash = ?, updated_at = ? WHERE id = ?`

	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query, user.Name, user.PasswordHash, formatTime(now), user.ID)
	if err != nil {
		return err
	}

	user.UpdatedAt = now
	return nil
}

func (r *UserRepository) getUser(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}
	var createdAt, updatedAt string

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if user.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return user, nil
}
