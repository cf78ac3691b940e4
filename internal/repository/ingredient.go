package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dev-abhisheks/recipe-app-api/internal/model"
)

var ErrIngredientNotFound = errors.New("ingredient not found")

// IngredientRepository handles ingredient persistence operations.
type IngredientRepository struct {
	db *sql.DB
}

// NewIngredientRepository creates a new IngredientRepository.
func NewIngredientRepository(db *sql.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

// Create inserts a new ingredient and sets the generated ID on the
// ingredient struct.
func (r *IngredientRepository) Create(ctx context.Context, ingredient *model.Ingredient) error {
	query := `INSERT INTO ingredients (user_id, name) VALUES (?, ?)`

	result, err := r.db.ExecContext(ctx, query, ingredient.UserID, ingredient.Name)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	ingredient.ID = id
	return nil
}

// ListByUser retrieves all ingredients owned by a user, ordered by name
// descending. With assignedOnly set, only ingredients attached to at
// least one of the user's recipes are returned, deduplicated across
// recipes.
func (r *IngredientRepository) ListByUser(ctx context.Context, userID int64, assignedOnly bool) ([]model.Ingredient, error) {
	query := `SELECT id, user_id, name FROM ingredients WHERE user_id = ? ORDER BY name DESC`
	args := []any{userID}

	if assignedOnly {
		query = `SELECT DISTINCT i.id, i.user_id, i.name
			FROM ingredients i
			JOIN recipe_ingredients ri ON ri.ingredient_id = i.id
			JOIN recipes r ON r.id = ri.recipe_id
			WHERE i.user_id = ? AND r.user_id = ?
			ORDER BY i.name DESC`
		args = append(args, userID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []model.Ingredient
	for rows.Next() {
		var ing model.Ingredient
		if err := rows.Scan(&ing.ID, &ing.UserID, &ing.Name); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}

	return ingredients, rows.Err()
}

// GetByID retrieves an ingredient by ID, scoped to the owning user. An
// ingredient owned by a different user reads as not found.
func (r *IngredientRepository) GetByID(ctx context.Context, userID, id int64) (*model.Ingredient, error) {
	query := `SELECT id, user_id, name FROM ingredients WHERE id = ? AND user_id = ?`

	ingredient := &model.Ingredient{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&ingredient.ID, &ingredient.UserID, &ingredient.Name,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}

	return ingredient, nil
}

// UpdateName renames an ingredient, scoped to the owning user.
func (r *IngredientRepository) UpdateName(ctx context.Context, userID, id int64, name string) error {
	query := `UPDATE ingredients SET name = ? WHERE id = ? AND user_id = ?`

	_, err := r.db.ExecContext(ctx, query, name, id, userID)
	return err
}

// Delete removes an ingredient and, via the schema's cascade, its
// recipe associations. Scoped to the owning user.
func (r *IngredientRepository) Delete(ctx context.Context, userID, id int64) error {
	query := `DELETE FROM ingredients WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrIngredientNotFound
	}

	return nil
}

// GetOrCreateTx returns the user's ingredient with the given name,
// creating it within the transaction if it does not exist yet.
func (r *IngredientRepository) GetOrCreateTx(ctx context.Context, tx *sql.Tx, userID int64, name string) (*model.Ingredient, error) {
	ingredient := &model.Ingredient{}
	err := tx.QueryRowContext(ctx,
		`SELECT id, user_id, name FROM ingredients WHERE user_id = ? AND name = ?`,
		userID, name,
	).Scan(&ingredient.ID, &ingredient.UserID, &ingredient.Name)
	if err == nil {
		return ingredient, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO ingredients (user_id, name) VALUES (?, ?)`, userID, name)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &model.Ingredient{ID: id, UserID: userID, Name: name}, nil
}
