package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dev-abhisheks/recipe-app-api/internal/model"
)

var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeRepository handles recipe persistence operations, including the
// tag and ingredient association tables.
type RecipeRepository struct {
	db *sql.DB
}

// NewRecipeRepository creates a new RecipeRepository.
func NewRecipeRepository(db *sql.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// BeginTx starts a new database transaction.
func (r *RecipeRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, nil)
}

// CreateTx inserts a new recipe within the transaction and sets the
// generated ID and timestamps on the recipe struct.
func (r *RecipeRepository) CreateTx(ctx context.Context, tx *sql.Tx, recipe *model.Recipe) error {
	query := `INSERT INTO recipes (user_id, title, time_minutes, price, link, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx, query,
		recipe.UserID, recipe.Title, recipe.TimeMinutes, recipe.Price,
		recipe.Link, recipe.Description, formatTime(now), formatTime(now),
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	recipe.ID = id
	recipe.CreatedAt = now
	recipe.UpdatedAt = now
	return nil
}

// UpdateTx persists the recipe's core columns within the transaction,
// scoped to the owning user.
func (r *RecipeRepository) UpdateTx(ctx context.Context, tx *sql.Tx, recipe *model.Recipe) error {
	query := `UPDATE recipes SET title = ?, time_minutes = ?, price = ?, link = ?, description = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`

	now := time.Now().UTC()
	_, err := tx.ExecContext(ctx, query,
		recipe.Title, recipe.TimeMinutes, recipe.Price, recipe.Link,
		recipe.Description, formatTime(now), recipe.ID, recipe.UserID,
	)
	if err != nil {
		return err
	}

	recipe.UpdatedAt = now
	return nil
}

// ReplaceTagsTx replaces the recipe's tag associations wholesale within
// the transaction. An empty ID list clears them.
func (r *RecipeRepository) ReplaceTagsTx(ctx context.Context, tx *sql.Tx, recipeID int64, tagIDs []int64) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM recipe_tags WHERE recipe_id = ?`, recipeID); err != nil {
		return err
	}

	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_tags (recipe_id, tag_id) VALUES (?, ?)`,
			recipeID, tagID); err != nil {
			return err
		}
	}

	return nil
}

// ReplaceIngredientsTx replaces the recipe's ingredient associations
// wholesale within the transaction. An empty ID list clears them.
func (r *RecipeRepository) ReplaceIngredientsTx(ctx context.Context, tx *sql.Tx, recipeID int64, ingredientIDs []int64) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM recipe_ingredients WHERE recipe_id = ?`, recipeID); err != nil {
		return err
	}

	for _, ingredientID := range ingredientIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_ingredients (recipe_id, ingredient_id) VALUES (?, ?)`,
			recipeID, ingredientID); err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves a recipe with its tags and ingredients loaded,
// scoped to the owning user. A recipe owned by a different user reads
// as not found.
func (r *RecipeRepository) GetByID(ctx context.Context, userID, id int64) (*model.Recipe, error) {
	query := `SELECT id, user_id, title, time_minutes, price, link, description, created_at, updated_at
		FROM recipes WHERE id = ? AND user_id = ?`

	recipe, err := scanRecipe(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	tagsByRecipe, err := r.loadTags(ctx, []int64{recipe.ID})
	if err != nil {
		return nil, err
	}
	ingredientsByRecipe, err := r.loadIngredients(ctx, []int64{recipe.ID})
	if err != nil {
		return nil, err
	}

	recipe.Tags = tagsByRecipe[recipe.ID]
	recipe.Ingredients = ingredientsByRecipe[recipe.ID]
	return recipe, nil
}

// ListByUser retrieves the user's recipes ordered by ID descending,
// with tags and ingredients loaded. Non-empty tagIDs or ingredientIDs
// restrict the result to recipes carrying at least one of the given
// tags, respectively ingredients; a recipe matching through several
// associations appears once.
func (r *RecipeRepository) ListByUser(ctx context.Context, userID int64, tagIDs, ingredientIDs []int64) ([]model.Recipe, error) {
	query := `SELECT DISTINCT r.id, r.user_id, r.title, r.time_minutes, r.price, r.link, r.description, r.created_at, r.updated_at
		FROM recipes r`
	var args []any

	if len(tagIDs) > 0 {
		query += ` JOIN recipe_tags rt ON rt.recipe_id = r.id`
	}
	if len(ingredientIDs) > 0 {
		query += ` JOIN recipe_ingredients ri ON ri.recipe_id = r.id`
	}

	query += ` WHERE r.user_id = ?`
	args = append(args, userID)

	if len(tagIDs) > 0 {
		query += fmt.Sprintf(` AND rt.tag_id IN (%s)`, inPlaceholders(len(tagIDs)))
		for _, id := range tagIDs {
			args = append(args, id)
		}
	}
	if len(ingredientIDs) > 0 {
		query += fmt.Sprintf(` AND ri.ingredient_id IN (%s)`, inPlaceholders(len(ingredientIDs)))
		for _, id := range ingredientIDs {
			args = append(args, id)
		}
	}

	query += ` ORDER BY r.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []model.Recipe
	var recipeIDs []int64
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *recipe)
		recipeIDs = append(recipeIDs, recipe.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	tagsByRecipe, err := r.loadTags(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}
	ingredientsByRecipe, err := r.loadIngredients(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}

	for i := range recipes {
		recipes[i].Tags = tagsByRecipe[recipes[i].ID]
		recipes[i].Ingredients = ingredientsByRecipe[recipes[i].ID]
	}

	return recipes, nil
}

// Delete removes a recipe and, via the schema's cascade, its
// association rows. Scoped to the owning user.
func (r *RecipeRepository) Delete(ctx context.Context, userID, id int64) error {
	query := `DELETE FROM recipes WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrRecipeNotFound
	}

	return nil
}

// scanRecipe scans a sql.Row (or sql.Rows via its Scan method) into a
// model.Recipe, without associations.
func scanRecipe(scanner interface{ Scan(dest ...any) error }) (*model.Recipe, error) {
	recipe := &model.Recipe{}
	var createdAt, updatedAt string

	err := scanner.Scan(
		&recipe.ID, &recipe.UserID, &recipe.Title, &recipe.TimeMinutes,
		&recipe.Price, &recipe.Link, &recipe.Description, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if recipe.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if recipe.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return recipe, nil
}

// loadTags returns the tags attached to each of the given recipes,
// keyed by recipe ID.
func (r *RecipeRepository) loadTags(ctx context.Context, recipeIDs []int64) (map[int64][]model.Tag, error) {
	result := make(map[int64][]model.Tag)
	if len(recipeIDs) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`SELECT rt.recipe_id, t.id, t.user_id, t.name
		FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id IN (%s)
		ORDER BY t.name DESC`, inPlaceholders(len(recipeIDs)))

	args := make([]any, len(recipeIDs))
	for i, id := range recipeIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID int64
		var t model.Tag
		if err := rows.Scan(&recipeID, &t.ID, &t.UserID, &t.Name); err != nil {
			return nil, err
		}
		result[recipeID] = append(result[recipeID], t)
	}

	return result, rows.Err()
}

// loadIngredients returns the ingredients attached to each of the given
// recipes, keyed by recipe ID.
func (r *RecipeRepository) loadIngredients(ctx context.Context, recipeIDs []int64) (map[int64][]model.Ingredient, error) {
	result := make(map[int64][]model.Ingredient)
	if len(recipeIDs) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`SELECT ri.recipe_id, i.id, i.user_id, i.name
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id IN (%s)
		ORDER BY i.name DESC`, inPlaceholders(len(recipeIDs)))

	args := make([]any, len(recipeIDs))
	for i, id := range recipeIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID int64
		var ing model.Ingredient
		if err := rows.Scan(&recipeID, &ing.ID, &ing.UserID, &ing.Name); err != nil {
			return nil, err
		}
		result[recipeID] = append(result[recipeID], ing)
	}

	return result, rows.Err()
}

// inPlaceholders returns a comma-joined "?" list for n IN-clause
// arguments.
func inPlaceholders(n int) string {
	placeholders := make([]string, n)
	for i := range placeholders {
		placeholders[i] = "?"
	}
	return strings.Join(placeholders, ",")
}
