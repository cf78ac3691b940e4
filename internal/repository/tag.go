package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dev-abhisheks/recipe-app-api/internal/model"
)

var ErrTagNotFound = errors.New("tag not found")

// TagRepository handles tag persistence operations.
type TagRepository struct {
	db *sql.DB
}

// NewTagRepository creates a new TagRepository.
func NewTagRepository(db *sql.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create inserts a new tag and sets the generated ID on the tag struct.
func (r *TagRepository) Create(ctx context.Context, tag *model.Tag) error {
	query := `INSERT INTO tags (user_id, name) VALUES (?, ?)`

	result, err := r.db.ExecContext(ctx, query, tag.UserID, tag.Name)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	tag.ID = id
	return nil
}

// ListByUser retrieves all tags owned by a user, ordered by name
// descending. With assignedOnly set, only tags attached to at least one
// of the user's recipes are returned, deduplicated across recipes.
func (r *TagRepository) ListByUser(ctx context.Context, userID int64, assignedOnly bool) ([]model.Tag, error) {
	query := `SELECT id, user_id, name FROM tags WHERE user_id = ? ORDER BY name DESC`
	args := []any{userID}

	if assignedOnly {
		query = `SELECT DISTINCT t.id, t.user_id, t.name
			FROM tags t
			JOIN recipe_tags rt ON rt.tag_id = t.id
			JOIN recipes r ON r.id = rt.recipe_id
			WHERE t.user_id = ? AND r.user_id = ?
			ORDER BY t.name DESC`
		args = append(args, userID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}

	return tags, rows.Err()
}

// GetByID retrieves a tag by ID, scoped to the owning user. A tag owned
// by a different user reads as not found.
func (r *TagRepository) GetByID(ctx context.Context, userID, id int64) (*model.Tag, error) {
	query := `SELECT id, user_id, name FROM tags WHERE id = ? AND user_id = ?`

	tag := &model.Tag{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&tag.ID, &tag.UserID, &tag.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}

	return tag, nil
}

// UpdateName renames a tag, scoped to the owning user.
func (r *TagRepository) UpdateName(ctx context.Context, userID, id int64, name string) error {
	query := `UPDATE tags SET name = ? WHERE id = ? AND user_id = ?`

	_, err := r.db.ExecContext(ctx, query, name, id, userID)
	return err
}

// Delete removes a tag and, via the schema's cascade, its recipe
// associations. Scoped to the owning user.
func (r *TagRepository) Delete(ctx context.Context, userID, id int64) error {
	query := `DELETE FROM tags WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrTagNotFound
	}

	return nil
}

// GetOrCreateTx returns the user's tag with the given name, creating it
// within the transaction if it does not exist yet.
func (r *TagRepository) GetOrCreateTx(ctx context.Context, tx *sql.Tx, userID int64, name string) (*model.Tag, error) {
	tag := &model.Tag{}
	err := tx.QueryRowContext(ctx,
		`SELECT id, user_id, name FROM tags WHERE user_id = ? AND name = ?`,
		userID, name,
	).Scan(&tag.ID, &tag.UserID, &tag.Name)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO tags (user_id, name) VALUES (?, ?)`, userID, name)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &model.Tag{ID: id, UserID: userID, Name: name}, nil
}
