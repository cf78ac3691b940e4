package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dev-abhisheks/recipe-app-api/internal/model"
	"github.com/dev-abhisheks/recipe-app-api/internal/repository"
	"github.com/dev-abhisheks/recipe-app-api/internal/validation"
)

var ErrTagNotFound = errors.New("tag not found")

// TagService handles tag business logic.
type TagService struct {
	repo     *repository.TagRepository
	validate *validation.Validator
}

// NewTagService creates a new TagService.
func NewTagService(repo *repository.TagRepository, validate *validation.Validator) *TagService {
	return &TagService{repo: repo, validate: validate}
}

// List returns the user's tags, ordered by name descending. With
// assignedOnly set, only tags attached to at least one of the user's
// recipes are returned.
func (s *TagService) List(ctx context.Context, userID int64, assignedOnly bool) ([]model.TagResponse, error) {
	tags, err := s.repo.ListByUser(ctx, userID, assignedOnly)
	if err != nil {
		return nil, err
	}

	return tagsToResponse(tags), nil
}

// Rename updates a tag's name. A tag owned by a different user reads as
// not found.
func (s *TagService) Rename(ctx context.Context, userID, id int64, req model.TagRequest) (model.TagResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validate.Validate(req); err != nil {
		return model.TagResponse{}, err
	}

	tag, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrTagNotFound) {
			return model.TagResponse{}, ErrTagNotFound
		}
		return model.TagResponse{}, err
	}

	if err := s.repo.UpdateName(ctx, userID, id, req.Name); err != nil {
		return model.TagResponse{}, err
	}
	tag.Name = req.Name

	return model.TagResponse{ID: tag.ID, Name: tag.Name}, nil
}

// Delete removes a tag and its recipe associations.
func (s *TagService) Delete(ctx context.Context, userID, id int64) error {
	err := s.repo.Delete(ctx, userID, id)
	if errors.Is(err, repository.ErrTagNotFound) {
		return ErrTagNotFound
	}
	return err
}

// tagsToResponse converts a slice of Tag to a slice of TagResponse. The
// zero length case returns an empty slice so lists serialize as [].
func tagsToResponse(tags []model.Tag) []model.TagResponse {
	result := make([]model.TagResponse, len(tags))
	for i, t := range tags {
		result[i] = model.TagResponse{ID: t.ID, Name: t.Name}
	}
	return result
}
