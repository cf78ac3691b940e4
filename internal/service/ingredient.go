package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dev-abhisheks/recipe-app-api/internal/model"
	"github.com/dev-abhisheks/recipe-app-api/internal/repository"
	"github.com/dev-abhisheks/recipe-app-api/internal/validation"
)

var ErrIngredientNotFound = errors.New("ingredient not found")

// IngredientService handles ingredient business logic.
type IngredientService struct {
	repo     *repository.IngredientRepository
	validate *validation.Validator
}

// NewIngredientService creates a new IngredientService.
func NewIngredientService(repo *repository.IngredientRepository, validate *validation.Validator) *IngredientService {
	return &IngredientService{repo: repo, validate: validate}
}

// List returns the user's ingredients, ordered by name descending. With
// assignedOnly set, only ingredients attached to at least one of the
// user's recipes are returned.
func (s *IngredientService) List(ctx context.Context, userID int64, assignedOnly bool) ([]model.IngredientResponse, error) {
	ingredients, err := s.repo.ListByUser(ctx, userID, assignedOnly)
	if err != nil {
		return nil, err
	}

	return ingredientsToResponse(ingredients), nil
}

// Rename updates an ingredient's name. An ingredient owned by a
// different user reads as not found.
func (s *IngredientService) Rename(ctx context.Context, userID, id int64, req model.IngredientRequest) (model.IngredientResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validate.Validate(req); err != nil {
		return model.IngredientResponse{}, err
	}

	ingredient, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrIngredientNotFound) {
			return model.IngredientResponse{}, ErrIngredientNotFound
		}
		return model.IngredientResponse{}, err
	}

	if err := s.repo.UpdateName(ctx, userID, id, req.Name); err != nil {
		return model.IngredientResponse{}, err
	}
	ingredient.Name = req.Name

	return model.IngredientResponse{ID: ingredient.ID, Name: ingredient.Name}, nil
}

// Delete removes an ingredient and its recipe associations.
func (s *IngredientService) Delete(ctx context.Context, userID, id int64) error {
	err := s.repo.Delete(ctx, userID, id)
	if errors.Is(err, repository.ErrIngredientNotFound) {
		return ErrIngredientNotFound
	}
	return err
}

// ingredientsToResponse converts a slice of Ingredient to a slice of
// IngredientResponse, empty rather than nil for JSON lists.
func ingredientsToResponse(ingredients []model.Ingredient) []model.IngredientResponse {
	result := make([]model.IngredientResponse, len(ingredients))
	for i, ing := range ingredients {
		result[i] = model.IngredientResponse{ID: ing.ID, Name: ing.Name}
	}
	return result
}
