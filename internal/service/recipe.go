package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dev-abhisheks/recipe-app-api/internal/model"
	"github.com/dev-abhisheks/recipe-app-api/internal/repository"
	"github.com/dev-abhisheks/recipe-app-api/internal/validation"
)

var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeService handles recipe business logic, including the nested
// get-or-create of tags and ingredients on writes.
type RecipeService struct {
	recipes     *repository.RecipeRepository
	tags        *repository.TagRepository
	ingredients *repository.IngredientRepository
	validate    *validation.Validator
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(
	recipes *repository.RecipeRepository,
	tags *repository.TagRepository,
	ingredients *repository.IngredientRepository,
	validate *validation.Validator,
) *RecipeService {
	return &RecipeService{
		recipes:     recipes,
		tags:        tags,
		ingredients: ingredients,
		validate:    validate,
	}
}

// List returns the user's recipes in summary form, most recent first.
// Non-empty tagIDs or ingredientIDs restrict the result to recipes
// carrying at least one of the given tags, respectively ingredients.
func (s *RecipeService) List(ctx context.Context, userID int64, tagIDs, ingredientIDs []int64) ([]model.RecipeResponse, error) {
	recipes, err := s.recipes.ListByUser(ctx, userID, tagIDs, ingredientIDs)
	if err != nil {
		return nil, err
	}

	result := make([]model.RecipeResponse, len(recipes))
	for i, r := range recipes {
		result[i] = recipeToResponse(r)
	}
	return result, nil
}

// Get returns a single recipe in detail form. A recipe owned by a
// different user reads as not found.
func (s *RecipeService) Get(ctx context.Context, userID, id int64) (model.RecipeDetailResponse, error) {
	recipe, err := s.recipes.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return model.RecipeDetailResponse{}, ErrRecipeNotFound
		}
		return model.RecipeDetailResponse{}, err
	}

	return recipeToDetail(recipe), nil
}

// Create creates a recipe for the user. Nested tags and ingredients are
// get-or-created by name and attached within the same transaction.
func (s *RecipeService) Create(ctx context.Context, userID int64, req model.RecipeRequest) (model.RecipeDetailResponse, error) {
	if err := s.validate.Validate(req); err != nil {
		return model.RecipeDetailResponse{}, err
	}

	recipe := &model.Recipe{
		UserID:      userID,
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       normalizePrice(req.Price),
		Link:        req.Link,
		Description: req.Description,
	}

	tx, err := s.recipes.BeginTx(ctx)
	if err != nil {
		return model.RecipeDetailResponse{}, err
	}
	defer tx.Rollback()

	if err := s.recipes.CreateTx(ctx, tx, recipe); err != nil {
		return model.RecipeDetailResponse{}, err
	}
	if err := s.replaceTagsTx(ctx, tx, userID, recipe.ID, req.Tags); err != nil {
		return model.RecipeDetailResponse{}, err
	}
	if err := s.replaceIngredientsTx(ctx, tx, userID, recipe.ID, req.Ingredients); err != nil {
		return model.RecipeDetailResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.RecipeDetailResponse{}, err
	}

	return s.Get(ctx, userID, recipe.ID)
}

// Update applies a partial update. Nil fields are left untouched; a
// non-nil tags or ingredients list replaces the association set
// wholesale, with names get-or-created for the user.
func (s *RecipeService) Update(ctx context.Context, userID, id int64, req model.UpdateRecipeRequest) (model.RecipeDetailResponse, error) {
	if err := s.validate.Validate(req); err != nil {
		return model.RecipeDetailResponse{}, err
	}

	recipe, err := s.recipes.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return model.RecipeDetailResponse{}, ErrRecipeNotFound
		}
		return model.RecipeDetailResponse{}, err
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.TimeMinutes != nil {
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		recipe.Price = normalizePrice(*req.Price)
	}
	if req.Link != nil {
		recipe.Link = *req.Link
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}

	tx, err := s.recipes.BeginTx(ctx)
	if err != nil {
		return model.RecipeDetailResponse{}, err
	}
	defer tx.Rollback()

	if err := s.recipes.UpdateTx(ctx, tx, recipe); err != nil {
		return model.RecipeDetailResponse{}, err
	}
	if req.Tags != nil {
		if err := s.replaceTagsTx(ctx, tx, userID, recipe.ID, *req.Tags); err != nil {
			return model.RecipeDetailResponse{}, err
		}
	}
	if req.Ingredients != nil {
		if err := s.replaceIngredientsTx(ctx, tx, userID, recipe.ID, *req.Ingredients); err != nil {
			return model.RecipeDetailResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return model.RecipeDetailResponse{}, err
	}

	return s.Get(ctx, userID, recipe.ID)
}

// Replace overwrites all recipe fields with the request, including the
// optional ones, and replaces the association sets when present.
func (s *RecipeService) Replace(ctx context.Context, userID, id int64, req model.RecipeRequest) (model.RecipeDetailResponse, error) {
	if err := s.validate.Validate(req); err != nil {
		return model.RecipeDetailResponse{}, err
	}

	recipe, err := s.recipes.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return model.RecipeDetailResponse{}, ErrRecipeNotFound
		}
		return model.RecipeDetailResponse{}, err
	}

	recipe.Title = req.Title
	recipe.TimeMinutes = req.TimeMinutes
	recipe.Price = normalizePrice(req.Price)
	recipe.Link = req.Link
	recipe.Description = req.Description

	tx, err := s.recipes.BeginTx(ctx)
	if err != nil {
		return model.RecipeDetailResponse{}, err
	}
	defer tx.Rollback()

	if err := s.recipes.UpdateTx(ctx, tx, recipe); err != nil {
		return model.RecipeDetailResponse{}, err
	}
	if req.Tags != nil {
		if err := s.replaceTagsTx(ctx, tx, userID, recipe.ID, req.Tags); err != nil {
			return model.RecipeDetailResponse{}, err
		}
	}
	if req.Ingredients != nil {
		if err := s.replaceIngredientsTx(ctx, tx, userID, recipe.ID, req.Ingredients); err != nil {
			return model.RecipeDetailResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return model.RecipeDetailResponse{}, err
	}

	return s.Get(ctx, userID, recipe.ID)
}

// Delete removes a recipe and its association rows.
func (s *RecipeService) Delete(ctx context.Context, userID, id int64) error {
	err := s.recipes.Delete(ctx, userID, id)
	if errors.Is(err, repository.ErrRecipeNotFound) {
		return ErrRecipeNotFound
	}
	return err
}

// replaceTagsTx get-or-creates every named tag for the user and swaps
// the recipe's tag set to exactly those, deduplicating repeated names.
func (s *RecipeService) replaceTagsTx(ctx context.Context, tx *sql.Tx, userID, recipeID int64, reqs []model.TagRequest) error {
	ids := make([]int64, 0, len(reqs))
	seen := make(map[int64]bool, len(reqs))
	for _, tr := range reqs {
		tag, err := s.tags.GetOrCreateTx(ctx, tx, userID, tr.Name)
		if err != nil {
			return err
		}
		if !seen[tag.ID] {
			seen[tag.ID] = true
			ids = append(ids, tag.ID)
		}
	}
	return s.recipes.ReplaceTagsTx(ctx, tx, recipeID, ids)
}

// replaceIngredientsTx mirrors replaceTagsTx for ingredients.
func (s *RecipeService) replaceIngredientsTx(ctx context.Context, tx *sql.Tx, userID, recipeID int64, reqs []model.IngredientRequest) error {
	ids := make([]int64, 0, len(reqs))
	seen := make(map[int64]bool, len(reqs))
	for _, ir := range reqs {
		ingredient, err := s.ingredients.GetOrCreateTx(ctx, tx, userID, ir.Name)
		if err != nil {
			return err
		}
		if !seen[ingredient.ID] {
			seen[ingredient.ID] = true
			ids = append(ids, ingredient.ID)
		}
	}
	return s.recipes.ReplaceIngredientsTx(ctx, tx, recipeID, ids)
}

// normalizePrice pads a validated price to two decimal places, so
// "3.3" stores as "3.30" and "5" as "5.00".
func normalizePrice(price string) string {
	whole, frac, found := strings.Cut(price, ".")
	if !found {
		return whole + ".00"
	}
	for len(frac) < 2 {
		frac += "0"
	}
	return whole + "." + frac
}

func recipeToResponse(r model.Recipe) model.RecipeResponse {
	return model.RecipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Tags:        tagsToResponse(r.Tags),
		Ingredients: ingredientsToResponse(r.Ingredients),
	}
}

func recipeToDetail(r *model.Recipe) model.RecipeDetailResponse {
	return model.RecipeDetailResponse{
		RecipeResponse: recipeToResponse(*r),
		Description:    r.Description,
	}
}
