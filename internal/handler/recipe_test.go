package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-abhisheks/recipe-app-api/internal/model"
)

// createRecipe posts a recipe and returns the decoded detail response.
func createRecipe(t *testing.T, router http.Handler, token string, body map[string]any) model.RecipeDetailResponse {
	t.Helper()

	w := doRequest(t, router, http.MethodPost, "/recipe/recipes", token, body)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var resp model.RecipeDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCreateRecipe(t *testing.T) {
	router, _ := newTestRouter(t)
	token, _ := registerTestUser(t, router, "chef@example.com")

	resp := createRecipe(t, router, token, map[string]any{
		"title":        "Chocolate cheesecake",
		"time_minutes": 30,
		"price":        "5.5",
		"link":         "https://example.com/cheesecake",
		"description":  "Rich and creamy",
		"tags":         []map[string]any{{"name": "Dessert"}, {"name": "Treat"}},
		"ingredients":  []map[string]any{{"name": "Chocolate"}, {"name": "Cream cheese"}},
	})

	assert.NotZero(t, resp.ID)
	assert.Equal(t, "Chocolate cheesecake", resp.Title)
	assert.Equal(t, 30, resp.TimeMinutes)
	assert.Equal(t, "5.50", resp.Price)
	assert.Equal(t, "https://example.com/cheesecake", resp.Link)
	assert.Equal(t, "Rich and creamy", resp.Description)
	assert.Len(t, resp.Tags, 2)
	assert.Len(t, resp.Ingredients, 2)
	for _, tag := range resp.Tags {
		assert.NotZero(t, tag.ID)
	}
}

func TestCreateRecipe_Invalid(t *testing.T) {
	router, _ := newTestRouter(t)
	token, _ := registerTestUser(t, router, "sloppy@example.com")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing title", map[string]any{"time_minutes": 10, "price": "5.00"}},
		{"zero minutes", map[string]any{"title": "Toast", "time_minutes": 0, "price": "5.00"}},
		{"bad price", map[string]any{"title": "Toast", "time_minutes": 10, "price": "1234.5"}},
		{"negative price", map[string]any{"title": "Toast", "time_minutes": 10, "price": "-3.00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/recipe/recipes", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestListRecipes(t *testing.T) {
	router, _ := newTestRouter(t)
	token, _ := registerTestUser(t, router, "lister@example.com")
	otherToken, _ := registerTestUser(t, router, "rival@example.com")

	first := createRecipe(t, router, token, map[string]any{
		"title": "Pancakes", "time_minutes": 10, "price": "3.00",
	})
	second := createRecipe(t, router, token, map[string]any{
		"title": "Waffles", "time_minutes": 15, "price": "4.00",
	})
	createRecipe(t, router, otherToken, map[string]any{
		"title": "Rival dish", "time_minutes": 20, "price": "9.00",
	})

	w := doRequest(t, router, http.MethodGet, "/recipe/recipes", token, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var recipes []model.RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipes))
	require.Len(t, recipes, 2)

	// Most recent first.
	assert.Equal(t, second.ID, recipes[0].ID)
	assert.Equal(t, first.ID, recipes[1].ID)
}

func TestListRecipes_FilterByTags(t *testing.T) {
	router, _ := newTestRouter(t)
	token, _ := registerTestUser(t, router, "taggy@example.com")

	curry := createRecipe(t, router, token, map[string]any{
		"title": "Thai curry", "time_minutes": 30, "price": "7.00",
		"tags": []map[string]any{{"name": "Vegan"}},
	})
	createRecipe(t, router, token, map[string]any{
		"title": "Steak", "time_minutes": 20, "price": "12.00",
		"tags": []map[string]any{{"name": "Meat"}},
	})

	require.Len(t, curry.Tags, 1)
	veganID := curry.Tags[0].ID

	w := doRequest(t, router, http.MethodGet, "/recipe/recipes?tags="+itoa(veganID), token, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var recipes []model.RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipes))
	require.Len(t, recipes, 1)
	assert.Equal(t, "Thai curry", recipes[0].Title)
}

func TestListRecipes_FilterByIngredients(t *testing.T) {
	router, _ := newTestRouter(t)
	token, _ := registerTestUser(t, router, "filterer@example.com")

	soup := createRecipe(t, router, token, map[string]any{
		"title": "Tomato soup", "time_minutes": 25, "price": "3.50",
		"ingredients": []map[string]any{{"name": "Tomatoes"}},
	})
	createRecipe(t, router, token, map[string]any{
		"title": "Plain rice", "time_minutes": 15, "price": "1.50",
	})

	tomatoID := soup.Ingredients[0].ID

	w := doRequest(t, router, http.MethodGet, "/recipe/recipes?ingredients="+itoa(tomatoID), token, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var recipes []model.RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipes))
	require.Len(t, recipes, 1)
	assert.Equal(t, "Tomato soup", recipes[0].Title)
}

func TestListRecipes_FilterInvalid(t *testing.T) {
	router, _ := newTestRouter(t)
	token, _ := registerTestUser(t, router, "badfilter@example.com")

	w := doRequest(t, router, http.MethodGet, "/recipe/recipes?tags=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodGet, "/recipe/recipes?ingredients=1,x", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRecipe(t *testing.T) {
	router, _ := newTestRouter(t)
	token, _ := registerTestUser(t, router, "getter@example.com")

	created := createRecipe(t, router, token, map[string]any{
		"title": "Shepherd's pie", "time_minutes": 45, "price": "6.00",
		"description": "Family favourite",
		"tags":        []map[string]any{{"name": "Dinner"}},
	})

	w := doRequest(t, router, http.MethodGet, "/recipe/recipes/"+itoa(created.ID), token, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp model.RecipeDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, created.ID, resp.ID)
	assert.Equal(t, "Shepherd's pie", resp.Title)
	assert.Equal(t, "Family favourite", resp.Description)
	require.Len(t, resp.Tags, 1)
	assert.Equal(t, "Dinner", resp.Tags[0].Name)
}

func TestGetRecipe_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)
	token, _ := registerTestUser(t, router, "seeker@example.com")
	otherToken, _ := registerTestUser(t, router, "hoarder@example.com")

	theirs := createRecipe(t, router, otherToken, map[string]any{
		"title": "Secret sauce", "time_minutes": 5, "price": "99.99",
	})

	w := doRequest(t, router, http.MethodGet, "/recipe/recipes/"+itoa(theirs.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodGet, "/recipe/recipes/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPatchRecipe(t *testing.T) {
	router, _ := newTestRouter(t)
	token, _ := registerTestUser(t, router, "editor@example.com")

	created := createRecipe(t, router, token, map[string]any{
		"title": "Spag bol", "time_minutes": 40, "price": "5.00",
		"tags": []map[string]any{{"name": "Italian"}},
	})

	w := doRequest(t, router, http.MethodPatch, "/recipe/recipes/"+itoa(created.ID), token, map[string]any{
		"title": "Spaghetti bolognese",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp model.RecipeDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Spaghetti bolognese", resp.Title)

	// Untouched fields keep their values.
	assert.Equal(t, 40, resp.TimeMinutes)
	assert.Equal(t, "5.00", resp.Price)
	require.Len(t, resp.Tags, 1)
	assert.Equal(t, "Italian", resp.Tags[0].Name)
}

func TestPatchRecipe_ReplaceTags(t *testing.T) {
	router, _ := newTestRouter(t)
	token, _ := registerTestUser(t, router, "swapper@example.com")

	created := createRecipe(t, router, token, map[string]any{
		"title": "Fry up", "time_minutes": 20, "price": "4.00",
		"tags": []map[string]any{{"name": "Breakfast"}},
	})

	w := doRequest(t, router, http.MethodPatch, "/recipe/recipes/"+itoa(created.ID), token, map[string]any{
		"tags": []map[string]any{{"name": "Lunch"}},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp model.RecipeDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Tags, 1)
	assert.Equal(t, "Lunch", resp.Tags[0].Name)

	// An empty list clears the set.
	w = doRequest(t, router, http.MethodPatch, "/recipe/recipes/"+itoa(created.ID), token, map[string]any{
		"tags": []map[string]any{},
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Tags)
}

func TestPutRecipe(t *testing.T) {
	router, _ := newTestRouter(t)
	token, _ := registerTestUser(t, router, "replacer@example.com")

	created := createRecipe(t, router, token, map[string]any{
		"title": "Old name", "time_minutes": 10, "price": "2.00",
		"link":        "https://example.com/old",
		"description": "Old description",
	})

	w := doRequest(t, router, http.MethodPut, "/recipe/recipes/"+itoa(created.ID), token, map[string]any{
		"title":        "New name",
		"time_minutes": 12,
		"price":        "3.00",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp model.RecipeDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "New name", resp.Title)
	assert.Equal(t, 12, resp.TimeMinutes)
	assert.Equal(t, "3.00", resp.Price)

	// Optional fields omitted from a full replace are cleared.
	assert.Empty(t, resp.Link)
	assert.Empty(t, resp.Description)
}

func TestPutRecipe_MissingRequired(t *testing.T) {
	router, _ := newTestRouter(t)
	token, _ := registerTestUser(t, router, "strict@example.com")

	created := createRecipe(t, router, token, map[string]any{
		"title": "Keeper", "time_minutes": 10, "price": "2.00",
	})

	w := doRequest(t, router, http.MethodPut, "/recipe/recipes/"+itoa(created.ID), token, map[string]any{
		"title": "No price or minutes",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteRecipe(t *testing.T) {
	router, _ := newTestRouter(t)
	token, _ := registerTestUser(t, router, "remover@example.com")

	created := createRecipe(t, router, token, map[string]any{
		"title": "Doomed dish", "time_minutes": 10, "price": "2.00",
	})

	w := doRequest(t, router, http.MethodDelete, "/recipe/recipes/"+itoa(created.ID), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, router, http.MethodGet, "/recipe/recipes/"+itoa(created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRecipe_OtherUsers(t *testing.T) {
	router, _ := newTestRouter(t)
	token, _ := registerTestUser(t, router, "thief@example.com")
	otherToken, _ := registerTestUser(t, router, "cook@example.com")

	theirs := createRecipe(t, router, otherToken, map[string]any{
		"title": "Guarded", "time_minutes": 10, "price": "2.00",
	})

	w := doRequest(t, router, http.MethodDelete, "/recipe/recipes/"+itoa(theirs.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Still there for its owner.
	w = doRequest(t, router, http.MethodGet, "/recipe/recipes/"+itoa(theirs.ID), otherToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
