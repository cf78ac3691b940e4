package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dev-abhisheks/recipe-app-api/internal/middleware"
	"github.com/dev-abhisheks/recipe-app-api/internal/model"
	"github.com/dev-abhisheks/recipe-app-api/internal/service"
	"github.com/dev-abhisheks/recipe-app-api/internal/validation"
)

// RecipeHandler handles HTTP requests for recipes.
type RecipeHandler struct {
	service *service.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(svc *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{service: svc}
}

// HandleListRecipes handles GET /recipe/recipes requests. The tags and
// ingredients query parameters accept comma separated IDs and narrow the
// result to recipes carrying all of the named associations.
func (h *RecipeHandler) HandleListRecipes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	tagIDs, err := parseIDList(r.URL.Query().Get("tags"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid tags filter"))
		return
	}
	ingredientIDs, err := parseIDList(r.URL.Query().Get("ingredients"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid ingredients filter"))
		return
	}

	resp, err := h.service.List(r.Context(), userID, tagIDs, ingredientIDs)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleCreateRecipe handles POST /recipe/recipes requests.
func (h *RecipeHandler) HandleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.RecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	resp, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		var verr *validation.Error
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, errorResponse(verr.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleGetRecipe handles GET /recipe/recipes/{id} requests.
func (h *RecipeHandler) HandleGetRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id, err := parseID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse("recipe not found"))
		return
	}

	resp, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdateRecipe handles PATCH /recipe/recipes/{id} requests. Absent
// fields keep their stored values.
func (h *RecipeHandler) HandleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id, err := parseID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse("recipe not found"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.UpdateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	resp, err := h.service.Update(r.Context(), userID, id, req)
	if err != nil {
		var verr *validation.Error
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, errorResponse(verr.Error()))
		case errors.Is(err, service.ErrRecipeNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleReplaceRecipe handles PUT /recipe/recipes/{id} requests. The
// stored recipe is overwritten with the request body.
func (h *RecipeHandler) HandleReplaceRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id, err := parseID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse("recipe not found"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.RecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	resp, err := h.service.Replace(r.Context(), userID, id, req)
	if err != nil {
		var verr *validation.Error
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, errorResponse(verr.Error()))
		case errors.Is(err, service.ErrRecipeNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDeleteRecipe handles DELETE /recipe/recipes/{id} requests.
func (h *RecipeHandler) HandleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id, err := parseID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse("recipe not found"))
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseIDList splits a comma separated query value into numeric IDs. An
// empty value means no filter.
func parseIDList(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
