package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dev-abhisheks/recipe-app-api/internal/middleware"
	"github.com/dev-abhisheks/recipe-app-api/internal/model"
	"github.com/dev-abhisheks/recipe-app-api/internal/service"
	"github.com/dev-abhisheks/recipe-app-api/internal/validation"
)

// TagHandler handles HTTP requests for recipe tags.
type TagHandler struct {
	service *service.TagService
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(svc *service.TagService) *TagHandler {
	return &TagHandler{service: svc}
}

// HandleListTags handles GET /recipe/tags requests. The assigned_only
// query parameter limits the result to tags attached to at least one of
// the caller's recipes.
func (h *TagHandler) HandleListTags(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	assignedOnly := false
	if raw := r.URL.Query().Get("assigned_only"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse("invalid assigned_only value"))
			return
		}
		assignedOnly = parsed
	}

	resp, err := h.service.List(r.Context(), userID, assignedOnly)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdateTag handles PATCH /recipe/tags/{id} requests.
func (h *TagHandler) HandleUpdateTag(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id, err := parseID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse("tag not found"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	resp, err := h.service.Rename(r.Context(), userID, id, req)
	if err != nil {
		var verr *validation.Error
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, errorResponse(verr.Error()))
		case errors.Is(err, service.ErrTagNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDeleteTag handles DELETE /recipe/tags/{id} requests.
func (h *TagHandler) HandleDeleteTag(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id, err := parseID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse("tag not found"))
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
