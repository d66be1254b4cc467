package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/recallhq/flashcard-api/internal/api/shared"
	"github.com/recallhq/flashcard-api/internal/service"
)

// CollectionHandler handles collection management API requests.
type CollectionHandler struct {
	collectionService service.CollectionService
	validator         *validator.Validate
}

// NewCollectionHandler creates a new CollectionHandler with the given dependencies.
func NewCollectionHandler(collectionService service.CollectionService) *CollectionHandler {
	return &CollectionHandler{
		collectionService: collectionService,
		validator:         validator.New(),
	}
}

// Create handles POST /collections.
func (h *CollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateCollectionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	collection, err := h.collectionService.Create(r.Context(), userID, service.CreateCollectionParams{
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, collection)
}

// List handles GET /collections, returning the collections the caller owns.
func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	collections, err := h.collectionService.ListOwned(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, collections)
}

// Get handles GET /collections/{id}.
func (h *CollectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, collectionID, ok := handleUserIDAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	collection, err := h.collectionService.Get(r.Context(), userID, collectionID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, collection)
}

// Update handles PATCH /collections/{id}.
func (h *CollectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, collectionID, ok := handleUserIDAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	var req UpdateCollectionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	collection, err := h.collectionService.Update(
		r.Context(), userID, collectionID, service.UpdateCollectionParams{
			Title:       req.Title,
			Description: req.Description,
			IsPublic:    req.IsPublic,
		})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, collection)
}

// Delete handles DELETE /collections/{id}.
func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, collectionID, ok := handleUserIDAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	if err := h.collectionService.Delete(r.Context(), userID, collectionID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
