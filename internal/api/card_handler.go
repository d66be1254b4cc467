package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/recallhq/flashcard-api/internal/api/shared"
	"github.com/recallhq/flashcard-api/internal/service"
)

// CardHandler handles card management API requests. Cards are nested under
// their parent collection for creation and listing, and addressed directly
// by ID for reads and writes.
type CardHandler struct {
	cardService service.CardService
	validator   *validator.Validate
}

// NewCardHandler creates a new CardHandler with the given dependencies.
func NewCardHandler(cardService service.CardService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
		validator:   validator.New(),
	}
}

// Create handles POST /collections/{id}/cards.
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, collectionID, ok := handleUserIDAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	var req CreateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	card, err := h.cardService.Create(r.Context(), userID, collectionID, service.CreateCardParams{
		FrontText: req.FrontText,
		BackText:  req.BackText,
		FrontURL:  req.FrontURL,
		BackURL:   req.BackURL,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, card)
}

// List handles GET /collections/{id}/cards, in insertion order.
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, collectionID, ok := handleUserIDAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	cards, err := h.cardService.List(r.Context(), userID, collectionID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cards)
}

// Get handles GET /cards/{id}.
func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	card, err := h.cardService.Get(r.Context(), userID, cardID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// Update handles PATCH /cards/{id}.
func (h *CardHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	var req UpdateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	card, err := h.cardService.Update(r.Context(), userID, cardID, service.UpdateCardParams{
		FrontText: req.FrontText,
		BackText:  req.BackText,
		FrontURL:  req.FrontURL,
		BackURL:   req.BackURL,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// Delete handles DELETE /cards/{id}.
func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	if err := h.cardService.Delete(r.Context(), userID, cardID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
