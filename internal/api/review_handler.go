package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/recallhq/flashcard-api/internal/api/shared"
	"github.com/recallhq/flashcard-api/internal/service/review"
)

// ReviewHandler handles review submission and due-set API requests.
type ReviewHandler struct {
	reviewService review.ReviewService
	validator     *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler with the given dependencies.
func NewReviewHandler(reviewService review.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
	}
}

// Submit handles POST /cards/{id}/review. It records a success or failure
// outcome for the card and returns the updated schedule.
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.reviewService.SubmitReview(r.Context(), userID, cardID, *req.Success)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ReviewResponse{
		CardID:         result.Review.CardID,
		UserID:         result.Review.UserID,
		Level:          result.Review.Level,
		LastReviewedAt: result.Review.LastReviewedAt,
		NextDueAt:      result.NextDueAt,
	})
}

// Due handles GET /collections/{id}/due. It returns the cards of the
// collection that are due for the caller, in insertion order. An optional
// "at" query parameter (RFC 3339) evaluates the due set at another instant.
func (h *ReviewHandler) Due(w http.ResponseWriter, r *http.Request) {
	userID, collectionID, ok := handleUserIDAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	var at time.Time
	if raw := r.URL.Query().Get("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest,
				"Invalid 'at' parameter: must be RFC 3339")
			return
		}
		at = parsed
	}

	due, err := h.reviewService.DueCards(r.Context(), userID, collectionID, at)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, due)
}
