// Package review orchestrates the review workflow: it joins the pure
// scheduling engine in domain/srs with the stores and the authorization
// resolver, so a single call carries a review submission from HTTP input to
// a persisted schedule.
package review

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/recallhq/flashcard-api/internal/domain"
	"github.com/recallhq/flashcard-api/internal/domain/srs"
)

// Result is the outcome of a submitted review: the persisted review record
// and the instant the card becomes due again.
type Result struct {
	Review    *domain.Review `json:"review"`
	NextDueAt time.Time      `json:"next_due_at"`
}

// ReviewService provides review submission and due-set evaluation.
type ReviewService interface {
	// SubmitReview records a review outcome for a card on behalf of the
	// actor and persists the resulting schedule. The first review of a card
	// always lands on the lowest mastery level regardless of outcome.
	//
	// The actor needs read access to the card's parent collection: review
	// state is per-user, so reviewing a public collection never mutates
	// anything the collection owner can see.
	//
	// Returns store.ErrCardNotFound if the card does not exist,
	// access.ErrUnauthenticated or access.ErrForbidden on authorization
	// failure, and srs.ErrInvalidLevel if the stored review carries a
	// corrupted mastery level.
	SubmitReview(ctx context.Context, actorID, cardID uuid.UUID, success bool) (*Result, error)

	// DueCards evaluates which cards of a collection are due for the actor
	// at the given instant, in the collection's insertion order. Cards the
	// actor has never reviewed are not part of the due set. A zero now
	// defaults to the current time.
	//
	// Requires read access to the collection.
	DueCards(
		ctx context.Context,
		actorID, collectionID uuid.UUID,
		now time.Time,
	) ([]srs.DueCard, error)
}
