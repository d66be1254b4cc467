package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/recallhq/flashcard-api/internal/domain"
)

// ReviewStore defines the interface for review data persistence.
// Reviews are keyed by the unique (card, user) pair; at most one review
// exists per pair.
type ReviewStore interface {
	// Get retrieves the review for the given (card, user) pair.
	// Returns ErrReviewNotFound if the pair has never been reviewed.
	Get(ctx context.Context, cardID, userID uuid.UUID) (*domain.Review, error)

	// GetByUser retrieves all of a user's reviews keyed by card ID.
	// Used by the due-set evaluator to annotate a collection's cards.
	GetByUser(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]*domain.Review, error)

	// Upsert creates the review for a (card, user) pair or updates it in
	// place if one already exists. Implementations MUST make this a single
	// atomic statement (e.g. INSERT ... ON CONFLICT DO UPDATE) so that two
	// concurrent reviews of the same pair serialize in the database instead
	// of silently losing one level transition.
	//
	// Returns validation errors from the domain Review if data is invalid.
	// Returns ErrInvalidEntity if the card or user does not exist.
	Upsert(ctx context.Context, review *domain.Review) error

	// WithTx returns a new ReviewStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) ReviewStore
}
