package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/recallhq/flashcard-api/internal/domain"
)

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// Create saves a new card to the store.
	// Returns validation errors from the domain Card if data is invalid.
	// Returns ErrInvalidEntity if the parent collection does not exist.
	Create(ctx context.Context, card *domain.Card) error

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// ListByCollection retrieves all cards in the given collection in
	// insertion order.
	ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]*domain.Card, error)

	// Update saves changes to an existing card.
	// Returns ErrCardNotFound if the card does not exist.
	Update(ctx context.Context, card *domain.Card) error

	// Delete removes a card from the store by its ID.
	// Returns ErrCardNotFound if the card does not exist.
	//
	// Deletion relies on database-level CASCADE DELETE to remove the
	// card's reviews.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new CardStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) CardStore
}
