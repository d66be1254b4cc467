package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/recallhq/flashcard-api/internal/domain"
)

// CollectionStore defines the interface for collection data persistence.
type CollectionStore interface {
	// Create saves a new collection to the store.
	// Returns validation errors from the domain Collection if data is invalid.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, collection *domain.Collection) error

	// GetByID retrieves a collection by its unique ID. The result carries
	// the owner ID and visibility flag the authorization resolver needs.
	// Returns ErrCollectionNotFound if the collection does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error)

	// ListByOwner retrieves all collections owned by the given user,
	// newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Collection, error)

	// Update saves changes to an existing collection.
	// Returns ErrCollectionNotFound if the collection does not exist.
	Update(ctx context.Context, collection *domain.Collection) error

	// Delete removes a collection from the store by its ID.
	// Returns ErrCollectionNotFound if the collection does not exist.
	//
	// Deletion cascades to the collection's cards and their reviews via
	// ON DELETE CASCADE foreign key constraints in the schema; application
	// code does not delete the dependents itself.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new CollectionStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) CollectionStore
}
