package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/recallhq/flashcard-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// The user's password must already be hashed by the caller.
	// Returns ErrEmailExists if the email is already in use.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List retrieves all users ordered by creation time, newest first.
	List(ctx context.Context) ([]*domain.User, error)

	// CountResources returns the number of collections, cards, and reviews
	// attributable to the given user. Used by the administrative surface.
	CountResources(ctx context.Context, id uuid.UUID) (*UserResourceCounts, error)

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	//
	// Deletion relies on database-level CASCADE DELETE to remove the user's
	// collections, their cards, and all the user's reviews. This is
	// configured through ON DELETE CASCADE foreign key constraints in the
	// schema.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}

// UserResourceCounts aggregates how much content a user owns or has produced.
type UserResourceCounts struct {
	Collections int `json:"collections_count"`
	Cards       int `json:"cards_count"`
	Reviews     int `json:"reviews_count"`
}
