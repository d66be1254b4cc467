package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Collection-specific validation errors
var (
	// ErrCollectionIDEmpty is returned when a collection ID is empty or nil.
	ErrCollectionIDEmpty = errors.New("collection ID cannot be empty")

	// ErrCollectionOwnerEmpty is returned when a collection's owner ID is empty or nil.
	ErrCollectionOwnerEmpty = errors.New("collection owner ID cannot be empty")

	// ErrCollectionTitleEmpty is returned when a collection's title is empty.
	ErrCollectionTitleEmpty = errors.New("collection title cannot be empty")

	// ErrCollectionTitleTooLong is returned when a collection's title exceeds the limit.
	ErrCollectionTitleTooLong = errors.New("collection title must be at most 255 characters")
)

// Collection is an owned set of flashcards. Its owner and visibility flag
// are the sole authorization inputs for the cards and reviews it contains;
// cards and reviews carry no independent visibility.
type Collection struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCollection creates a new Collection owned by the given user.
// It generates a new UUID for the collection ID and sets the
// creation/update timestamps. Returns an error if validation fails.
func NewCollection(ownerID uuid.UUID, title, description string, isPublic bool) (*Collection, error) {
	now := time.Now().UTC()
	collection := &Collection{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		IsPublic:    isPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := collection.Validate(); err != nil {
		return nil, err
	}

	return collection, nil
}

// Validate checks if the Collection has valid data.
// Returns an error if any field fails validation.
func (c *Collection) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCollectionIDEmpty
	}

	if c.OwnerID == uuid.Nil {
		return ErrCollectionOwnerEmpty
	}

	if c.Title == "" {
		return ErrCollectionTitleEmpty
	}
	if len(c.Title) > 255 {
		return ErrCollectionTitleTooLong
	}

	return nil
}
