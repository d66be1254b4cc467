package domain

import (
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardCollectionEmpty is returned when a card's collection ID is empty or nil.
	ErrCardCollectionEmpty = errors.New("card collection ID cannot be empty")

	// ErrCardFrontEmpty is returned when a card's front text is empty.
	ErrCardFrontEmpty = errors.New("card front text cannot be empty")

	// ErrCardBackEmpty is returned when a card's back text is empty.
	ErrCardBackEmpty = errors.New("card back text cannot be empty")

	// ErrCardTextTooLong is returned when a card side exceeds the length limit.
	ErrCardTextTooLong = errors.New("card text must be at most 1000 characters")

	// ErrCardMediaURLInvalid is returned when a media reference is not a valid URL.
	ErrCardMediaURLInvalid = errors.New("card media reference must be a valid URL")
)

// Card is a single flashcard belonging to exactly one collection.
// FrontURL and BackURL are optional media references shown alongside
// the text of each side.
type Card struct {
	ID           uuid.UUID `json:"id"`
	CollectionID uuid.UUID `json:"collection_id"`
	FrontText    string    `json:"front_text"`
	BackText     string    `json:"back_text"`
	FrontURL     string    `json:"front_url,omitempty"`
	BackURL      string    `json:"back_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewCard creates a new Card in the given collection.
// It generates a new UUID for the card ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewCard(collectionID uuid.UUID, frontText, backText, frontURL, backURL string) (*Card, error) {
	now := time.Now().UTC()
	card := &Card{
		ID:           uuid.New(),
		CollectionID: collectionID,
		FrontText:    frontText,
		BackText:     backText,
		FrontURL:     frontURL,
		BackURL:      backURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.CollectionID == uuid.Nil {
		return ErrCardCollectionEmpty
	}

	if c.FrontText == "" {
		return ErrCardFrontEmpty
	}
	if c.BackText == "" {
		return ErrCardBackEmpty
	}
	if len(c.FrontText) > 1000 || len(c.BackText) > 1000 {
		return ErrCardTextTooLong
	}

	for _, ref := range []string{c.FrontURL, c.BackURL} {
		if ref == "" {
			continue
		}
		u, err := url.Parse(ref)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return ErrCardMediaURLInvalid
		}
	}

	return nil
}
