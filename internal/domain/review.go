package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Mastery level bounds. The level for a (card, user) pair always stays
// inside this range; transitions saturate at the boundaries instead of
// wrapping or overflowing.
const (
	MinMasteryLevel = 1
	MaxMasteryLevel = 5
)

// Common validation errors for Review
var (
	ErrEmptyReviewCardID = errors.New("review card ID cannot be empty")
	ErrEmptyReviewUserID = errors.New("review user ID cannot be empty")
	ErrLevelOutOfRange   = errors.New("mastery level must be between 1 and 5")
)

// Review records a user's recall state for a single card. At most one
// Review exists per (card, user) pair; it is created on the first review
// event and updated in place on subsequent events. A Review never outlives
// its card or its user (enforced by cascade in the persistence layer).
type Review struct {
	CardID         uuid.UUID `json:"card_id"`
	UserID         uuid.UUID `json:"user_id"`
	Level          int       `json:"level"`
	LastReviewedAt time.Time `json:"last_reviewed_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewReview creates the first Review for a (card, user) pair. First
// exposure always lands at the lowest mastery level regardless of the
// outcome; a single attempt does not yet establish mastery.
func NewReview(cardID, userID uuid.UUID, reviewedAt time.Time) (*Review, error) {
	review := &Review{
		CardID:         cardID,
		UserID:         userID,
		Level:          MinMasteryLevel,
		LastReviewedAt: reviewedAt,
		CreatedAt:      reviewedAt,
		UpdatedAt:      reviewedAt,
	}

	if err := review.Validate(); err != nil {
		return nil, err
	}

	return review, nil
}

// Validate checks if the Review has valid data.
// Returns an error if any field fails validation.
func (r *Review) Validate() error {
	if r.CardID == uuid.Nil {
		return ErrEmptyReviewCardID
	}

	if r.UserID == uuid.Nil {
		return ErrEmptyReviewUserID
	}

	if r.Level < MinMasteryLevel || r.Level > MaxMasteryLevel {
		return ErrLevelOutOfRange
	}

	return nil
}
