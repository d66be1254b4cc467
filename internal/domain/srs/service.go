package srs

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/recallhq/flashcard-api/internal/domain"
)

// Common errors
var (
	// ErrInvalidLevel is returned when a stored mastery level falls outside
	// the valid range. The tracker never produces such a level, so seeing
	// this error means upstream code corrupted the data; it is surfaced
	// loudly rather than silently repaired.
	ErrInvalidLevel = fmt.Errorf("%w: mastery level out of range", domain.ErrInvalidState)
)

// Schedule is the result of recording a review outcome: the new mastery
// level, the instant the review was recorded, and the next due time
// derived from both.
type Schedule struct {
	Level          int       `json:"level"`
	LastReviewedAt time.Time `json:"last_reviewed_at"`
	NextDueAt      time.Time `json:"next_due_at"`
}

// DueCard is a card eligible for review, annotated with its current
// schedule state.
type DueCard struct {
	Card           *domain.Card `json:"card"`
	Level          int          `json:"level"`
	LastReviewedAt time.Time    `json:"last_reviewed_at"`
	NextDueAt      time.Time    `json:"next_due_at"`
}

// Service defines the scheduling operations of the review engine. All
// methods are pure functions of their arguments and the configured interval
// table; they perform no I/O and are safe for concurrent use without
// coordination.
type Service interface {
	// RecordOutcome computes the schedule that results from a review event.
	// existing is the prior review for the (card, user) pair, or nil when
	// the pair has never been reviewed; in that case the schedule starts at
	// the lowest level regardless of success. Returns ErrInvalidLevel if
	// the prior review carries a level outside the valid range.
	RecordOutcome(existing *domain.Review, success bool, now time.Time) (Schedule, error)

	// NextDue computes when a card with the given level and last-review
	// instant becomes eligible again. A zero lastReviewedAt uses now as the
	// reference instant. The level is clamped defensively.
	NextDue(level int, lastReviewedAt, now time.Time) time.Time

	// DueCards filters cards down to those due at the given instant,
	// preserving input order. Cards without a review record are excluded.
	DueCards(cards []*domain.Card, reviewsByCardID map[uuid.UUID]*domain.Review, now time.Time) []DueCard
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduling service with the default
// interval table.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a new scheduling service with custom
// parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// RecordOutcome implements the Service interface.
func (s *defaultService) RecordOutcome(
	existing *domain.Review,
	success bool,
	now time.Time,
) (Schedule, error) {
	if existing != nil &&
		(existing.Level < domain.MinMasteryLevel || existing.Level > domain.MaxMasteryLevel) {
		return Schedule{}, fmt.Errorf("level %d: %w", existing.Level, ErrInvalidLevel)
	}

	level := applyOutcome(existing, success)
	return Schedule{
		Level:          level,
		LastReviewedAt: now,
		NextDueAt:      nextDueAt(level, now, now, s.params),
	}, nil
}

// NextDue implements the Service interface.
func (s *defaultService) NextDue(level int, lastReviewedAt, now time.Time) time.Time {
	return nextDueAt(level, lastReviewedAt, now, s.params)
}

// DueCards implements the Service interface.
func (s *defaultService) DueCards(
	cards []*domain.Card,
	reviewsByCardID map[uuid.UUID]*domain.Review,
	now time.Time,
) []DueCard {
	return dueCards(cards, reviewsByCardID, now, s.params)
}

// IsInvalidLevel reports whether err signals an out-of-range mastery level.
func IsInvalidLevel(err error) bool {
	return errors.Is(err, ErrInvalidLevel)
}
