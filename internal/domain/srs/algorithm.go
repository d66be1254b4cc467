package srs

import (
	"time"

	"github.com/google/uuid"

	"github.com/recallhq/flashcard-api/internal/domain"
)

// applyOutcome determines the new mastery level after a review event.
//
// A pair with no prior review history always lands at the lowest level,
// whatever the outcome: a single first attempt does not yet establish
// mastery. For an existing review the level moves one step up on success
// and one step down on failure, saturating at both ends of the range
// (a level-5 success stays at 5, a level-1 failure stays at 1).
//
// Pure function; identical inputs always yield the identical new level.
func applyOutcome(existing *domain.Review, success bool) int {
	if existing == nil {
		return domain.MinMasteryLevel
	}

	if success {
		return clampLevel(existing.Level + 1)
	}
	return clampLevel(existing.Level - 1)
}

// nextDueAt computes the instant at which a card becomes eligible for
// review again. The interval is looked up from the params table by level;
// the level is clamped defensively before indexing. If lastReviewedAt is
// the zero time the reference instant is now.
func nextDueAt(level int, lastReviewedAt, now time.Time, params *Params) time.Time {
	base := lastReviewedAt
	if base.IsZero() {
		base = now
	}
	return base.Add(time.Duration(params.intervalDays(level)) * 24 * time.Hour)
}

// dueCards filters the given cards down to those currently eligible for
// review, annotated with their schedule. A card with no review record for
// this user is "new", not "due", and is excluded: reviewing it starts its
// schedule, but absence of history is not itself a due signal. Input order
// is preserved; callers needing due-soonest-first ordering sort downstream.
func dueCards(
	cards []*domain.Card,
	reviewsByCardID map[uuid.UUID]*domain.Review,
	now time.Time,
	params *Params,
) []DueCard {
	due := make([]DueCard, 0, len(cards))
	for _, card := range cards {
		review, ok := reviewsByCardID[card.ID]
		if !ok || review == nil {
			continue
		}

		next := nextDueAt(review.Level, review.LastReviewedAt, now, params)
		if next.After(now) {
			continue
		}

		due = append(due, DueCard{
			Card:           card,
			Level:          clampLevel(review.Level),
			LastReviewedAt: review.LastReviewedAt,
			NextDueAt:      next,
		})
	}
	return due
}
