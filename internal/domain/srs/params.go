package srs

import "github.com/recallhq/flashcard-api/internal/domain"

// Params defines the configurable parameters for the scheduling algorithm.
type Params struct {
	// IntervalDays maps a mastery level to the number of days until the
	// next review. Indexed by level - MinMasteryLevel.
	IntervalDays [domain.MaxMasteryLevel - domain.MinMasteryLevel + 1]int
}

// NewDefaultParams creates a new Params instance with the default interval
// table: each level doubles the previous interval.
func NewDefaultParams() *Params {
	return &Params{
		IntervalDays: [5]int{1, 2, 4, 8, 16},
	}
}

// intervalDays returns the review interval for the given level. The level
// is clamped into the valid range before indexing, protecting against
// out-of-range data that may appear in the store in the future.
func (p *Params) intervalDays(level int) int {
	return p.IntervalDays[clampLevel(level)-domain.MinMasteryLevel]
}

// clampLevel saturates a level into [MinMasteryLevel, MaxMasteryLevel].
func clampLevel(level int) int {
	if level < domain.MinMasteryLevel {
		return domain.MinMasteryLevel
	}
	if level > domain.MaxMasteryLevel {
		return domain.MaxMasteryLevel
	}
	return level
}
