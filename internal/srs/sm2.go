// Package srs schedules vocabulary reviews with the SM-2 algorithm.
package srs

import (
	"math"
	"time"
)

// Default settings for new cards
const (
	InitialInterval   = 1
	InitialEaseFactor = 2.5
	MinEaseFactor     = 1.3
)

// Card is one learner's schedule for one word.
type Card struct {
	LearnerID    string
	WordID       string
	EaseFactor   float64
	Interval     int
	Repetitions  int
	LastReviewed time.Time
	NextReview   time.Time
}

// NewCard returns an unreviewed card that is due immediately.
func NewCard(learnerID, wordID string, now time.Time) Card {
	return Card{
		LearnerID:  learnerID,
		WordID:     wordID,
		EaseFactor: InitialEaseFactor,
		NextReview: now,
	}
}

// Due reports whether the card should be reviewed at now.
func (c Card) Due(now time.Time) bool {
	return !c.NextReview.After(now)
}

// Review updates the card for a review of the given quality.
// quality: 0 (blackout) to 5 (perfect recollection)
func Review(c Card, quality int, now time.Time) Card {
	if quality < 0 {
		quality = 0
	}
	if quality > 5 {
		quality = 5
	}

	// EF' = EF + (0.1 - (5-q) * (0.08 + (5-q)*0.02)), floored at 1.3
	q := float64(quality)
	ease := c.EaseFactor
	if ease == 0 {
		ease = InitialEaseFactor
	}
	ease += 0.1 - (5-q)*(0.08+(5-q)*0.02)
	if ease < MinEaseFactor {
		ease = MinEaseFactor
	}

	if quality < 3 {
		c.Repetitions = 0
		c.Interval = InitialInterval
	} else {
		switch c.Repetitions {
		case 0:
			c.Interval = 1
		case 1:
			c.Interval = 6
		default:
			c.Interval = int(math.Ceil(float64(c.Interval) * ease))
		}
		c.Repetitions++
	}

	c.EaseFactor = ease
	c.LastReviewed = now
	c.NextReview = now.AddDate(0, 0, c.Interval)
	return c
}

// Quality grades a scramble result for SM-2. Solving without hints is
// perfect recall; the grade drops with the share of letters revealed, and a
// word the game had to solve counts as a lapse.
func Quality(success bool, hintsUsed, wordLength int) int {
	if !success {
		return 1
	}
	if hintsUsed <= 0 || wordLength <= 0 {
		return 5
	}
	// Integer comparisons against 20% and 50% of the word length.
	switch {
	case hintsUsed*5 <= wordLength:
		return 4
	case hintsUsed*2 <= wordLength:
		return 3
	default:
		return 2
	}
}
