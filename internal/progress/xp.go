// Package progress records what learners earn from play: XP, review
// schedules and session results.
package progress

import (
	"context"

	"github.com/pkg/errors"

	"promjum/internal/repository"
	"promjum/internal/scramble"
)

// ErrUnknownActivity is returned for an activity kind with no XP rule.
var ErrUnknownActivity = errors.New("unknown activity")

// Rule is the XP an activity is worth.
type Rule struct {
	Correct int
	Bonus   int
}

// DefaultRules maps activity kinds to their XP.
var DefaultRules = map[string]Rule{
	scramble.ActivityWordScramble: {Correct: 10, Bonus: 5},
}

// XPStore persists XP events.
type XPStore interface {
	Insert(ctx context.Context, e repository.XPEvent) (repository.XPEvent, error)
	Total(ctx context.Context, learnerID string) (int, error)
}

// XPService awards XP for activities.
type XPService struct {
	store XPStore
	rules map[string]Rule
}

// NewXPService creates an XP service using DefaultRules.
func NewXPService(store XPStore) *XPService {
	return &XPService{store: store, rules: DefaultRules}
}

// Points returns the XP an activity earns.
func (s *XPService) Points(a scramble.Activity) (int, error) {
	rule, ok := s.rules[a.Kind]
	if !ok {
		return 0, errors.Wrap(ErrUnknownActivity, a.Kind)
	}
	if !a.IsCorrect {
		return 0, nil
	}
	xp := rule.Correct
	if a.IsBonus {
		xp += rule.Bonus
	}
	return xp, nil
}

// Award records the activity and returns the XP added.
func (s *XPService) Award(ctx context.Context, learnerID string, a scramble.Activity) (int, error) {
	xp, err := s.Points(a)
	if err != nil {
		return 0, err
	}
	_, err = s.store.Insert(ctx, repository.XPEvent{
		LearnerID: learnerID,
		Activity:  a.Kind,
		IsCorrect: a.IsCorrect,
		IsBonus:   a.IsBonus,
		XP:        xp,
	})
	if err != nil {
		return 0, err
	}
	return xp, nil
}

// Total returns the learner's XP.
func (s *XPService) Total(ctx context.Context, learnerID string) (int, error) {
	return s.store.Total(ctx, learnerID)
}
