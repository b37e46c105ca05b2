package progress

import (
	"context"
	"time"

	"promjum/internal/scramble"
	"promjum/internal/srs"
)

// CardStore persists review cards.
type CardStore interface {
	Apply(ctx context.Context, learnerID, wordID string, now time.Time, fn func(srs.Card) srs.Card) (srs.Card, error)
	Due(ctx context.Context, learnerID string, now time.Time, limit int) ([]srs.Card, error)
	CountDue(ctx context.Context, learnerID string, now time.Time) (int, error)
}

// ReviewService turns scramble outcomes into SM-2 reviews.
type ReviewService struct {
	store CardStore
	now   func() time.Time
}

// NewReviewService creates a review service.
func NewReviewService(store CardStore) *ReviewService {
	return &ReviewService{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// Record grades the review and reschedules the word's card.
func (s *ReviewService) Record(ctx context.Context, learnerID string, r scramble.Review) (srs.Card, error) {
	now := s.now()
	quality := srs.Quality(r.Success, r.HintsUsed, r.WordLength)
	return s.store.Apply(ctx, learnerID, r.WordID, now, func(c srs.Card) srs.Card {
		return srs.Review(c, quality, now)
	})
}

// Due lists the learner's cards due now.
func (s *ReviewService) Due(ctx context.Context, learnerID string, limit int) ([]srs.Card, error) {
	return s.store.Due(ctx, learnerID, s.now(), limit)
}

// CountDue counts the learner's cards due now.
func (s *ReviewService) CountDue(ctx context.Context, learnerID string) (int, error) {
	return s.store.CountDue(ctx, learnerID, s.now())
}
