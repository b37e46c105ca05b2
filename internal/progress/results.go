package progress

import (
	"context"

	"golang.org/x/sync/errgroup"

	"promjum/internal/repository"
	"promjum/internal/scramble"
)

// ResultStore persists finished sessions.
type ResultStore interface {
	Insert(ctx context.Context, res repository.SessionResult) (repository.SessionResult, error)
	Recent(ctx context.Context, learnerID string, limit int) ([]repository.SessionResult, error)
}

// ResultService records session completions.
type ResultService struct {
	store ResultStore
}

// NewResultService creates a result service.
func NewResultService(store ResultStore) *ResultService {
	return &ResultService{store: store}
}

// RecordResult stores a completed session.
func (s *ResultService) RecordResult(ctx context.Context, learnerID, sessionID string, res scramble.Result) error {
	_, err := s.store.Insert(ctx, repository.SessionResult{
		LearnerID:    learnerID,
		SessionID:    sessionID,
		Score:        res.Score,
		CorrectWords: res.PerfectWords,
		WrongWords:   res.ImperfectWords,
		TimeSpent:    res.ElapsedSeconds,
		XPGained:     res.XPGained,
	})
	return err
}

// Recent returns the learner's latest results.
func (s *ResultService) Recent(ctx context.Context, learnerID string, limit int) ([]repository.SessionResult, error) {
	return s.store.Recent(ctx, learnerID, limit)
}

// Summary is a learner's progress overview.
type Summary struct {
	TotalXP int                        `json:"totalXp"`
	Due     int                        `json:"due"`
	Recent  []repository.SessionResult `json:"recent"`
}

// Service groups the progress services.
type Service struct {
	XP      *XPService
	Reviews *ReviewService
	Results *ResultService
}

// Summary loads the learner's overview, querying the stores concurrently.
func (s *Service) Summary(ctx context.Context, learnerID string) (Summary, error) {
	var sum Summary
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sum.TotalXP, err = s.XP.Total(ctx, learnerID)
		return err
	})
	g.Go(func() error {
		var err error
		sum.Due, err = s.Reviews.CountDue(ctx, learnerID)
		return err
	})
	g.Go(func() error {
		var err error
		sum.Recent, err = s.Results.Recent(ctx, learnerID, 5)
		return err
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	if sum.Recent == nil {
		sum.Recent = []repository.SessionResult{}
	}
	return sum, nil
}
