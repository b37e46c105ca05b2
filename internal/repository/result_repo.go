package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"promjum/internal/database"
)

// SessionResult is a finished scramble session as handed to the parent
// flow: correct and wrong words are the perfect and imperfect counts.
type SessionResult struct {
	ID           string    `json:"id"`
	LearnerID    string    `json:"-"`
	SessionID    string    `json:"sessionId"`
	Score        int       `json:"score"`
	CorrectWords int       `json:"correctWords"`
	WrongWords   int       `json:"wrongWords"`
	TimeSpent    int       `json:"timeSpent"`
	XPGained     int       `json:"xpGained"`
	FinishedAt   time.Time `json:"finishedAt"`
}

// ResultRepository stores finished sessions
type ResultRepository struct {
	db *database.DB
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *database.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// Insert stores a result.
func (r *ResultRepository) Insert(ctx context.Context, res SessionResult) (SessionResult, error) {
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	if res.FinishedAt.IsZero() {
		res.FinishedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO session_results (id, learner_id, session_id, score, correct_words, wrong_words, time_spent_seconds, xp_gained, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query, res.ID, res.LearnerID, res.SessionID, res.Score,
		res.CorrectWords, res.WrongWords, res.TimeSpent, res.XPGained, dbTime(res.FinishedAt))
	return res, errors.Wrap(err, "insert session result")
}

// Recent returns the learner's latest results, newest first.
func (r *ResultRepository) Recent(ctx context.Context, learnerID string, limit int) ([]SessionResult, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT id, learner_id, session_id, score, correct_words, wrong_words, time_spent_seconds, xp_gained, finished_at
		FROM session_results
		WHERE learner_id = ?
		ORDER BY finished_at DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, learnerID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list session results")
	}
	defer rows.Close()

	var out []SessionResult
	for rows.Next() {
		var res SessionResult
		if err := rows.Scan(&res.ID, &res.LearnerID, &res.SessionID, &res.Score, &res.CorrectWords,
			&res.WrongWords, &res.TimeSpent, &res.XPGained, &res.FinishedAt); err != nil {
			return nil, errors.Wrap(err, "scan session result")
		}
		out = append(out, res)
	}
	return out, errors.Wrap(rows.Err(), "iterate session results")
}
