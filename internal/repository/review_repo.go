package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"promjum/internal/database"
	"promjum/internal/srs"
)

// ReviewRepository stores spaced-repetition cards
type ReviewRepository struct {
	db *database.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *database.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

const cardColumns = `learner_id, word_id, ease_factor, interval_days, repetitions, last_reviewed, next_review`

func scanCard(row interface{ Scan(...any) error }) (srs.Card, error) {
	var c srs.Card
	err := row.Scan(&c.LearnerID, &c.WordID, &c.EaseFactor, &c.Interval, &c.Repetitions, &c.LastReviewed, &c.NextReview)
	return c, err
}

func getCard(ctx context.Context, q database.DBTX, learnerID, wordID string) (srs.Card, bool, error) {
	query := `SELECT ` + cardColumns + ` FROM review_cards WHERE learner_id = ? AND word_id = ?`
	c, err := scanCard(q.QueryRowContext(ctx, query, learnerID, wordID))
	if errors.Is(err, sql.ErrNoRows) {
		return srs.Card{}, false, nil
	}
	if err != nil {
		return srs.Card{}, false, errors.Wrap(err, "get review card")
	}
	return c, true, nil
}

// Get returns the learner's card for a word.
func (r *ReviewRepository) Get(ctx context.Context, learnerID, wordID string) (srs.Card, bool, error) {
	return getCard(ctx, r.db, learnerID, wordID)
}

// Apply reads the card (or a new one), runs fn on it and writes the result
// back, all in one transaction.
func (r *ReviewRepository) Apply(ctx context.Context, learnerID, wordID string, now time.Time, fn func(srs.Card) srs.Card) (srs.Card, error) {
	var out srs.Card
	err := r.db.InTx(ctx, func(tx *database.Tx) error {
		card, ok, err := getCard(ctx, tx, learnerID, wordID)
		if err != nil {
			return err
		}
		if !ok {
			card = srs.NewCard(learnerID, wordID, now)
		}
		out = fn(card)
		return upsertCard(ctx, tx, out)
	})
	return out, err
}

func upsertCard(ctx context.Context, q database.DBTX, c srs.Card) error {
	query := `INSERT INTO review_cards (` + cardColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)` +
		q.GetDialect().Upsert(
			[]string{"learner_id", "word_id"},
			[]string{"ease_factor", "interval_days", "repetitions", "last_reviewed", "next_review"},
		)
	_, err := q.ExecContext(ctx, query, c.LearnerID, c.WordID, c.EaseFactor, c.Interval, c.Repetitions, dbTime(c.LastReviewed), dbTime(c.NextReview))
	return errors.Wrap(err, "upsert review card")
}

// Due returns up to limit cards due at now, most overdue first.
func (r *ReviewRepository) Due(ctx context.Context, learnerID string, now time.Time, limit int) ([]srs.Card, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + cardColumns + ` FROM review_cards
		WHERE learner_id = ? AND next_review <= ?
		ORDER BY next_review
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, learnerID, dbTime(now), limit)
	if err != nil {
		return nil, errors.Wrap(err, "list due cards")
	}
	defer rows.Close()

	var cards []srs.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan review card")
		}
		cards = append(cards, c)
	}
	return cards, errors.Wrap(rows.Err(), "iterate due cards")
}

// CountDue returns how many cards are due at now.
func (r *ReviewRepository) CountDue(ctx context.Context, learnerID string, now time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM review_cards WHERE learner_id = ? AND next_review <= ?", learnerID, dbTime(now)).Scan(&n)
	return n, errors.Wrap(err, "count due cards")
}

// dbTime normalises timestamps to whole UTC seconds so text-stored values in
// SQLite compare in time order.
func dbTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
