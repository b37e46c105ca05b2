package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"promjum/internal/database"
)

// XPEvent is one awarded activity.
type XPEvent struct {
	ID        string
	LearnerID string
	Activity  string
	IsCorrect bool
	IsBonus   bool
	XP        int
	CreatedAt time.Time
}

// XPRepository handles XP ledger operations
type XPRepository struct {
	db *database.DB
}

// NewXPRepository creates a new XP repository
func NewXPRepository(db *database.DB) *XPRepository {
	return &XPRepository{db: db}
}

// Insert appends an event to the ledger.
func (r *XPRepository) Insert(ctx context.Context, e XPEvent) (XPEvent, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO xp_events (id, learner_id, activity, is_correct, is_bonus, xp, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.LearnerID, e.Activity, e.IsCorrect, e.IsBonus, e.XP, dbTime(e.CreatedAt))
	return e, errors.Wrap(err, "insert xp event")
}

// Total returns the learner's XP across all events.
func (r *XPRepository) Total(ctx context.Context, learnerID string) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(xp), 0) FROM xp_events WHERE learner_id = ?", learnerID).Scan(&total)
	return total, errors.Wrap(err, "sum xp")
}
