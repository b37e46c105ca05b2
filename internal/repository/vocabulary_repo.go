package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"promjum/internal/database"
	"promjum/internal/scramble"
)

// VocabularyRepository handles vocabulary database operations
type VocabularyRepository struct {
	db *database.DB
}

// NewVocabularyRepository creates a new vocabulary repository
func NewVocabularyRepository(db *database.DB) *VocabularyRepository {
	return &VocabularyRepository{db: db}
}

// Add stores a word in deck. An empty ID gets a fresh uuid.
func (r *VocabularyRepository) Add(ctx context.Context, deck string, item scramble.VocabularyItem) (scramble.VocabularyItem, error) {
	item.Word = strings.TrimSpace(item.Word)
	if !item.Playable() {
		return item, scramble.ErrEmptyWord
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	query := `
		INSERT INTO vocabulary (id, deck, word, meaning, is_user_flashcard)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query, item.ID, deck, item.Word, item.Meaning, item.IsUserFlashcard); err != nil {
		return item, errors.Wrapf(err, "insert word %q", item.Word)
	}
	return item, nil
}

// Seed upserts items into deck in one transaction and returns how many
// rows were written.
func (r *VocabularyRepository) Seed(ctx context.Context, deck string, items []scramble.VocabularyItem) (int, error) {
	query := `
		INSERT INTO vocabulary (id, deck, word, meaning, is_user_flashcard)
		VALUES (?, ?, ?, ?, ?)
	` + r.db.Dialect.Upsert([]string{"id"}, []string{"deck", "word", "meaning"})

	n := 0
	err := r.db.InTx(ctx, func(tx *database.Tx) error {
		for _, item := range items {
			if !item.Playable() {
				continue
			}
			if item.ID == "" {
				item.ID = uuid.NewString()
			}
			if _, err := tx.ExecContext(ctx, query, item.ID, deck, item.Word, item.Meaning, item.IsUserFlashcard); err != nil {
				return errors.Wrapf(err, "seed word %q", item.Word)
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// List returns every word in deck, oldest first.
func (r *VocabularyRepository) List(ctx context.Context, deck string) ([]scramble.VocabularyItem, error) {
	query := `
		SELECT id, word, meaning, is_user_flashcard
		FROM vocabulary
		WHERE deck = ?
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, deck)
	if err != nil {
		return nil, errors.Wrap(err, "list vocabulary")
	}
	defer rows.Close()

	var items []scramble.VocabularyItem
	for rows.Next() {
		var item scramble.VocabularyItem
		if err := rows.Scan(&item.ID, &item.Word, &item.Meaning, &item.IsUserFlashcard); err != nil {
			return nil, errors.Wrap(err, "scan vocabulary")
		}
		items = append(items, item)
	}
	return items, errors.Wrap(rows.Err(), "iterate vocabulary")
}

// Words implements the game's vocabulary source.
func (r *VocabularyRepository) Words(ctx context.Context, deck string) ([]scramble.VocabularyItem, error) {
	return r.List(ctx, deck)
}

// Count returns the number of words in deck.
func (r *VocabularyRepository) Count(ctx context.Context, deck string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vocabulary WHERE deck = ?", deck).Scan(&n)
	return n, errors.Wrap(err, "count vocabulary")
}

// Delete removes a word by id and reports whether it existed.
func (r *VocabularyRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM vocabulary WHERE id = ?", id)
	if err != nil {
		return false, errors.Wrap(err, "delete word")
	}
	n, err := res.RowsAffected()
	return n > 0, errors.Wrap(err, "delete word")
}
