package database

import (
	"context"
	"path/filepath"
	"testing"
)

// openTestDB opens a migrated SQLite database in a temp dir.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping sqlite integration test in short mode")
	}
	ctx := context.Background()
	db, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.RunMigrations(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := openTestDB(t)
	applied, err := db.RunMigrations(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(applied) != 0 {
		t.Errorf("second run applied %v, want nothing", applied)
	}
	for _, table := range []string{"vocabulary", "xp_events", "review_cards", "session_results"} {
		var n int
		if err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestInTx_RollsBack(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	err := db.InTx(ctx, func(tx *Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO vocabulary (id, deck, word) VALUES (?, ?, ?)", "v1", "en", "cat"); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "INSERT INTO vocabulary (id, deck, word) VALUES (?, ?, ?)", "v1", "en", "dup")
		return err
	})
	if err == nil {
		t.Fatal("expected duplicate key error")
	}
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vocabulary").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("rows = %d after rollback, want 0", n)
	}
}
