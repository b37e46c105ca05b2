package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"promjum/internal/database"
	"promjum/internal/repository"
	"promjum/internal/srs"
)

func run(t *testing.T, dbPath, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--db-type", "sqlite", "--db-path", dbPath, "--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func testDB(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("sqlite integration test")
	}
	return filepath.Join(t.TempDir(), "promjum.db")
}

func TestMigrate(t *testing.T) {
	db := testDB(t)
	out, err := run(t, db, "", "migrate")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "applied 001_initial.sql") {
		t.Errorf("first run: %q", out)
	}
	out, err = run(t, db, "", "migrate")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "up to date") {
		t.Errorf("second run: %q", out)
	}
}

func TestWords(t *testing.T) {
	db := testDB(t)
	if _, err := run(t, db, "", "words", "add", "cat", "แมว", "--deck", "pets"); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, db, "", "words", "add", "123", "?", "--deck", "pets"); err == nil {
		t.Error("adding a word without letters should fail")
	}

	file := filepath.Join(t.TempDir(), "farm.txt")
	if err := os.WriteFile(file, []byte("# farm\ndog|หมา\nbird|นก\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, db, "", "words", "import", file, "--deck", "pets")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Imported 2 of 2 words into pets") {
		t.Errorf("import: %q", out)
	}

	out, err = run(t, db, "", "words", "list", "--deck", "pets")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"cat", "dog", "bird", "farm-001"} {
		if !strings.Contains(out, want) {
			t.Errorf("list missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, db, "", "words", "list", "--deck", "empty")
	if err != nil || !strings.Contains(out, "Deck empty is empty.") {
		t.Errorf("empty deck: %q, %v", out, err)
	}
}

func TestPlay(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"first try", "cat\n", []string{"Correct!", "Score:   100", "Perfect: 1/1", "XP:      +10"}},
		{"after a miss", "ACT\nCAT\n", []string{"Not quite. 1 letters revealed.", "Correct!", "Perfect: 0/1"}},
		{"wrong length", "CA\n:q\n", []string{"the word has 3 letters", "Session abandoned."}},
		{"quit", ":q\n", []string{"Meaning: แมว", "Session abandoned."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testDB(t)
			if _, err := run(t, db, "", "words", "add", "cat", "แมว", "--deck", "pets"); err != nil {
				t.Fatal(err)
			}
			out, err := run(t, db, tt.input, "play", "--deck", "pets", "--learner", "l1")
			if err != nil {
				t.Fatal(err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestPlay_StarterDeckFallback(t *testing.T) {
	db := testDB(t)
	out, err := run(t, db, ":q\n", "play", "--deck", "travel", "--words", "3")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Word 1/3") {
		t.Errorf("output: %q", out)
	}
}

func TestDue(t *testing.T) {
	path := testDB(t)
	out, err := run(t, path, "", "due", "--learner", "l1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No words due") {
		t.Errorf("empty: %q", out)
	}

	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	past := time.Now().Add(-48 * time.Hour)
	if _, err := repository.NewReviewRepository(db).Apply(ctx, "l1", "en-001", past, func(c srs.Card) srs.Card { return c }); err != nil {
		t.Fatal(err)
	}
	db.Close()

	out, err = run(t, path, "", "due", "--learner", "l1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "1 words due") || !strings.Contains(out, "en-001") {
		t.Errorf("due: %q", out)
	}
}
