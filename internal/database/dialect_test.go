package database

import (
	"errors"
	"strings"
	"testing"
)

func TestDialectFor(t *testing.T) {
	tests := []struct {
		typ    string
		driver string
	}{
		{"", "sqlite3"},
		{"sqlite", "sqlite3"},
		{"SQLite3", "sqlite3"},
		{"postgres", "postgres"},
		{"postgresql", "postgres"},
		{"mysql", "mysql"},
	}
	for _, tt := range tests {
		d, _, err := DialectFor(Config{Type: tt.typ})
		if err != nil {
			t.Fatalf("DialectFor(%q): %v", tt.typ, err)
		}
		if d.DriverName() != tt.driver {
			t.Errorf("DialectFor(%q) driver %q, want %q", tt.typ, d.DriverName(), tt.driver)
		}
	}
	if _, _, err := DialectFor(Config{Type: "oracle"}); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestRewriteQuery(t *testing.T) {
	query := "SELECT * FROM review_cards WHERE learner_id = ? AND next_review <= ?"
	tests := []struct {
		name    string
		dialect Dialect
		want    string
	}{
		{"sqlite", SQLite, query},
		{"mysql", MySQL, query},
		{"postgres", Postgres, "SELECT * FROM review_cards WHERE learner_id = $1 AND next_review <= $2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.RewriteQuery(query); got != tt.want {
				t.Errorf("RewriteQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRewriteQuery_PostgresSkipsQuotedMarks(t *testing.T) {
	got := Postgres.RewriteQuery("SELECT word FROM words WHERE hint = '?' AND id = ? AND tier = ?")
	want := "SELECT word FROM words WHERE hint = '?' AND id = $1 AND tier = $2"
	if got != want {
		t.Errorf("RewriteQuery() = %q, want %q", got, want)
	}
}

func TestUpsert(t *testing.T) {
	conflict := []string{"learner_id", "word_id"}
	update := []string{"ease_factor", "next_review"}

	want := " ON CONFLICT (learner_id, word_id) DO UPDATE SET ease_factor = excluded.ease_factor, next_review = excluded.next_review"
	if got := SQLite.Upsert(conflict, update); got != want {
		t.Errorf("sqlite Upsert() = %q", got)
	}
	if got := Postgres.Upsert(conflict, update); got != want {
		t.Errorf("postgres Upsert() = %q", got)
	}
	mysqlWant := " ON DUPLICATE KEY UPDATE ease_factor = VALUES(ease_factor), next_review = VALUES(next_review)"
	if got := MySQL.Upsert(conflict, update); got != mysqlWant {
		t.Errorf("mysql Upsert() = %q", got)
	}
}

func TestMySQLDSN_ForcesParseTime(t *testing.T) {
	dsn := MySQL.DSN(Endpoint{URL: "user:pw@tcp(localhost:3306)/promjum"})
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("DSN %q does not enable parseTime", dsn)
	}
}

func TestMigrationsSubdir(t *testing.T) {
	for _, d := range []Dialect{SQLite, Postgres, MySQL} {
		files, err := migrationsFS.ReadDir("migrations/" + d.MigrationsSubdir())
		if err != nil {
			t.Fatalf("%s: %v", d.MigrationsSubdir(), err)
		}
		if len(files) == 0 {
			t.Errorf("%s: no migrations embedded", d.MigrationsSubdir())
		}
	}
}

func TestSplitStatements(t *testing.T) {
	in := "-- comment\nCREATE TABLE a (id INT);\n\n  CREATE INDEX i ON a(id);\n-- trailing\n"
	got := splitStatements(in)
	if len(got) != 2 {
		t.Fatalf("got %d statements: %q", len(got), got)
	}
	if got[0] != "CREATE TABLE a (id INT)" || got[1] != "CREATE INDEX i ON a(id)" {
		t.Errorf("statements %q", got)
	}
}
