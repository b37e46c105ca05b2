package database

import (
	"database/sql"
	"strconv"
	"strings"
	"time"
)

// Dialect is what differs between the supported SQL engines. Repositories
// write queries with ? placeholders and the portable subset of SQL; the
// dialect fills in the rest.
type Dialect interface {
	// DriverName is the database/sql driver registered by the engine's package.
	DriverName() string
	DSN(e Endpoint) string
	// RewriteQuery adapts ? placeholders to the engine's bind syntax.
	RewriteQuery(query string) string
	// ConfigureConnection tunes the pool and session settings after open.
	ConfigureConnection(db *sql.DB) error
	// MigrationsSubdir names the folder under migrations/ holding this
	// engine's schema files.
	MigrationsSubdir() string
	CreateMigrationsTableQuery() string
	// Upsert is appended to an INSERT so an existing row keyed by conflict
	// gets the update columns overwritten instead.
	Upsert(conflict []string, update []string) string
}

// Endpoint locates the database: a file for sqlite, a URL for the servers.
type Endpoint struct {
	Path string
	URL  string
}

// numberPlaceholders turns ? into $1, $2, ... leaving ? inside single-quoted
// literals alone.
func numberPlaceholders(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n, quoted := 0, false
	for _, r := range query {
		switch {
		case r == '\'':
			quoted = !quoted
		case r == '?' && !quoted:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// onConflict is the upsert form sqlite and postgres share.
func onConflict(conflict []string, update []string) string {
	sets := make([]string, len(update))
	for i, col := range update {
		sets[i] = col + " = excluded." + col
	}
	return " ON CONFLICT (" + strings.Join(conflict, ", ") + ") DO UPDATE SET " + strings.Join(sets, ", ")
}

func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(time.Minute)
}

func execAll(db *sql.DB, stmts ...string) error {
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
