package database

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite stores everything in one local file. It is the default engine.
var SQLite Dialect = sqliteDialect{}

type sqliteDialect struct{}

func (sqliteDialect) DriverName() string               { return "sqlite3" }
func (sqliteDialect) DSN(e Endpoint) string            { return e.Path }
func (sqliteDialect) RewriteQuery(query string) string { return query }
func (sqliteDialect) MigrationsSubdir() string         { return "sqlite" }

// ConfigureConnection enables WAL so the janitor and request handlers can
// read while a review is being written.
func (sqliteDialect) ConfigureConnection(db *sql.DB) error {
	configurePool(db)
	return execAll(db,
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	)
}

func (sqliteDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT UNIQUE NOT NULL,
			executed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`
}

func (sqliteDialect) Upsert(conflict []string, update []string) string {
	return onConflict(conflict, update)
}
