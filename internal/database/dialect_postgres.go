package database

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// Postgres binds parameters as $n.
var Postgres Dialect = postgresDialect{}

type postgresDialect struct{}

func (postgresDialect) DriverName() string                   { return "postgres" }
func (postgresDialect) DSN(e Endpoint) string                { return e.URL }
func (postgresDialect) RewriteQuery(query string) string     { return numberPlaceholders(query) }
func (postgresDialect) MigrationsSubdir() string             { return "postgres" }
func (postgresDialect) ConfigureConnection(db *sql.DB) error { configurePool(db); return nil }

func (postgresDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id BIGSERIAL PRIMARY KEY,
			filename TEXT UNIQUE NOT NULL,
			executed_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)
	`
}

func (postgresDialect) Upsert(conflict []string, update []string) string {
	return onConflict(conflict, update)
}
