package database

import (
	"database/sql"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// MySQL keeps ? placeholders and upserts with ON DUPLICATE KEY.
var MySQL Dialect = mysqlDialect{}

type mysqlDialect struct{}

func (mysqlDialect) DriverName() string               { return "mysql" }
func (mysqlDialect) RewriteQuery(query string) string { return query }
func (mysqlDialect) MigrationsSubdir() string         { return "mysql" }

// DSN forces parseTime so DATETIME columns scan into time.Time. URLs the
// driver cannot parse are passed through for sql.Open to reject.
func (mysqlDialect) DSN(e Endpoint) string {
	cfg, err := mysql.ParseDSN(e.URL)
	if err != nil {
		return e.URL
	}
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

func (mysqlDialect) ConfigureConnection(db *sql.DB) error {
	configurePool(db)
	return execAll(db, "SET FOREIGN_KEY_CHECKS = 1;")
}

func (mysqlDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			filename VARCHAR(255) UNIQUE NOT NULL,
			executed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`
}

// Upsert ignores conflict: MySQL picks whichever unique key collided.
func (mysqlDialect) Upsert(_ []string, update []string) string {
	sets := make([]string, len(update))
	for i, col := range update {
		sets[i] = col + " = VALUES(" + col + ")"
	}
	return " ON DUPLICATE KEY UPDATE " + strings.Join(sets, ", ")
}
