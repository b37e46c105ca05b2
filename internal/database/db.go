package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnsupportedType is returned for an unknown database type.
var ErrUnsupportedType = errors.New("unsupported database type")

// DB wraps the database connection with dialect support
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Config selects and locates the database.
type Config struct {
	Type string
	Path string
	URL  string
}

// DialectFor maps cfg.Type onto an engine and says where to find it.
func DialectFor(cfg Config) (Dialect, Endpoint, error) {
	switch strings.ToLower(cfg.Type) {
	case "postgres", "postgresql":
		return Postgres, Endpoint{URL: cfg.URL}, nil
	case "mysql":
		return MySQL, Endpoint{URL: cfg.URL}, nil
	case "sqlite", "sqlite3", "":
		return SQLite, Endpoint{Path: cfg.Path}, nil
	default:
		return nil, Endpoint{}, errors.Wrap(ErrUnsupportedType, cfg.Type)
	}
}

// Open creates and configures the database connection based on cfg
func Open(ctx context.Context, cfg Config) (*DB, error) {
	dialect, endpoint, err := DialectFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dialect.DriverName(), dialect.DSN(endpoint))
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping database")
	}

	if err := dialect.ConfigureConnection(db); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "configure connection")
	}

	return &DB{DB: db, Dialect: dialect}, nil
}

// OpenSQLite opens a SQLite database at path.
func OpenSQLite(ctx context.Context, path string) (*DB, error) {
	return Open(ctx, Config{Type: "sqlite", Path: path})
}

// QueryContext executes a query with automatic placeholder rewriting
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.DB.QueryContext(ctx, db.Dialect.RewriteQuery(query), args...)
}

// QueryRowContext executes a query that returns a single row with automatic placeholder rewriting
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.DB.QueryRowContext(ctx, db.Dialect.RewriteQuery(query), args...)
}

// ExecContext executes a query that doesn't return rows with automatic placeholder rewriting
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.DB.ExecContext(ctx, db.Dialect.RewriteQuery(query), args...)
}
