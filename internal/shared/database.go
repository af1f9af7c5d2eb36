package shared

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// NewDatabase opens the SQLite database at path and verifies it is
// reachable. The path can be ":memory:" for an in-memory database.
//
// A busy timeout is set so concurrent local writers queue instead of
// failing immediately with SQLITE_BUSY.
func NewDatabase(path string) (*sql.DB, error) {
	dsn := path + "?_busy_timeout=5000"
	if path == ":memory:" {
		dsn = path
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// ConfigureDatabase bounds the connection pool. An in-memory database must
// be pinned to a single connection so every caller sees the same schema.
func ConfigureDatabase(db *sql.DB, maxOpenConns, maxIdleConns int) {
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
}
