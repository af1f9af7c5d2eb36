package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/wanderwise/wander/internal/shared"
)

// Engine manages the lifecycle of the on-device database and provides
// generic per-store document operations.
//
// The zero value is not usable; construct with [NewEngine]. The handle is
// opened on first use and lives for the life of the process.
type Engine struct {
	path   string
	logger *log.Logger

	once sync.Once
	db   *sql.DB
	err  error
}

// Record is one stored document together with its key. StringKey is set for
// caller-keyed stores, IntKey for engine-keyed stores.
type Record struct {
	StringKey string
	IntKey    int64
	Document  []byte
}

// NewEngine creates an Engine for the database file at path.
// The path can be ":memory:" for an in-memory database.
func NewEngine(path string, logger *log.Logger) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Engine{path: path, logger: logger}
}

// Open returns the shared database handle, opening it and running schema
// setup exactly once. Every caller, including concurrent first callers,
// observes the same handle or the same [shared.ErrStorageUnavailable].
func (e *Engine) Open() (*sql.DB, error) {
	e.once.Do(func() {
		db, err := shared.NewDatabase(e.path)
		if err != nil {
			e.err = fmt.Errorf("%w: %v", shared.ErrStorageUnavailable, err)
			return
		}

		// A pooled in-memory database would hand each connection its own
		// empty database; pin it to a single connection.
		if e.path == ":memory:" {
			shared.ConfigureDatabase(db, 1, 1)
		}

		if err := shared.RunMigrations(db); err != nil {
			db.Close()
			e.err = fmt.Errorf("%w: schema setup failed: %v", shared.ErrStorageUnavailable, err)
			return
		}

		e.logger.Debug("storage engine opened", "path", e.path)
		e.db = db
	})

	return e.db, e.err
}

// Close closes the underlying handle if it was ever opened.
func (e *Engine) Close() error {
	if e.db == nil {
		return nil
	}
	return e.db.Close()
}

// Put inserts or replaces the document under the given key. Calling it again
// with the same key succeeds and replaces the stored document.
func (e *Engine) Put(store, key string, document []byte) error {
	spec, err := e.spec(store, false)
	if err != nil {
		return err
	}

	db, err := e.Open()
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, document) VALUES (?, json(?))
		ON CONFLICT (id) DO UPDATE SET document = excluded.document
	`, spec.Name)

	if _, err := db.Exec(query, key, string(document)); err != nil {
		return fmt.Errorf("failed to put into %s: %w", spec.Name, err)
	}

	return nil
}

// Add inserts a document under an engine-assigned, monotonically increasing
// integer key and returns the key. Fails with [shared.ErrKeyConflict] only
// when the store's unique secondary index is violated.
func (e *Engine) Add(store string, document []byte) (int64, error) {
	spec, err := e.spec(store, true)
	if err != nil {
		return 0, err
	}

	db, err := e.Open()
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf("INSERT INTO %s (document) VALUES (json(?))", spec.Name)

	result, err := db.Exec(query, string(document))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return 0, fmt.Errorf("%w: %v", shared.ErrKeyConflict, err)
		}
		return 0, fmt.Errorf("failed to add into %s: %w", spec.Name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read generated key: %w", err)
	}

	return id, nil
}

// Get returns the document stored under key, or [shared.ErrNotFound] when
// absent. Absence is an ordinary result for callers, not a failure.
func (e *Engine) Get(store string, key any) ([]byte, error) {
	spec, ok := stores[store]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrUnknownStore, store)
	}

	db, err := e.Open()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT document FROM %s WHERE id = ?", spec.Name)

	var document string
	err = db.QueryRow(query, key).Scan(&document)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s in %s", shared.ErrNotFound, fmt.Sprint(key), spec.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get from %s: %w", spec.Name, err)
	}

	return []byte(document), nil
}

// GetAll returns every record in the store. Order is unspecified; the
// current implementation yields key order.
func (e *Engine) GetAll(store string) ([]Record, error) {
	spec, ok := stores[store]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrUnknownStore, store)
	}

	db, err := e.Open()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT id, document FROM %s ORDER BY id", spec.Name)

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", spec.Name, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var document string

		if spec.AutoKey {
			err = rows.Scan(&rec.IntKey, &document)
		} else {
			err = rows.Scan(&rec.StringKey, &document)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", spec.Name, err)
		}

		rec.Document = []byte(document)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

// Delete removes the document under key if present. Deleting an absent key
// is a no-op, not an error.
func (e *Engine) Delete(store string, key any) error {
	spec, ok := stores[store]
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrUnknownStore, store)
	}

	db, err := e.Open()
	if err != nil {
		return err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", spec.Name)

	if _, err := db.Exec(query, key); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", spec.Name, err)
	}

	return nil
}

// Count returns the number of documents in the store.
func (e *Engine) Count(store string) (int, error) {
	spec, ok := stores[store]
	if !ok {
		return 0, fmt.Errorf("%w: %s", shared.ErrUnknownStore, store)
	}

	db, err := e.Open()
	if err != nil {
		return 0, err
	}

	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", spec.Name)
	if err := db.QueryRow(query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", spec.Name, err)
	}

	return count, nil
}

// spec resolves a store name and checks its key discipline matches the
// operation being performed.
func (e *Engine) spec(store string, autoKey bool) (StoreSpec, error) {
	spec, ok := stores[store]
	if !ok {
		return StoreSpec{}, fmt.Errorf("%w: %s", shared.ErrUnknownStore, store)
	}
	if spec.AutoKey != autoKey {
		if autoKey {
			return StoreSpec{}, fmt.Errorf("%w: %s uses caller-supplied keys", shared.ErrInvalidArgument, store)
		}
		return StoreSpec{}, fmt.Errorf("%w: %s uses engine-assigned keys", shared.ErrInvalidArgument, store)
	}
	return spec, nil
}
