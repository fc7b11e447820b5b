package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite" // cgo-free SQLite driver
)

// OpenSQLite creates a new SQLite connection pool.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// SQLiteRepository stores each collection as a table of JSON documents keyed
// by the logical entity id. Filters are applied after decoding so their
// semantics are exactly those of the file backend.
type SQLiteRepository[T Entity] struct {
	db     *sql.DB
	table  string
	decode DecodeFunc[T]
}

// NewSQLiteRepository creates the backing table when missing. The table name
// comes from compile-time collection constants, never from user input.
func NewSQLiteRepository[T Entity](db *sql.DB, table string, decode DecodeFunc[T]) (*SQLiteRepository[T], error) {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id TEXT NOT NULL PRIMARY KEY,
		doc TEXT NOT NULL
	)`, table)
	if _, err := db.Exec(stmt); err != nil {
		return nil, fmt.Errorf("creating table %s: %w", table, err)
	}
	return &SQLiteRepository[T]{db: db, table: table, decode: decode}, nil
}

// FindAll returns entities in insertion order, filtered by exact match.
func (r *SQLiteRepository[T]) FindAll(ctx context.Context, filters map[string]any) ([]T, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf("SELECT doc FROM %s ORDER BY rowid", r.table))
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", r.table, err)
	}
	defer rows.Close()

	var entities []T
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", r.table, err)
		}
		var doc map[string]any
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("decoding %s document: %w", r.table, err)
		}
		if matchesFilters(doc, filters) {
			entities = append(entities, r.decode(doc))
		}
	}
	return entities, rows.Err()
}

// FindByID returns the entity with the given id, or the zero value.
func (r *SQLiteRepository[T]) FindByID(ctx context.Context, id string) (T, error) {
	var zero T
	var raw string
	err := r.db.QueryRowContext(ctx, fmt.Sprintf("SELECT doc FROM %s WHERE id = ?", r.table), id).Scan(&raw)
	if err == sql.ErrNoRows {
		return zero, nil
	}
	if err != nil {
		return zero, fmt.Errorf("querying %s by id: %w", r.table, err)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return zero, fmt.Errorf("decoding %s document: %w", r.table, err)
	}
	return r.decode(doc), nil
}

// Create persists a new entity, generating an id when it has none.
func (r *SQLiteRepository[T]) Create(ctx context.Context, entity T) (T, error) {
	var zero T
	if entity.GetID() == "" {
		entity.SetID(nextID())
	}
	raw, err := json.Marshal(entity.Document())
	if err != nil {
		return zero, fmt.Errorf("encoding %s document: %w", r.table, err)
	}
	_, err = r.db.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (id, doc) VALUES (?, ?)", r.table),
		entity.GetID(), string(raw))
	if err != nil {
		return zero, fmt.Errorf("inserting into %s: %w", r.table, err)
	}
	return entity, nil
}

// Update replaces the stored document matching id. Returns the zero value
// when no record matches.
func (r *SQLiteRepository[T]) Update(ctx context.Context, id string, entity T) (T, error) {
	var zero T
	touch(entity)
	entity.SetID(id)
	raw, err := json.Marshal(entity.Document())
	if err != nil {
		return zero, fmt.Errorf("encoding %s document: %w", r.table, err)
	}
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET doc = ? WHERE id = ?", r.table),
		string(raw), id)
	if err != nil {
		return zero, fmt.Errorf("updating %s: %w", r.table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return zero, err
	}
	if affected == 0 {
		return zero, nil
	}
	return entity, nil
}

// Delete removes the record matching id, reporting whether one existed.
func (r *SQLiteRepository[T]) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", r.table), id)
	if err != nil {
		return false, fmt.Errorf("deleting from %s: %w", r.table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Exists reports whether any record matches the filters.
func (r *SQLiteRepository[T]) Exists(ctx context.Context, filters map[string]any) (bool, error) {
	entities, err := r.FindAll(ctx, filters)
	if err != nil {
		return false, err
	}
	return len(entities) > 0, nil
}
