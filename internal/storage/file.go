package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// FileRepository stores a whole collection as one JSON array in one file.
// Every operation reads the full file, mutates the in-memory slice, and
// rewrites the whole file. A per-repository mutex serializes the
// read-modify-write cycle within this process; separate processes sharing a
// data file can still race (accepted limitation).
type FileRepository[T Entity] struct {
	mu     sync.Mutex
	path   string
	decode DecodeFunc[T]
}

// NewFileRepository creates a file-backed repository, initializing the file
// with an empty array when it does not exist yet.
func NewFileRepository[T Entity](path string, decode DecodeFunc[T]) (*FileRepository[T], error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return nil, fmt.Errorf("initializing data file %s: %w", path, err)
		}
	}
	return &FileRepository[T]{path: path, decode: decode}, nil
}

func (r *FileRepository[T]) readAll() ([]map[string]any, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", r.path, err)
	}
	var docs []map[string]any
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", r.path, err)
	}
	return docs, nil
}

func (r *FileRepository[T]) writeAll(docs []map[string]any) error {
	if docs == nil {
		docs = []map[string]any{}
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", r.path, err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", r.path, err)
	}
	return nil
}

// FindAll returns entities in stored (append) order, filtered by exact match.
func (r *FileRepository[T]) FindAll(_ context.Context, filters map[string]any) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findAllLocked(filters)
}

func (r *FileRepository[T]) findAllLocked(filters map[string]any) ([]T, error) {
	docs, err := r.readAll()
	if err != nil {
		return nil, err
	}
	var entities []T
	for _, doc := range docs {
		if matchesFilters(doc, filters) {
			entities = append(entities, r.decode(doc))
		}
	}
	return entities, nil
}

// FindByID returns the entity with the given id, or the zero value.
func (r *FileRepository[T]) FindByID(_ context.Context, id string) (T, error) {
	var zero T
	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.readAll()
	if err != nil {
		return zero, err
	}
	for _, doc := range docs {
		if doc["id"] == id {
			return r.decode(doc), nil
		}
	}
	return zero, nil
}

// Create persists a new entity, generating an id when it has none.
func (r *FileRepository[T]) Create(_ context.Context, entity T) (T, error) {
	var zero T
	r.mu.Lock()
	defer r.mu.Unlock()

	if entity.GetID() == "" {
		entity.SetID(nextID())
	}
	docs, err := r.readAll()
	if err != nil {
		return zero, err
	}
	docs = append(docs, entity.Document())
	if err := r.writeAll(docs); err != nil {
		return zero, err
	}
	return entity, nil
}

// Update replaces the stored record matching id. Returns the zero value when
// no record matches.
func (r *FileRepository[T]) Update(_ context.Context, id string, entity T) (T, error) {
	var zero T
	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.readAll()
	if err != nil {
		return zero, err
	}
	for i, doc := range docs {
		if doc["id"] == id {
			touch(entity)
			entity.SetID(id) // the stored id wins
			docs[i] = entity.Document()
			if err := r.writeAll(docs); err != nil {
				return zero, err
			}
			return entity, nil
		}
	}
	return zero, nil
}

// Delete removes the record matching id, reporting whether one existed.
func (r *FileRepository[T]) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.readAll()
	if err != nil {
		return false, err
	}
	remaining := docs[:0]
	for _, doc := range docs {
		if doc["id"] != id {
			remaining = append(remaining, doc)
		}
	}
	if len(remaining) == len(docs) {
		return false, nil
	}
	if err := r.writeAll(remaining); err != nil {
		return false, err
	}
	return true, nil
}

// Exists reports whether any record matches the filters.
func (r *FileRepository[T]) Exists(_ context.Context, filters map[string]any) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entities, err := r.findAllLocked(filters)
	if err != nil {
		return false, err
	}
	return len(entities) > 0, nil
}
