// Package storage provides a generic document repository with three
// interchangeable backends: a flat JSON file, an embedded SQLite database,
// and a MongoDB collection. All backends produce identical externally
// observable entity shapes.
package storage

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"
)

// Entity is anything that can flow through a repository: it carries a string
// id and converts to a generic key-value document.
type Entity interface {
	GetID() string
	SetID(id string)
	Document() map[string]any
}

// toucher is implemented by entities that track a last-modified timestamp;
// repositories refresh it on update.
type toucher interface {
	Touch(now time.Time)
}

// DecodeFunc rebuilds an entity from its stored document form.
type DecodeFunc[T Entity] func(doc map[string]any) T

// Repository is the storage contract shared by all backends.
//
// FindAll applies exact-match AND semantics across all given filter keys;
// nil or empty filters return everything in stored order. FindByID and
// Update return the zero value (not an error) when the id is absent.
type Repository[T Entity] interface {
	FindAll(ctx context.Context, filters map[string]any) ([]T, error)
	FindByID(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, entity T) (T, error)
	Update(ctx context.Context, id string, entity T) (T, error)
	Delete(ctx context.Context, id string) (bool, error)
	Exists(ctx context.Context, filters map[string]any) (bool, error)
}

var lastIssuedID atomic.Int64

// nextID generates an entity id from the current time in milliseconds. A
// monotonic guard keeps ids unique when two creates land in the same
// millisecond.
func nextID() string {
	candidate := time.Now().UnixMilli()
	for {
		last := lastIssuedID.Load()
		if candidate <= last {
			candidate = last + 1
		}
		if lastIssuedID.CompareAndSwap(last, candidate) {
			return strconv.FormatInt(candidate, 10)
		}
	}
}

// matchesFilters reports whether the document satisfies every filter key.
func matchesFilters(doc map[string]any, filters map[string]any) bool {
	for key, want := range filters {
		if doc[key] != want {
			return false
		}
	}
	return true
}

// touch refreshes the entity's updated-at timestamp if it carries one.
func touch(entity Entity) {
	if t, ok := entity.(toucher); ok {
		t.Touch(time.Now())
	}
}
