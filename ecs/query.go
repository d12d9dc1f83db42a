package ecs

import "iter"

// Query is a View whose matches are cached once per Execute. Systems declare
// Query fields; the Scheduler initializes them on Register and executes them
// right before the owning system runs.
type Query[T any] struct {
	view              *View[T]
	storage           *Storage
	archetypes        []*Archetype
	archetypesChecked int

	entities   []EntityId
	components []T
	valid      bool
}

// NewQuery creates a standalone query. Call Execute before iterating.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init (re)binds the query to storage and drops every cache.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.archetypes = nil
	q.archetypesChecked = -1
	q.valid = false
}

// Execute rebuilds the cached matches from the current storage contents.
func (q *Query[T]) Execute() {
	if len(q.storage.archetypes) != q.archetypesChecked {
		q.archetypes = q.archetypes[:0]
		for _, archetype := range q.storage.archetypes {
			if q.view.matchesArchetype(archetype) {
				q.archetypes = append(q.archetypes, archetype)
			}
		}
		q.archetypesChecked = len(q.storage.archetypes)
	}

	q.entities = q.entities[:0]
	q.components = q.components[:0]
	for _, archetype := range q.archetypes {
		for id, item := range q.view.iterArchetype(archetype) {
			q.entities = append(q.entities, id)
			q.components = append(q.components, item)
		}
	}
	q.valid = true
}

// Len returns the number of cached matches.
func (q *Query[T]) Len() int {
	return len(q.entities)
}

// Iter yields the cached matches. It panics if Execute has never run.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.valid {
		panic("Query.Iter() called before Query.Execute()")
	}
	return func(yield func(EntityId, T) bool) {
		for i := range q.entities {
			if !yield(q.entities[i], q.components[i]) {
				return
			}
		}
	}
}

// Values yields the cached component structs only.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.valid {
		panic("Query.Values() called before Query.Execute()")
	}
	return func(yield func(T) bool) {
		for i := range q.components {
			if !yield(q.components[i]) {
				return
			}
		}
	}
}
