package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton is a typed accessor for a component that lives outside any
// entity, such as the active puzzle session or pending input.
type Singleton[T any] struct {
	storage *Storage
	ptr     unsafe.Pointer
}

// NewSingleton returns an accessor for T, creating the singleton from the
// initializer (or the zero value) when storage does not hold one yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	s := &Singleton[T]{}
	if storage.getSingletonEntry(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}
	s.Init(storage)
	return s
}

// Init binds the accessor to storage. The Scheduler calls it for Singleton
// fields of registered systems.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.ptr = nil
	s.refresh()
}

func (s *Singleton[T]) refresh() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(reflect.TypeFor[T]()); entry != nil {
		s.ptr = entry.dataPtr
	}
}

// Get returns the singleton, or nil if storage has none.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.refresh()
	}
	return (*T)(s.ptr)
}

// Exists reports whether storage holds the singleton.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
