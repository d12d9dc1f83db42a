package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View matches entities against a struct of component pointers, e.g.
//
//	ecs.NewView[struct {
//		ecs.EntityId
//		*Cell
//		*Bounds `ecs:"optional"`
//	}](storage)
//
// Embedded pointer fields are required. Named fields may be tagged
// `ecs:"optional"` and are nil when absent. An EntityId field is filled with
// the matched entity's ID.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
	idOffset    uintptr
	hasId       bool
}

// NewView builds a view for T. It panics if T is not a struct of component
// pointers.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.idOffset = field.Offset
			v.hasId = true
			continue
		}
		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" && !field.Anonymous {
			if tag != "optional" {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			optional = true
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, optional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}
	return v
}

// Fill points the fields of *ptr at the entity's components. It returns false
// if the entity is missing a required component.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok || !archetype.Has(id.Index()) {
		return false
	}
	return v.populate(unsafe.Pointer(ptr), archetype, int(id.Index()), v.columnIndices(archetype))
}

// Get returns a filled view struct, or nil.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// GetRef is Get for a ref. Deleted refs yield nil.
func (v *View[T]) GetRef(ref *EntityRef) *T {
	id, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(id)
}

func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for i, t := range v.types {
		if !v.optional[i] && !archetype.HasComponent(t) {
			return false
		}
	}
	return true
}

// columnIndices maps each view field to the archetype column holding it, -1
// when the archetype lacks the type.
func (v *View[T]) columnIndices(archetype *Archetype) []int {
	indices := make([]int, len(v.types))
	for i, t := range v.types {
		indices[i] = archetype.columnIndex(t)
	}
	return indices
}

func (v *View[T]) populate(resultPtr unsafe.Pointer, archetype *Archetype, entityIndex int, columns []int) bool {
	for i, col := range columns {
		fieldPtr := unsafe.Add(resultPtr, v.fieldOffset[i])

		var component any
		if col >= 0 {
			component = archetype.columns[col].Get(entityIndex)
		}
		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}

	if v.hasId {
		*(*EntityId)(unsafe.Add(resultPtr, v.idOffset)) = NewEntityId(archetype.id, uint32(entityIndex))
	}
	return true
}

func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		if len(archetype.columns) == 0 {
			return
		}
		columns := v.columnIndices(archetype)

		var result T
		for index := range archetype.columns[0].Iter() {
			if !v.populate(unsafe.Pointer(&result), archetype, index, columns) {
				continue
			}
			if !yield(NewEntityId(archetype.id, uint32(index)), result) {
				return
			}
		}
	}
}

// Iter yields every matching entity. Archetype order is unspecified; within
// an archetype entities come in slot order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.archetypes {
			if !v.matchesArchetype(archetype) {
				continue
			}
			for id, item := range v.iterArchetype(archetype) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values is Iter without the IDs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range v.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}
