package ecs

import (
	"reflect"
	"slices"
	"weak"

	"github.com/kamstrup/intmap"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype holds every entity that has exactly the same set of component
// types, one column per type. Slot indices line up across columns.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []componentColumn
	refs    *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

// NewArchetype creates an archetype for the given sorted component types.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]componentColumn, len(types)),
		refs:    intmap.New[EntityId, weak.Pointer[EntityRef]](64),
	}
	for i, typ := range types {
		a.columns[i] = registry.newColumn(typ)
	}
	return a
}

func (a *Archetype) columnIndex(t reflect.Type) int {
	return slices.Index(a.types, t)
}

// Spawn appends one value per column and returns the shared slot index.
func (a *Archetype) Spawn(components []any) uint32 {
	slot := -1
	for _, comp := range components {
		if i := a.columnIndex(componentType(comp)); i >= 0 {
			slot = a.columns[i].Append(comp)
		}
	}
	return uint32(slot)
}

// GetComponent returns a pointer to the component, or nil if the slot is empty
// or the archetype has no such column.
func (a *Archetype) GetComponent(entityIndex uint32, compType reflect.Type) any {
	i := a.columnIndex(compType)
	if i < 0 {
		return nil
	}
	return a.columns[i].Get(int(entityIndex))
}

// Delete empties the slot in every column and invalidates any live ref.
func (a *Archetype) Delete(entityIndex uint32) {
	id := NewEntityId(a.id, entityIndex)
	if ptr, ok := a.refs.Get(id); ok {
		if ref := ptr.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(id)
	}
	for _, col := range a.columns {
		col.Delete(int(entityIndex))
	}
}

// Has reports whether the slot holds a live entity.
func (a *Archetype) Has(entityIndex uint32) bool {
	return len(a.columns) > 0 && a.columns[0].Has(int(entityIndex))
}

// HasComponent reports whether the archetype carries the component type.
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return a.columnIndex(compType) >= 0
}

func (a *Archetype) ID() uint32 {
	return a.id
}

func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Len()
}

// Compact packs live slots to the front of every column. Live refs are
// rewritten to the new IDs; refs whose targets were collected are dropped.
func (a *Archetype) Compact() {
	if len(a.columns) == 0 {
		return
	}

	moved := a.columns[0].Compact()
	for _, col := range a.columns[1:] {
		col.Compact()
	}

	kept := make(map[EntityId]weak.Pointer[EntityRef], a.refs.Len())
	for oldIdx, newIdx := range moved {
		ptr, ok := a.refs.Get(NewEntityId(a.id, uint32(oldIdx)))
		if !ok {
			continue
		}
		if ref := ptr.Value(); ref != nil {
			ref.Id = NewEntityId(a.id, uint32(newIdx))
			kept[ref.Id] = ptr
		}
	}

	a.refs.Clear()
	for id, ptr := range kept {
		a.refs.Put(id, ptr)
	}
}

// Iter yields the IDs of all live entities in slot order.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for index := range a.columns[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}
