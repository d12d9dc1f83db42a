package ecs

import (
	"reflect"
	"sort"
	"unsafe"
	"weak"
)

// iface mirrors the runtime layout of an interface value so a component
// pointer can be lifted out of an `any` without reflection.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// Storage owns all archetypes and singletons of one world.
type Storage struct {
	archetypes map[uint32]*Archetype
	singletons map[reflect.Type]*singletonEntry
	registry   *ComponentRegistry
}

// NewStorage creates an empty storage backed by the registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		singletons: make(map[reflect.Type]*singletonEntry),
		registry:   registry,
	}
}

// CreateEntityRef returns the ref for id, reusing a live one when it exists.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil || !archetype.Has(id.Index()) {
		return nil
	}

	if ptr, ok := archetype.refs.Get(id); ok {
		if ref := ptr.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{Id: id, Archetype: archetype}
	archetype.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the current ID behind ref.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if ref == nil || ref.Id == 0 {
		return 0, false
	}
	return ref.Id, true
}

// InvalidateEntityRef detaches ref from its entity without deleting the entity.
func (s *Storage) InvalidateEntityRef(ref *EntityRef) bool {
	if ref == nil || ref.Id == 0 {
		return false
	}
	if archetype := s.archetypes[ref.Id.ArchetypeId()]; archetype != nil {
		archetype.refs.Del(ref.Id)
	}
	ref.Id = 0
	ref.Archetype = nil
	return true
}

// GetArchetype returns the archetype holding exactly the given component
// values' types, or nil.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	return s.archetypes[hashTypesToUint32(extractComponentTypes(components))]
}

// Spawn creates an entity from component values (or pointers to values).
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetypeId := hashTypesToUint32(types)

	archetype, ok := s.archetypes[archetypeId]
	if !ok {
		archetype = NewArchetype(archetypeId, types, s.registry)
		s.archetypes[archetypeId] = archetype
	}

	return NewEntityId(archetypeId, archetype.Spawn(components))
}

// Delete removes the entity. Unknown IDs are ignored.
func (s *Storage) Delete(id EntityId) {
	if archetype, ok := s.archetypes[id.ArchetypeId()]; ok {
		archetype.Delete(id.Index())
	}
}

// Alive reports whether id names a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.Has(id.Index())
}

// Compact packs every archetype. IDs held outside of refs become stale.
func (s *Storage) Compact() {
	for _, archetype := range s.archetypes {
		archetype.Compact()
	}
}

// EntityCount returns the number of live entities across archetypes.
func (s *Storage) EntityCount() int {
	n := 0
	for _, archetype := range s.archetypes {
		n += archetype.Len()
	}
	return n
}

// GetComponent returns a pointer to the entity's component of compType, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent reports whether the entity's archetype carries compType.
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.HasComponent(compType)
}

// AddSingleton stores value as the singleton of its type, replacing any
// previous one. Singletons do not need to be registered.
func (s *Storage) AddSingleton(value any) {
	typ := componentType(value)
	v := reflect.New(typ)
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Ptr {
		v.Elem().Set(rv.Elem())
	} else {
		v.Elem().Set(rv)
	}

	if entry, ok := s.singletons[typ]; ok {
		// keep the address stable for Singleton accessors already holding it
		reflect.NewAt(typ, entry.dataPtr).Elem().Set(v.Elem())
		return
	}
	s.singletons[typ] = &singletonEntry{value: v, dataPtr: v.UnsafePointer()}
}

// ReadSingleton points *target at the stored singleton. target must be a
// pointer to a pointer, e.g. `var cfg *Config; storage.ReadSingleton(&cfg)`.
func (s *Storage) ReadSingleton(target any) bool {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}
	entry := s.singletons[rv.Elem().Type().Elem()]
	if entry == nil {
		return false
	}
	rv.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// componentType returns the value type of a component, unwrapping one pointer.
func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// extractComponentTypes returns the sorted component types of the values.
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t := componentType(comp)
		switch t.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}
		types = append(types, t)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 is FNV-1a over the runtime type pointers of sorted types.
func hashTypesToUint32(types []reflect.Type) uint32 {
	const prime uint32 = 16777619
	h := uint32(2166136261)

	for _, t := range types {
		ptr := uintptr((*iface)(unsafe.Pointer(&t)).data)
		val := uint32(ptr)
		if unsafe.Sizeof(ptr) == 8 {
			val ^= uint32(uint64(ptr) >> 32)
		}
		h ^= val
		h *= prime
	}
	return h
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T, or nil when it has none.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
