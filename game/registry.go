package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/sokoban/ecs"
	"github.com/plus3/sokoban/geom"
	"github.com/plus3/sokoban/level"
)

// EntityInfo is the render-facing description of one entity.
type EntityInfo struct {
	ID       ecs.EntityId
	Kind     Kind
	Cell     geom.Cell
	Position mgl64.Vec3
	Yaw      float64
}

// Observer is told about entity lifetime and level changes. Calls happen on
// the tick goroutine.
type Observer interface {
	EntityCreated(EntityInfo)
	EntityDestroyed(EntityInfo)
	LevelChanged(index int, name string)
}

// NopObserver ignores everything. Embed it to implement part of Observer.
type NopObserver struct{}

func (NopObserver) EntityCreated(EntityInfo)   {}
func (NopObserver) EntityDestroyed(EntityInfo) {}
func (NopObserver) LevelChanged(int, string)   {}

// EntitySet lists the entities populated for one map, in map order.
type EntitySet struct {
	Walls   []ecs.EntityId
	Boxes   []ecs.EntityId
	Targets []ecs.EntityId
	Floors  []ecs.EntityId
	Player  *ecs.EntityRef
}

// Len counts the entities including the player.
func (s EntitySet) Len() int {
	n := len(s.Walls) + len(s.Boxes) + len(s.Targets) + len(s.Floors)
	if s.Player != nil && s.Player.Id != 0 {
		n++
	}
	return n
}

// Registry creates and destroys the entities of a map.
type Registry struct {
	storage  *ecs.Storage
	observer Observer
	info     *ecs.View[struct {
		*Kind
		*geom.Cell
		*Transform
	}]
}

func NewRegistry(storage *ecs.Storage, observer Observer) *Registry {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Registry{
		storage:  storage,
		observer: observer,
		info: ecs.NewView[struct {
			*Kind
			*geom.Cell
			*Transform
		}](storage),
	}
}

// Populate spawns one entity per coordinate of the map plus the player.
func (r *Registry) Populate(m level.Map) EntitySet {
	var set EntitySet

	for _, c := range m.Floors {
		set.Floors = append(set.Floors, r.spawn(KindFloor, c, 0, Floor{}))
	}
	for i, c := range m.Targets {
		set.Targets = append(set.Targets, r.spawn(KindTarget, c, 0, Target{Index: i}))
	}
	for _, c := range m.Walls {
		set.Walls = append(set.Walls, r.spawn(KindWall, c, 0, Wall{}))
	}
	for i, c := range m.Boxes {
		set.Boxes = append(set.Boxes, r.spawn(KindBox, c, 0, Box{Index: i}))
	}

	player := r.spawn(KindPlayer, m.Player, geom.North.Yaw(), Player{Facing: geom.North})
	set.Player = r.storage.CreateEntityRef(player)

	return set
}

func (r *Registry) spawn(kind Kind, c geom.Cell, yaw float64, tag any) ecs.EntityId {
	shape := kind.Shape()
	position := shape.At(c)

	id := r.storage.Spawn(
		kind,
		c,
		Transform{Position: position, Yaw: yaw},
		Bounds{AABB: shape.Bounds(position)},
		tag,
	)
	r.observer.EntityCreated(EntityInfo{ID: id, Kind: kind, Cell: c, Position: position, Yaw: yaw})
	return id
}

// Clear deletes every entity of the set and compacts the storage so the next
// map starts from dense slots.
func (r *Registry) Clear(set EntitySet) {
	groups := [][]ecs.EntityId{set.Floors, set.Targets, set.Walls, set.Boxes}
	if id, ok := r.storage.ResolveEntityRef(set.Player); ok {
		groups = append(groups, []ecs.EntityId{id})
	}

	for _, group := range groups {
		for _, id := range group {
			info, ok := r.Info(id)
			if !ok {
				continue
			}
			r.storage.Delete(id)
			r.observer.EntityDestroyed(info)
		}
	}
	r.storage.Compact()
}

// Info describes a live entity.
func (r *Registry) Info(id ecs.EntityId) (EntityInfo, bool) {
	e := r.info.Get(id)
	if e == nil {
		return EntityInfo{}, false
	}
	return EntityInfo{
		ID:       id,
		Kind:     *e.Kind,
		Cell:     *e.Cell,
		Position: e.Transform.Position,
		Yaw:      e.Transform.Yaw,
	}, true
}

// InfoRef describes the entity behind ref. Refs of deleted entities report
// false.
func (r *Registry) InfoRef(ref *ecs.EntityRef) (EntityInfo, bool) {
	e := r.info.GetRef(ref)
	if e == nil {
		return EntityInfo{}, false
	}
	return EntityInfo{
		ID:       ref.Id,
		Kind:     *e.Kind,
		Cell:     *e.Cell,
		Position: e.Transform.Position,
		Yaw:      e.Transform.Yaw,
	}, true
}

// place moves an entity onto a cell and refreshes its bounds.
func place(storage *ecs.Storage, id ecs.EntityId, kind Kind, c geom.Cell) {
	shape := kind.Shape()
	position := shape.At(c)

	if cell := ecs.ReadComponent[geom.Cell](storage, id); cell != nil {
		*cell = c
	}
	if t := ecs.ReadComponent[Transform](storage, id); t != nil {
		t.Position = position
	}
	if b := ecs.ReadComponent[Bounds](storage, id); b != nil {
		b.AABB = shape.Bounds(position)
	}
}
