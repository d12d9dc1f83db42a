// Package level holds puzzle maps and the ordered store they are selected
// from by 1-based level number.
package level

import (
	"errors"
	"fmt"

	"github.com/plus3/sokoban/geom"
)

// ErrNoMaps is returned when a store or document holds no maps.
var ErrNoMaps = errors.New("level: no maps")

// Map is one authored puzzle. Maps are values; the slices must not be
// modified after the map is placed in a Store.
type Map struct {
	Name    string
	Player  geom.Cell
	Walls   []geom.Cell
	Boxes   []geom.Cell
	Targets []geom.Cell
	Floors  []geom.Cell
}

// Extent returns the south-west and north-east corners of the cells the map
// uses.
func (m Map) Extent() (lo, hi geom.Cell) {
	lo, hi = m.Player, m.Player
	for _, list := range [][]geom.Cell{m.Walls, m.Floors, m.Boxes, m.Targets} {
		for _, c := range list {
			lo.X, hi.X = min(lo.X, c.X), max(hi.X, c.X)
			lo.Z, hi.Z = min(lo.Z, c.Z), max(hi.Z, c.Z)
		}
	}
	return lo, hi
}

// MapError describes a malformed map record.
type MapError struct {
	Index  int // 1-based position in the document
	Name   string
	Field  string
	Reason string
}

func (e *MapError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("level: map %d (%s): %s: %s", e.Index, e.Name, e.Field, e.Reason)
	}
	return fmt.Sprintf("level: map %d: %s: %s", e.Index, e.Field, e.Reason)
}

// Validate checks that the map can be played and won.
func (m Map) Validate() error {
	fail := func(field, reason string, args ...any) error {
		return &MapError{Name: m.Name, Field: field, Reason: fmt.Sprintf(reason, args...)}
	}

	if len(m.Boxes) != len(m.Targets) {
		return fail("boxes", "%d boxes for %d targets", len(m.Boxes), len(m.Targets))
	}

	walls := make(map[geom.Cell]struct{}, len(m.Walls))
	for _, c := range m.Walls {
		walls[c] = struct{}{}
	}

	boxes := make(map[geom.Cell]struct{}, len(m.Boxes))
	for _, c := range m.Boxes {
		if _, ok := walls[c]; ok {
			return fail("boxes", "box at %s is inside a wall", c)
		}
		if _, ok := boxes[c]; ok {
			return fail("boxes", "two boxes at %s", c)
		}
		boxes[c] = struct{}{}
	}

	if _, ok := walls[m.Player]; ok {
		return fail("player", "player starts inside a wall at %s", m.Player)
	}
	if _, ok := boxes[m.Player]; ok {
		return fail("player", "player starts on a box at %s", m.Player)
	}
	return nil
}

// Store is the ordered, read-only collection of maps.
type Store struct {
	maps []Map
}

// NewStore validates the maps and keeps them in order.
func NewStore(maps ...Map) (*Store, error) {
	if len(maps) == 0 {
		return nil, ErrNoMaps
	}
	for i, m := range maps {
		if err := m.Validate(); err != nil {
			var mapErr *MapError
			if errors.As(err, &mapErr) {
				mapErr.Index = i + 1
			}
			return nil, err
		}
	}
	return &Store{maps: maps}, nil
}

// Len returns the number of maps.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.maps)
}

// Index wraps any level number onto 1..Len: ((index-1) mod N) + 1. Zero
// maps to the last level.
func (s *Store) Index(index int) int {
	n := s.Len()
	if n == 0 {
		return 0
	}
	i := (index - 1) % n
	if i < 0 {
		i += n
	}
	return i + 1
}

// Load returns the map for the wrapped level number.
func (s *Store) Load(index int) (Map, error) {
	if s.Len() == 0 {
		return Map{}, ErrNoMaps
	}
	return s.maps[s.Index(index)-1], nil
}

// Maps returns the maps in order.
func (s *Store) Maps() []Map {
	if s == nil {
		return nil
	}
	return s.maps
}
