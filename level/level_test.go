package level_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plus3/sokoban/geom"
	"github.com/plus3/sokoban/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(name string) level.Map {
	return level.Map{
		Name:    name,
		Boxes:   []geom.Cell{{X: 1, Z: 0}},
		Targets: []geom.Cell{{X: 2, Z: 0}},
	}
}

func TestStoreIndexWraps(t *testing.T) {
	store, err := level.NewStore(named("one"), named("two"), named("three"))
	require.NoError(t, err)
	require.Equal(t, 3, store.Len())

	tests := []struct {
		index, want int
	}{
		{1, 1},
		{2, 2},
		{3, 3},
		{4, 1},
		{7, 1},
		{0, 3},
		{-1, 2},
		{-3, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, store.Index(tt.index), "index %d", tt.index)
	}

	m, err := store.Load(4)
	require.NoError(t, err)
	assert.Equal(t, "one", m.Name)

	m, err = store.Load(0)
	require.NoError(t, err)
	assert.Equal(t, "three", m.Name)
}

func TestStoreEmpty(t *testing.T) {
	_, err := level.NewStore()
	assert.ErrorIs(t, err, level.ErrNoMaps)

	var store *level.Store
	assert.Equal(t, 0, store.Len())
	_, err = store.Load(1)
	assert.ErrorIs(t, err, level.ErrNoMaps)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		m     level.Map
		field string
	}{
		{
			name:  "box count",
			m:     level.Map{Boxes: []geom.Cell{{X: 1}}},
			field: "boxes",
		},
		{
			name: "box in wall",
			m: level.Map{
				Walls:   []geom.Cell{{X: 1}},
				Boxes:   []geom.Cell{{X: 1}},
				Targets: []geom.Cell{{X: 2}},
			},
			field: "boxes",
		},
		{
			name: "stacked boxes",
			m: level.Map{
				Boxes:   []geom.Cell{{X: 1}, {X: 1}},
				Targets: []geom.Cell{{X: 2}, {X: 3}},
			},
			field: "boxes",
		},
		{
			name:  "player in wall",
			m:     level.Map{Walls: []geom.Cell{{}}},
			field: "player",
		},
		{
			name: "player on box",
			m: level.Map{
				Boxes:   []geom.Cell{{}},
				Targets: []geom.Cell{{X: 1}},
			},
			field: "player",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			var mapErr *level.MapError
			require.True(t, errors.As(err, &mapErr), "got %v", err)
			assert.Equal(t, tt.field, mapErr.Field)
		})
	}

	assert.NoError(t, named("ok").Validate())
	assert.NoError(t, level.Map{}.Validate(), "an empty map is trivially solved")
}

func TestNewStoreReportsPosition(t *testing.T) {
	bad := named("bad")
	bad.Targets = nil

	_, err := level.NewStore(named("good"), bad)
	var mapErr *level.MapError
	require.ErrorAs(t, err, &mapErr)
	assert.Equal(t, 2, mapErr.Index)
	assert.Contains(t, err.Error(), "map 2 (bad)")
}

const twoMaps = `
maps:
  - name: Corridor
    player: {x: 1, z: 0}
    walls: {x: [0, 4], z: [0, 0]}
    boxes: {x: [2], z: [0]}
    targets: {x: [3], z: [0]}
    floors: {x: [1, 2, 3], z: [0, 0, 0]}
  - name: Open
    walls: {x: [], z: []}
    boxes: {x: [], z: []}
    targets: {x: [], z: []}
    floors: {x: [], z: []}
`

func TestParse(t *testing.T) {
	store, err := level.Parse(strings.NewReader(twoMaps))
	require.NoError(t, err)
	require.Equal(t, 2, store.Len())

	m, err := store.Load(1)
	require.NoError(t, err)
	assert.Equal(t, "Corridor", m.Name)
	assert.Equal(t, geom.Cell{X: 1, Z: 0}, m.Player)
	assert.Equal(t, []geom.Cell{{X: 0}, {X: 4}}, m.Walls)
	assert.Equal(t, []geom.Cell{{X: 2}}, m.Boxes)
	assert.Equal(t, []geom.Cell{{X: 3}}, m.Targets)
	assert.Len(t, m.Floors, 3)

	m, err = store.Load(2)
	require.NoError(t, err)
	assert.Equal(t, geom.Cell{}, m.Player, "player defaults to the origin")
	assert.Empty(t, m.Boxes)
}

func TestParseJSON(t *testing.T) {
	doc := `{"maps": [{"name": "J", "walls": {"x": [5], "z": [5]},
		"boxes": {"x": [1], "z": [1]}, "targets": {"x": [2], "z": [2]},
		"floors": {"x": [], "z": []}}]}`

	store, err := level.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	m, err := store.Load(1)
	require.NoError(t, err)
	assert.Equal(t, "J", m.Name)
	assert.Equal(t, []geom.Cell{{X: 1, Z: 1}}, m.Boxes)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "missing list",
			doc:  "maps:\n  - name: A\n    walls: {x: [], z: []}\n    boxes: {x: [], z: []}\n    targets: {x: [], z: []}\n",
			want: "floors: missing",
		},
		{
			name: "length mismatch",
			doc:  "maps:\n  - name: A\n    walls: {x: [1, 2], z: [1]}\n    boxes: {x: [], z: []}\n    targets: {x: [], z: []}\n    floors: {x: [], z: []}\n",
			want: "walls: 2 x values for 1 z values",
		},
		{
			name: "unknown field",
			doc:  "maps:\n  - name: A\n    crates: {x: [], z: []}\n",
			want: "decode maps",
		},
		{
			name: "not a document",
			doc:  "maps: 12",
			want: "decode maps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := level.Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := level.Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, level.ErrNoMaps)

	_, err = level.Parse(strings.NewReader("maps: []"))
	assert.ErrorIs(t, err, level.ErrNoMaps)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps.yaml")
	require.NoError(t, os.WriteFile(path, []byte(twoMaps), 0o644))

	store, err := level.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())

	_, err = level.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefault(t *testing.T) {
	store, err := level.Default()
	require.NoError(t, err)
	require.Equal(t, 3, store.Len())

	names := []string{"Courtyard", "Gallery", "Cellar"}
	for i, m := range store.Maps() {
		assert.Equal(t, names[i], m.Name)
		assert.Equal(t, len(m.Boxes), len(m.Targets))
		assert.NotEmpty(t, m.Walls)
		assert.NotEmpty(t, m.Floors)
	}
}

func TestMapExtent(t *testing.T) {
	m := level.Map{
		Player:  geom.Cell{X: 1, Z: 1},
		Walls:   []geom.Cell{{X: 0, Z: 0}, {X: 4, Z: 0}, {X: 0, Z: 3}},
		Boxes:   []geom.Cell{{X: 2, Z: 1}},
		Targets: []geom.Cell{{X: 3, Z: 1}},
	}
	lo, hi := m.Extent()
	assert.Equal(t, geom.Cell{X: 0, Z: 0}, lo)
	assert.Equal(t, geom.Cell{X: 4, Z: 3}, hi)

	lo, hi = level.Map{Player: geom.Cell{X: -2, Z: 5}}.Extent()
	assert.Equal(t, lo, hi)
}
