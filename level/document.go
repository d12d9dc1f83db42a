package level

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/plus3/sokoban/geom"
	"gopkg.in/yaml.v3"
)

//go:embed maps/default.yaml
var defaultMaps []byte

type document struct {
	Maps []record `yaml:"maps"`
}

type record struct {
	Name    string     `yaml:"name"`
	Player  *geom.Cell `yaml:"player"`
	Walls   *coords    `yaml:"walls"`
	Boxes   *coords    `yaml:"boxes"`
	Targets *coords    `yaml:"targets"`
	Floors  *coords    `yaml:"floors"`
}

type coords struct {
	X []int `yaml:"x"`
	Z []int `yaml:"z"`
}

func (c *coords) cells(index int, name, field string) ([]geom.Cell, error) {
	if c == nil {
		return nil, &MapError{Index: index, Name: name, Field: field, Reason: "missing"}
	}
	if len(c.X) != len(c.Z) {
		return nil, &MapError{
			Index:  index,
			Name:   name,
			Field:  field,
			Reason: fmt.Sprintf("%d x values for %d z values", len(c.X), len(c.Z)),
		}
	}
	cells := make([]geom.Cell, len(c.X))
	for i := range c.X {
		cells[i] = geom.Cell{X: c.X[i], Z: c.Z[i]}
	}
	return cells, nil
}

// Parse reads a map document. YAML and JSON forms of the same structure are
// both accepted.
func Parse(r io.Reader) (*Store, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoMaps
		}
		return nil, fmt.Errorf("level: decode maps: %w", err)
	}

	maps := make([]Map, 0, len(doc.Maps))
	for i, rec := range doc.Maps {
		m, err := rec.toMap(i + 1)
		if err != nil {
			return nil, err
		}
		maps = append(maps, m)
	}
	return NewStore(maps...)
}

func (rec record) toMap(index int) (Map, error) {
	m := Map{Name: rec.Name}
	if rec.Player != nil {
		m.Player = *rec.Player
	}

	var err error
	if m.Walls, err = rec.Walls.cells(index, rec.Name, "walls"); err != nil {
		return Map{}, err
	}
	if m.Boxes, err = rec.Boxes.cells(index, rec.Name, "boxes"); err != nil {
		return Map{}, err
	}
	if m.Targets, err = rec.Targets.cells(index, rec.Name, "targets"); err != nil {
		return Map{}, err
	}
	if m.Floors, err = rec.Floors.cells(index, rec.Name, "floors"); err != nil {
		return Map{}, err
	}
	return m, nil
}

// LoadFile parses the map document at path.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Default returns the built-in maps.
func Default() (*Store, error) {
	return Parse(bytes.NewReader(defaultMaps))
}
