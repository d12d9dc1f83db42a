package game_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/sokoban/game"
	"github.com/plus3/sokoban/geom"
	"github.com/stretchr/testify/assert"
)

func cube(c geom.Cell) geom.AABB {
	return geom.CubeShape.Bounds(geom.CubeShape.At(c))
}

func board(player geom.Cell, walls []geom.Cell, boxes ...geom.Cell) game.Board {
	b := game.Board{Player: geom.CubeShape.At(player)}
	for _, w := range walls {
		b.Walls = append(b.Walls, cube(w))
	}
	for i, c := range boxes {
		b.Boxes = append(b.Boxes, game.BoxBody{
			Index:    i,
			Position: geom.CubeShape.At(c),
			Bounds:   cube(c),
		})
	}
	return b
}

func TestResolveMove(t *testing.T) {
	origin := geom.Cell{}
	east := geom.Cell{X: 1}
	east2 := geom.Cell{X: 2}

	tests := []struct {
		name  string
		board game.Board
		dir   geom.Direction
		want  game.Outcome
	}{
		{
			name:  "open floor",
			board: board(origin, nil),
			dir:   geom.East,
			want:  game.Outcome{Kind: game.PlayerOnly, Box: -1},
		},
		{
			name:  "wall ahead",
			board: board(origin, []geom.Cell{east}),
			dir:   geom.East,
			want:  game.Outcome{Kind: game.Blocked, Box: -1},
		},
		{
			name:  "free box",
			board: board(origin, nil, geom.Cell{Z: 5}, east),
			dir:   geom.East,
			want:  game.Outcome{Kind: game.PlayerPushesBox, Box: 1},
		},
		{
			name:  "box against wall",
			board: board(origin, []geom.Cell{east2}, east),
			dir:   geom.East,
			want:  game.Outcome{Kind: game.Blocked, Box: -1},
		},
		{
			name:  "two boxes in a row",
			board: board(origin, nil, east, east2),
			dir:   geom.East,
			want:  game.Outcome{Kind: game.Blocked, Box: -1},
		},
		{
			name:  "box behind the player",
			board: board(origin, nil, geom.Cell{X: -1}),
			dir:   geom.East,
			want:  game.Outcome{Kind: game.PlayerOnly, Box: -1},
		},
		{
			name:  "invalid direction",
			board: board(origin, nil),
			dir:   geom.Direction(0),
			want:  game.Outcome{Kind: game.Blocked, Box: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, game.ResolveMove(tt.board, tt.dir))
		})
	}
}

func TestResolveMoveEveryDirection(t *testing.T) {
	for _, d := range geom.Directions {
		next := geom.Cell{}.Add(d)
		beyond := next.Add(d)

		assert.Equal(t, game.PlayerOnly, game.ResolveMove(board(geom.Cell{}, nil), d).Kind, d.String())
		assert.Equal(t, game.Blocked, game.ResolveMove(board(geom.Cell{}, []geom.Cell{next}), d).Kind, d.String())
		assert.Equal(t, game.PlayerPushesBox, game.ResolveMove(board(geom.Cell{}, nil, next), d).Kind, d.String())
		assert.Equal(t, game.Blocked, game.ResolveMove(board(geom.Cell{}, []geom.Cell{beyond}, next), d).Kind, d.String())
	}
}

func TestCountBoxesOnTarget(t *testing.T) {
	target := geom.TargetShape.At(geom.Cell{X: 2, Z: 2})

	tests := []struct {
		name  string
		boxes []geom.AABB
		want  int
	}{
		{"none", nil, 0},
		{"on target", []geom.AABB{cube(geom.Cell{X: 2, Z: 2})}, 1},
		{"next to target", []geom.AABB{cube(geom.Cell{X: 3, Z: 2})}, 0},
		{
			name:  "bottom face touches the point",
			boxes: []geom.AABB{geom.Around(mgl64.Vec3{2, 0.5, 2}, mgl64.Vec3{0.5, 0.5, 0.5})},
			want:  1,
		},
		{
			name:  "top face touches the point",
			boxes: []geom.AABB{geom.Around(mgl64.Vec3{2, -0.5, 2}, mgl64.Vec3{0.5, 0.5, 0.5})},
			want:  1,
		},
		{
			name:  "just below the point",
			boxes: []geom.AABB{geom.Around(mgl64.Vec3{2, -0.51, 2}, mgl64.Vec3{0.5, 0.5, 0.5})},
			want:  0,
		},
		{
			name:  "two boxes one target",
			boxes: []geom.AABB{cube(geom.Cell{X: 2, Z: 2}), cube(geom.Cell{X: 2, Z: 2})},
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, game.CountBoxesOnTarget([]mgl64.Vec3{target}, tt.boxes))
		})
	}

	assert.Equal(t, mgl64.Vec3{2, 0, 2}, game.TargetPoint(target))
}

func TestEase(t *testing.T) {
	assert.InDelta(t, 0, game.Ease(0), 1e-12)
	assert.InDelta(t, 0.5, game.Ease(0.5), 1e-12)
	assert.InDelta(t, 1, game.Ease(1), 1e-12)
	assert.InDelta(t, 1, game.Ease(2), 1e-12)
	assert.InDelta(t, 0, game.Ease(-1), 1e-12)

	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := game.Ease(float64(i) / 100)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestAnimationProgress(t *testing.T) {
	a := &game.Animation{Elapsed: 0.05}
	assert.InDelta(t, 0.5, a.Progress(0.1), 1e-12)
	assert.Equal(t, 1.0, a.Progress(0))

	a.Elapsed = 0.5
	assert.Equal(t, 1.0, a.Progress(0.1))
}
