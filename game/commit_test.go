package game

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/plus3/sokoban/geom"
	"github.com/plus3/sokoban/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitRollsBackIntoWall(t *testing.T) {
	m := level.Map{
		Name:    "rollback",
		Walls:   []geom.Cell{{X: -1}},
		Boxes:   []geom.Cell{{X: 1}},
		Targets: []geom.Cell{{X: 3}},
	}
	store, err := level.NewStore(m)
	require.NoError(t, err)

	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.MoveDuration = 0
	cfg.Logger = log.New(&buf, "", 0)
	g, err := New(store, cfg)
	require.NoError(t, err)

	player, ok := g.storage.ResolveEntityRef(g.session.Get().Entities.Player)
	require.True(t, ok)

	// force a move the resolver would never allow
	sess := g.session.Get()
	sess.Anim = &Animation{
		Outcome:    playerOnly,
		Direction:  geom.West,
		Player:     player,
		PlayerFrom: geom.Cell{},
	}
	sess.State = Animating

	g.Tick(0)

	assert.Equal(t, Idle, g.State())
	assert.Equal(t, geom.Cell{}, g.PlayerCell())
	assert.Equal(t, 0, g.Session().Moves)
	assert.Contains(t, buf.String(), "rejecting west move")

	info, _ := g.Player()
	assert.Equal(t, geom.Cell{}.Point(0), info.Position)
}

func TestCommitRollsBackBoxOverlap(t *testing.T) {
	m := level.Map{
		Name:    "overlap",
		Boxes:   []geom.Cell{{X: 1}, {X: 2}},
		Targets: []geom.Cell{{X: 5}, {X: 6}},
	}
	store, err := level.NewStore(m)
	require.NoError(t, err)

	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.MoveDuration = 10 * time.Millisecond
	cfg.Logger = log.New(&buf, "", 0)
	g, err := New(store, cfg)
	require.NoError(t, err)

	sess := g.session.Get()
	player, _ := g.storage.ResolveEntityRef(sess.Entities.Player)
	sess.Anim = &Animation{
		Outcome:    pushes(0),
		Direction:  geom.East,
		Player:     player,
		PlayerFrom: geom.Cell{},
		Box:        sess.Entities.Boxes[0],
		BoxFrom:    geom.Cell{X: 1},
	}
	sess.State = Animating

	g.Tick(1)

	assert.Equal(t, Idle, g.State())
	assert.Equal(t, []geom.Cell{{X: 1}, {X: 2}}, g.BoxCells())
	assert.Equal(t, geom.Cell{}, g.PlayerCell())
	assert.Equal(t, 0, g.Session().Pushes)
	assert.Contains(t, buf.String(), "box 0 entered box 1")
}

func TestInboxResetLatches(t *testing.T) {
	var b inbox
	b.put(IntentReset)
	b.put(IntentNorth)
	b.put(IntentNone)

	p := b.drain()
	assert.True(t, p.Reset)
	assert.Equal(t, geom.North, p.Move)
	assert.Equal(t, PendingIntent{}, b.drain())
}
