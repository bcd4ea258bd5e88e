package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/k7f/ascetic/internal/cex"
	"github.com/k7f/ascetic/internal/fuset"
	"github.com/k7f/ascetic/internal/sat"
)

// build runs the full load-validate-search pipeline and projects the
// found components into transitions.
func build(t *testing.T, doc string) (*cex.Structure, []*Transition) {
	t.Helper()
	s, err := cex.Load([]byte(doc), "test")
	require.NoError(t, err)
	require.Empty(t, fuset.Validate(s))

	res, err := sat.NewSearcher(s, sat.PortLink, sat.MinSolutions, nil).Run(context.Background())
	require.NoError(t, err)
	require.Nil(t, res.Deadlock)

	transitions, err := NewTransitions(s, res.Components)
	require.NoError(t, err)
	return s, transitions
}

func mustDot(t *testing.T, s *cex.Structure, name string) cex.DotID {
	t.Helper()
	id, ok := s.Domain.Lookup(name)
	require.True(t, ok)
	return id
}

const weightedArrowDoc = `
dots: [a, x]
capacity:
  x: 3
forks:
  - {tip: a, pit: [x], weight: 2}
joins:
  - {tip: x, pit: [a], weight: 2}
`

func TestTransitionEnablementAndFiring(t *testing.T) {
	s, transitions := build(t, weightedArrowDoc)
	require.Len(t, transitions, 1)
	tr := transitions[0]
	a, x := mustDot(t, s, "a"), mustDot(t, s, "x")

	m := cex.NewMarking(s.Domain.Size())
	m[a] = 2
	assert.True(t, tr.Enabled(m, s.Capacity))

	m[a] = 1
	assert.False(t, tr.Enabled(m, s.Capacity))

	// Enough tokens but no room behind the join tip.
	m[a], m[x] = 2, 2
	assert.False(t, tr.Enabled(m, s.Capacity))

	m[a], m[x] = 2, 0
	tr.Fire(m)
	assert.Equal(t, int64(0), m[a])
	assert.Equal(t, int64(2), m[x])
}

func TestZeroWeightNeedsOneToken(t *testing.T) {
	s, transitions := build(t, `
dots: [a, x]
forks:
  - {tip: a, pit: [x], weight: 0}
joins:
  - {tip: x, pit: [a], weight: 0}
`)
	require.Len(t, transitions, 1)
	tr := transitions[0]
	a, x := mustDot(t, s, "a"), mustDot(t, s, "x")

	m := cex.NewMarking(s.Domain.Size())
	assert.False(t, tr.Enabled(m, s.Capacity))

	m[a] = 1
	require.True(t, tr.Enabled(m, s.Capacity))
	tr.Fire(m)
	assert.Equal(t, int64(1), m[a], "zero weight moves nothing")
	assert.Equal(t, int64(0), m[x])
}

const inhibitorDoc = `
dots: [a, p1, pg]
forks:
  - {tip: p1, pit: [pg]}
  - {tip: a, pit: [pg], weight: omega}
joins:
  - {tip: pg, pit: [a, p1]}
`

func TestInhibitorArm(t *testing.T) {
	s, transitions := build(t, inhibitorDoc)
	require.Len(t, transitions, 1)
	tr := transitions[0]
	a, p1, pg := mustDot(t, s, "a"), mustDot(t, s, "p1"), mustDot(t, s, "pg")

	m := cex.NewMarking(s.Domain.Size())
	m[p1] = 1
	require.True(t, tr.Enabled(m, s.Capacity))

	m[a] = 2
	assert.False(t, tr.Enabled(m, s.Capacity), "inhibited dot holds tokens")

	m[a] = 0
	tr.Fire(m)
	assert.Equal(t, int64(0), m[a], "inhibitor arm moves no tokens")
	assert.Equal(t, int64(0), m[p1])
	assert.Equal(t, int64(1), m[pg])
}

const exhibitorDoc = `
dots: [t, g, pg]
forks:
  - {tip: t, pit: [g, pg]}
joins:
  - {tip: g, pit: [t]}
  - {tip: pg, pit: [t], weight: omega}
`

func TestExhibitorArm(t *testing.T) {
	s, transitions := build(t, exhibitorDoc)
	require.Len(t, transitions, 1)
	tr := transitions[0]
	tt, g, pg := mustDot(t, s, "t"), mustDot(t, s, "g"), mustDot(t, s, "pg")

	m := cex.NewMarking(s.Domain.Size())
	m[tt] = 1
	assert.False(t, tr.Enabled(m, s.Capacity), "exhibited dot is empty")

	m[pg] = 1
	require.True(t, tr.Enabled(m, s.Capacity))
	tr.Fire(m)
	assert.Equal(t, int64(0), m[tt])
	assert.Equal(t, int64(1), m[g])
	assert.Equal(t, int64(1), m[pg], "exhibitor arm moves no tokens")
}

func TestConflictsWith(t *testing.T) {
	_, transitions := build(t, `
dots: [a, x, b, y]
forks:
  - {tip: a, pit: [x]}
  - {tip: b, pit: [y]}
joins:
  - {tip: x, pit: [a]}
  - {tip: y, pit: [b]}
`)
	require.Len(t, transitions, 2)
	assert.False(t, transitions[0].ConflictsWith(transitions[1]))
	assert.True(t, transitions[0].ConflictsWith(transitions[0]))
}
