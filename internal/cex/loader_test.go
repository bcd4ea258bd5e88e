package cex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arrowDoc = `
name: arrow
dots: [a, x]
capacity:
  x: 3
forks:
  - {tip: a, pit: [x], weight: 2}
joins:
  - {tip: x, pit: [a], weight: 2}
starts:
  - {a: 4}
goals:
  - {x: 2}
`

func TestLoadArrow(t *testing.T) {
	s, err := Load([]byte(arrowDoc), "fallback")
	require.NoError(t, err)

	assert.Equal(t, "arrow", s.Name)
	assert.Equal(t, 2, s.Domain.Size())

	a, ok := s.Domain.Lookup("a")
	require.True(t, ok)
	x, ok := s.Domain.Lookup("x")
	require.True(t, ok)

	assert.Equal(t, Omega, s.CapacityOf(a))
	assert.Equal(t, Weight(3), s.CapacityOf(x))

	forks := s.Forks()
	require.Len(t, forks, 1)
	assert.Equal(t, a, forks[0].Tip)
	assert.Equal(t, []DotID{x}, forks[0].Pit)
	assert.Equal(t, Weight(2), forks[0].Weight)

	joins := s.Joins()
	require.Len(t, joins, 1)
	assert.Equal(t, x, joins[0].Tip)

	require.Len(t, s.Starts, 1)
	assert.Equal(t, int64(4), s.Starts[0][a])
	require.Len(t, s.Goals, 1)
	assert.Equal(t, int64(2), s.Goals[0][x])
}

func TestLoadFallbackName(t *testing.T) {
	s, err := Load([]byte("dots: [a]\n"), "from-filename")
	require.NoError(t, err)
	assert.Equal(t, "from-filename", s.Name)
}

func TestLoadOmegaWeight(t *testing.T) {
	doc := `
dots: [a, x]
forks:
  - {tip: a, pit: [x], weight: omega}
joins:
  - {tip: x, pit: [a], weight: "ω"}
`
	s, err := Load([]byte(doc), "t")
	require.NoError(t, err)
	assert.Equal(t, Omega, s.Forks()[0].Weight)
	assert.Equal(t, Omega, s.Joins()[0].Weight)
}

func TestLoadRejections(t *testing.T) {
	cases := map[string]string{
		"undeclared fork tip": `
dots: [a]
forks:
  - {tip: z, pit: [a]}
`,
		"undeclared arm": `
dots: [a]
joins:
  - {tip: a, pit: [z]}
`,
		"negative weight": `
dots: [a, x]
forks:
  - {tip: a, pit: [x], weight: -1}
`,
		"undeclared capacity dot": `
dots: [a]
capacity:
  z: 1
`,
		"negative start": `
dots: [a]
starts:
  - {a: -1}
`,
		"marking of undeclared dot": `
dots: [a]
goals:
  - {z: 1}
`,
		"malformed yaml": `{dots: [`,
	}
	for name, doc := range cases {
		_, err := Load([]byte(doc), "t")
		assert.Error(t, err, name)
	}
}

func TestMergeUnifiesDotsByName(t *testing.T) {
	left, err := Load([]byte(`
name: left
dots: [a, x]
forks:
  - {tip: a, pit: [x]}
starts:
  - {a: 1}
`), "left")
	require.NoError(t, err)

	right, err := Load([]byte(`
name: right
dots: [x, b, a]
joins:
  - {tip: x, pit: [a, b]}
starts:
  - {b: 2}
`), "right")
	require.NoError(t, err)

	left.Merge(right)
	assert.Equal(t, 3, left.Domain.Size())

	b, ok := left.Domain.Lookup("b")
	require.True(t, ok)
	require.Len(t, left.Starts, 2)
	assert.Equal(t, left.Domain.Size(), len(left.Starts[0]))
	assert.Equal(t, int64(2), left.Starts[1][b])
	require.Len(t, left.Joins(), 1)
}
