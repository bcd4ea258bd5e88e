package fuset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/k7f/ascetic/internal/cex"
)

func load(t *testing.T, doc string) *cex.Structure {
	t.Helper()
	s, err := cex.Load([]byte(doc), "test")
	require.NoError(t, err)
	return s
}

func names(dom *cex.Domain, dots []cex.DotID) []string {
	return dom.DotNames(dots)
}

// a feeds x, x feeds b, plus an untouched dot d.
const pipelineDoc = `
dots: [a, x, b, d]
forks:
  - {tip: a, pit: [x]}
  - {tip: x, pit: [b]}
joins:
  - {tip: x, pit: [a]}
  - {tip: b, pit: [x]}
`

func TestDerivedSets(t *testing.T) {
	s := load(t, pipelineDoc)
	f := FromStructure(s)
	dom := s.Domain

	assert.Equal(t, []string{"a", "x"}, names(dom, f.PreSet()))
	assert.Equal(t, []string{"b", "x"}, names(dom, f.PostSet()))
	assert.Equal(t, []string{"b", "x"}, names(dom, f.UnderSet()))
	assert.Equal(t, []string{"a", "x"}, names(dom, f.OverSet()))
	assert.Equal(t, []string{"a", "b", "x"}, names(dom, f.Span()))
	assert.Equal(t, []string{"a", "b", "x"}, names(dom, f.Interior()))
	assert.Empty(t, f.Frame())
	assert.Equal(t, []string{"d"}, names(dom, f.CoInterior()))
}

func TestFrameSplitsOffPassiveContact(t *testing.T) {
	// a forks to x but x tips nothing: both span dots sit on the frame.
	s := load(t, `
dots: [a, x]
forks:
  - {tip: a, pit: [x]}
`)
	f := FromStructure(s)

	assert.Equal(t, []string{"a", "x"}, names(s.Domain, f.Span()))
	assert.Empty(t, f.Interior())
	assert.Equal(t, []string{"a", "x"}, names(s.Domain, f.Frame()))
}

func TestStarPartition(t *testing.T) {
	s := load(t, pipelineDoc)
	f := FromStructure(s)

	stars := f.StarPartition()
	require.Len(t, stars, 3)
	assert.Equal(t, "a", s.Domain.Name(stars[0].Dot))
	assert.Len(t, stars[0].Forks, 1)
	assert.Empty(t, stars[0].Joins)

	// x tips both a fork and a join.
	assert.Equal(t, "x", s.Domain.Name(stars[2].Dot))
	assert.Len(t, stars[2].Forks, 1)
	assert.Len(t, stars[2].Joins, 1)
}
