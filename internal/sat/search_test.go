package sat

import (
	"context"
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

// a + b + a b => x + y + x y
const bicliqueDoc = `
name: biclique
dots: [a, b, x, y]
forks:
  - {tip: a, pit: [x]}
  - {tip: a, pit: [y]}
  - {tip: a, pit: [x, y]}
  - {tip: b, pit: [x]}
  - {tip: b, pit: [y]}
  - {tip: b, pit: [x, y]}
joins:
  - {tip: x, pit: [a]}
  - {tip: x, pit: [b]}
  - {tip: x, pit: [a, b]}
  - {tip: y, pit: [a]}
  - {tip: y, pit: [b]}
  - {tip: y, pit: [a, b]}
`

const arrowDoc = `
name: arrow
dots: [a, x]
forks:
  - {tip: a, pit: [x]}
joins:
  - {tip: x, pit: [a]}
`

func search(t *testing.T, doc string, e Encoding, mode Search) *Result {
	t.Helper()
	res, err := NewSearcher(load(t, doc), e, mode, nil).Run(context.Background())
	require.NoError(t, err)
	return res
}

func formats(s *cex.Structure, comps []*FiringComponent) []string {
	out := make([]string, len(comps))
	for i, c := range comps {
		out[i] = c.Format(s.Domain)
	}
	return out
}

func TestSearchSingleArrow(t *testing.T) {
	res := search(t, arrowDoc, PortLink, MinSolutions)
	require.Len(t, res.Components, 1)
	assert.Equal(t, "{a:(x)} => {x:(a)}", res.Components[0].Format(load(t, arrowDoc).Domain))
	assert.True(t, res.Exhausted)
	assert.Nil(t, res.Deadlock)
}

func TestSearchBicliqueFindsThirteenComponents(t *testing.T) {
	for _, e := range []Encoding{PortLink, ForkJoin} {
		res := search(t, bicliqueDoc, e, MinSolutions)
		assert.Len(t, res.Components, 13, e.String())
	}
}

func TestSearchBicliqueCanonicalOrder(t *testing.T) {
	s := load(t, bicliqueDoc)
	res, err := NewSearcher(s, PortLink, MinSolutions, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"{a:(x), b:(x)} => {x:(a b)}",
		"{a:(x y), b:(x y)} => {x:(a b), y:(a b)}",
		"{a:(x y), b:(x)} => {x:(a b), y:(a)}",
		"{a:(x y), b:(y)} => {x:(a), y:(a b)}",
		"{a:(x), b:(x y)} => {x:(a b), y:(b)}",
		"{a:(y), b:(x y)} => {x:(b), y:(a b)}",
		"{a:(y), b:(y)} => {y:(a b)}",
		"{a:(x)} => {x:(a)}",
		"{a:(x y)} => {x:(a), y:(a)}",
		"{a:(y)} => {y:(a)}",
		"{b:(x)} => {x:(b)}",
		"{b:(x y)} => {x:(b), y:(b)}",
		"{b:(y)} => {y:(b)}",
	}, formats(s, res.Components))
}

// Both encodings and both search modes must agree on the canonical
// component set, whatever models they examine along the way.
func TestSearchEncodingsAndModesAgree(t *testing.T) {
	s := load(t, bicliqueDoc)
	reference := formats(s, search(t, bicliqueDoc, PortLink, MinSolutions).Components)

	for _, e := range []Encoding{PortLink, ForkJoin} {
		for _, mode := range []Search{MinSolutions, AllSolutions} {
			res := search(t, bicliqueDoc, e, mode)
			assert.Equal(t, reference, formats(s, res.Components),
				"%s/%s", e.String(), mode.String())
		}
	}
}

func TestSearchIsDeterministic(t *testing.T) {
	s := load(t, bicliqueDoc)
	first := formats(s, search(t, bicliqueDoc, ForkJoin, MinSolutions).Components)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, formats(s, search(t, bicliqueDoc, ForkJoin, MinSolutions).Components))
	}
}

func TestSearchComponentsAreSingularAndThin(t *testing.T) {
	res := search(t, bicliqueDoc, PortLink, AllSolutions)
	for _, c := range res.Components {
		tips := map[cex.DotID]bool{}
		for _, w := range c.Forks {
			assert.False(t, tips[w.Tip], "duplicate fork tip")
			tips[w.Tip] = true
		}
		for _, w := range c.Joins {
			assert.False(t, tips[w.Tip], "join tip reused as fork tip")
		}
	}
}

func TestSearchDeadlock(t *testing.T) {
	// A lone fork has no coherent support, so no firing component
	// exists.
	doc := `
name: stuck
dots: [a, x]
forks:
  - {tip: a, pit: [x]}
`
	for _, e := range []Encoding{PortLink, ForkJoin} {
		res := search(t, doc, e, MinSolutions)
		assert.Empty(t, res.Components, e.String())
		require.NotNil(t, res.Deadlock, e.String())
		assert.Equal(t, "stuck", res.Deadlock.Structure)
		assert.Equal(t, []string{"a", "x"}, res.Deadlock.Blocking)
	}
}

func TestSearchEmptyStructureDeadlocks(t *testing.T) {
	res := search(t, `
name: empty
dots: [a]
`, PortLink, MinSolutions)
	require.NotNil(t, res.Deadlock)
	assert.Empty(t, res.Deadlock.Blocking)
}

func TestSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSearcher(load(t, bicliqueDoc), PortLink, MinSolutions, nil).Run(ctx)
	require.Error(t, err)
	assert.True(t, IsSolverFailure(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseEncodingAndSearch(t *testing.T) {
	for spec, want := range map[string]Encoding{
		"pl": PortLink, "port-link": PortLink,
		"fj": ForkJoin, "fork-join": ForkJoin,
	} {
		e, err := ParseEncoding(spec)
		require.NoError(t, err, spec)
		assert.Equal(t, want, e, spec)
	}
	_, err := ParseEncoding("bogus")
	assert.Error(t, err)

	mode, err := ParseSearch("all")
	require.NoError(t, err)
	assert.Equal(t, AllSolutions, mode)
	_, err = ParseSearch("bogus")
	assert.Error(t, err)
}
