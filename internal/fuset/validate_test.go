package fuset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/k7f/ascetic/internal/cex"
)

func codes(errs []*cex.StructuralError) []cex.StructuralCode {
	out := make([]cex.StructuralCode, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

func TestValidateAcceptsCoherentStructure(t *testing.T) {
	assert.Empty(t, Validate(load(t, bicliqueDoc)))
	assert.Empty(t, Validate(load(t, pipelineDoc)))
}

func TestValidateEmptyPit(t *testing.T) {
	s := load(t, `
dots: [a]
forks:
  - {tip: a, pit: []}
`)
	errs := Validate(s)
	require.NotEmpty(t, errs)
	assert.Contains(t, codes(errs), cex.CodeEmptyPit)
}

func TestValidateWeightExceedsCapacity(t *testing.T) {
	s := load(t, `
dots: [a, x]
capacity:
  a: 2
forks:
  - {tip: a, pit: [x], weight: 5}
joins:
  - {tip: x, pit: [a], weight: 5}
`)
	errs := Validate(s)
	assert.Contains(t, codes(errs), cex.CodeWeightBound)
}

func TestValidateOmegaWeightWithinFiniteCapacity(t *testing.T) {
	// Omega is not an integer bound; only finite weights are checked
	// against the capacity.
	s := load(t, `
dots: [a, x]
capacity:
  a: 1
forks:
  - {tip: a, pit: [x], weight: omega}
joins:
  - {tip: x, pit: [a], weight: omega}
`)
	assert.Empty(t, Validate(s))
}

func TestValidateMarkingBounds(t *testing.T) {
	s := load(t, `
dots: [a, x]
capacity:
  x: 2
forks:
  - {tip: a, pit: [x]}
joins:
  - {tip: x, pit: [a]}
starts:
  - {x: 3}
`)
	errs := Validate(s)
	require.Len(t, errs, 1)
	assert.Equal(t, cex.CodeMarkingBound, errs[0].Code)
	assert.True(t, cex.IsStructural(errs[0]))
}

func TestValidateIncoherence(t *testing.T) {
	s := load(t, `
dots: [a, x]
forks:
  - {tip: a, pit: [x]}
`)
	errs := Validate(s)
	require.Len(t, errs, 1)
	assert.Equal(t, cex.CodeIncoherent, errs[0].Code)
	assert.Contains(t, errs[0].Error(), "without a matching join")
}
