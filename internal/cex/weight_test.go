package cex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightArithmetic(t *testing.T) {
	assert.Equal(t, Weight(5), Weight(2).Add(3))
	assert.Equal(t, Weight(6), Weight(2).Mul(3))

	// Bottom is the identity of Add and absorbs in Mul.
	assert.Equal(t, Weight(3), Bottom.Add(3))
	assert.Equal(t, Weight(3), Weight(3).Add(Bottom))
	assert.Equal(t, Bottom, Bottom.Mul(Omega))
	assert.Equal(t, Bottom, Weight(0).Mul(Bottom))

	// Omega absorbs finite values but multiplication by zero wins.
	assert.Equal(t, Omega, Omega.Add(1))
	assert.Equal(t, Omega, Weight(2).Mul(Omega))
	assert.Equal(t, Weight(0), Weight(0).Mul(Omega))
	assert.Equal(t, Weight(0), Omega.Mul(0))
}

func TestWeightPredicates(t *testing.T) {
	assert.True(t, Bottom.IsBottom())
	assert.True(t, Omega.IsOmega())
	assert.True(t, Weight(0).IsFinite())
	assert.False(t, Omega.IsFinite())

	assert.True(t, Weight(0).Valid())
	assert.True(t, Omega.Valid())
	assert.False(t, Weight(-1).Valid())
	assert.False(t, Bottom.Valid())
}

func TestWeightString(t *testing.T) {
	assert.Equal(t, "3", Weight(3).String())
	assert.Equal(t, "ω", Omega.String())
	assert.Equal(t, "_", Bottom.String())
}

func TestParseWeight(t *testing.T) {
	for _, spec := range []string{"omega", "ω", "inf"} {
		w, err := ParseWeight(spec)
		require.NoError(t, err, spec)
		assert.Equal(t, Omega, w, spec)
	}

	w, err := ParseWeight("7")
	require.NoError(t, err)
	assert.Equal(t, Weight(7), w)

	_, err = ParseWeight("-2")
	assert.Error(t, err)
	_, err = ParseWeight("bogus")
	assert.Error(t, err)
}
