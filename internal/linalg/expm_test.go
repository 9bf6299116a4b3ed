package linalg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoState is the generator of the symmetric two-state chain with unit
// rates; its exponential has the closed form
//
//	P(t) = [[ (1+e^-2t)/2, (1-e^-2t)/2 ], [ (1-e^-2t)/2, (1+e^-2t)/2 ]]
var twoState = Matrix{
	{-1, 1},
	{1, -1},
}

func TestExpmZeroTimeIsIdentity(t *testing.T) {
	p, err := Expm(twoState, 0)
	require.NoError(t, err)

	id := Identity(2)
	for i := range p {
		for j := range p[i] {
			assert.InDelta(t, id[i][j], p[i][j], 1e-6)
		}
	}
}

func TestExpmClosedForm(t *testing.T) {
	// The degree-2 rational approximation carries an error of a few 1e-4
	// once the scaled norm approaches one, hence the loose tolerance.
	for _, tt := range []float64{0.1, 0.5, 1.0, 3.0} {
		p, err := Expm(twoState, tt)
		require.NoError(t, err)

		e := math.Exp(-2 * tt)
		assert.InDelta(t, (1+e)/2, p[0][0], 1e-3, "t=%g", tt)
		assert.InDelta(t, (1-e)/2, p[0][1], 1e-3, "t=%g", tt)
		assert.InDelta(t, (1-e)/2, p[1][0], 1e-3, "t=%g", tt)
		assert.InDelta(t, (1+e)/2, p[1][1], 1e-3, "t=%g", tt)
	}
}

func TestExpmSemigroup(t *testing.T) {
	q := Matrix{
		{-2.5, 2.5, 0},
		{0, -1.0, 1.0},
		{0.5, 0, -0.5},
	}

	s, u := 0.7, 1.3
	pSum, err := Expm(q, s+u)
	require.NoError(t, err)
	ps, err := Expm(q, s)
	require.NoError(t, err)
	pu, err := Expm(q, u)
	require.NoError(t, err)

	prod := ps.Mul(pu)
	for i := range pSum {
		for j := range pSum[i] {
			assert.InDelta(t, pSum[i][j], prod[i][j], 1e-3)
		}
	}
}

func TestExpmRowsAreDistributions(t *testing.T) {
	p, err := Expm(twoState, 5.0)
	require.NoError(t, err)

	for i := range p {
		sum := 0.0
		for j := range p[i] {
			assert.GreaterOrEqual(t, p[i][j], -1e-9)
			sum += p[i][j]
		}
		assert.InDelta(t, 1.0, sum, 1e-6)
	}
}

func TestExpmLargeTimeReachesEquilibrium(t *testing.T) {
	p, err := Expm(twoState, 20)
	require.NoError(t, err)

	for i := range p {
		for j := range p[i] {
			assert.InDelta(t, 0.5, p[i][j], 1e-3)
		}
	}
}
