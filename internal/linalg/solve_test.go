package linalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveUnique(t *testing.T) {
	a := Matrix{
		{2, 1},
		{1, 3},
	}
	b := []float64{3, 5}

	x, err := Solve(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, x[0], 1e-12)
	assert.InDelta(t, 1.4, x[1], 1e-12)
}

func TestSolveNeedsPivoting(t *testing.T) {
	// Zero in the leading position forces a row swap.
	a := Matrix{
		{0, 1},
		{1, 0},
	}
	b := []float64{2, 3}

	x, err := Solve(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, x[0], 1e-12)
	assert.InDelta(t, 2.0, x[1], 1e-12)
}

func TestSolveSingular(t *testing.T) {
	a := Matrix{
		{1, 2},
		{2, 4},
	}
	_, err := Solve(a, []float64{1, 2})
	assert.ErrorIs(t, err, ErrSingular)
}

func TestSolveLeavesInputsIntact(t *testing.T) {
	a := Matrix{
		{4, 1},
		{1, 4},
	}
	b := []float64{1, 1}

	_, err := Solve(a, b)
	require.NoError(t, err)
	assert.Equal(t, Matrix{{4, 1}, {1, 4}}, a)
	assert.Equal(t, []float64{1, 1}, b)
}

func TestInvert(t *testing.T) {
	a := Matrix{
		{4, 7},
		{2, 6},
	}
	inv, err := Invert(a)
	require.NoError(t, err)

	prod := a.Mul(inv)
	id := Identity(2)
	for i := range prod {
		for j := range prod[i] {
			assert.InDelta(t, id[i][j], prod[i][j], 1e-10)
		}
	}
}

func TestInvertSingular(t *testing.T) {
	a := Matrix{
		{1, 2},
		{2, 4},
	}
	_, err := Invert(a)
	assert.ErrorIs(t, err, ErrSingular)
}

func TestMatrixOps(t *testing.T) {
	a := Matrix{{1, 2}, {3, 4}}
	b := Matrix{{0, 1}, {1, 0}}

	assert.Equal(t, Matrix{{1, 3}, {4, 4}}, a.Add(b))
	assert.Equal(t, Matrix{{1, 1}, {2, 4}}, a.Sub(b))
	assert.Equal(t, Matrix{{2, 4}, {6, 8}}, a.Scale(2))
	assert.Equal(t, Matrix{{2, 1}, {4, 3}}, a.Mul(b))
	assert.Equal(t, Matrix{{1, 3}, {2, 4}}, a.Transpose())
	assert.InDelta(t, 7.0, a.InfNorm(), 1e-12)
	assert.Equal(t, []float64{5, 11}, a.MulVec([]float64{1, 2}))
}
