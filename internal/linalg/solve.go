package linalg

import (
	"errors"
	"math"
)

// ErrSingular is returned when elimination meets a pivot below tolerance,
// meaning the system has no unique solution.
var ErrSingular = errors.New("linalg: singular matrix")

// pivotTol is the magnitude below which a pivot is treated as zero.
const pivotTol = 1e-10

// Solve computes x such that a*x = b using Gaussian elimination with
// partial pivoting. The inputs are not modified.
func Solve(a Matrix, b []float64) ([]float64, error) {
	n := a.Dim()
	aug := a.Clone()
	rhs := make([]float64, n)
	copy(rhs, b)

	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(aug[row][col]) > math.Abs(aug[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(aug[pivot][col]) < pivotTol {
			return nil, ErrSingular
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]
		rhs[col], rhs[pivot] = rhs[pivot], rhs[col]

		for row := col + 1; row < n; row++ {
			factor := aug[row][col] / aug[col][col]
			if factor == 0 {
				continue
			}
			for k := col; k < n; k++ {
				aug[row][k] -= factor * aug[col][k]
			}
			rhs[row] -= factor * rhs[col]
		}
	}

	x := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := rhs[row]
		for k := row + 1; k < n; k++ {
			sum -= aug[row][k] * x[k]
		}
		x[row] = sum / aug[row][row]
	}
	return x, nil
}

// Invert computes the inverse of a via Gauss-Jordan elimination with
// partial pivoting. A pivot below tolerance means a is (numerically)
// singular and ErrSingular is returned rather than a half-reduced result.
func Invert(a Matrix) (Matrix, error) {
	n := a.Dim()
	work := a.Clone()
	inv := Identity(n)

	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(work[row][col]) > math.Abs(work[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(work[pivot][col]) < pivotTol {
			return nil, ErrSingular
		}
		work[col], work[pivot] = work[pivot], work[col]
		inv[col], inv[pivot] = inv[pivot], inv[col]

		scale := work[col][col]
		for k := 0; k < n; k++ {
			work[col][k] /= scale
			inv[col][k] /= scale
		}

		for row := 0; row < n; row++ {
			if row == col {
				continue
			}
			factor := work[row][col]
			if factor == 0 {
				continue
			}
			for k := 0; k < n; k++ {
				work[row][k] -= factor * work[col][k]
				inv[row][k] -= factor * inv[col][k]
			}
		}
	}
	return inv, nil
}
