package linalg

import "math"

// Matrix is a dense square matrix stored row-major.
type Matrix [][]float64

// New returns an n-by-n zero matrix.
func New(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}

// Identity returns the n-by-n identity matrix.
func Identity(n int) Matrix {
	m := New(n)
	for i := range m {
		m[i][i] = 1
	}
	return m
}

// Dim returns the number of rows.
func (m Matrix) Dim() int { return len(m) }

func (m Matrix) Clone() Matrix {
	c := make(Matrix, len(m))
	for i := range m {
		c[i] = make([]float64, len(m[i]))
		copy(c[i], m[i])
	}
	return c
}

func (m Matrix) Add(other Matrix) Matrix {
	r := New(len(m))
	for i := range m {
		for j := range m[i] {
			r[i][j] = m[i][j] + other[i][j]
		}
	}
	return r
}

func (m Matrix) Sub(other Matrix) Matrix {
	r := New(len(m))
	for i := range m {
		for j := range m[i] {
			r[i][j] = m[i][j] - other[i][j]
		}
	}
	return r
}

func (m Matrix) Scale(factor float64) Matrix {
	r := New(len(m))
	for i := range m {
		for j := range m[i] {
			r[i][j] = m[i][j] * factor
		}
	}
	return r
}

func (m Matrix) Mul(other Matrix) Matrix {
	n := len(m)
	r := New(n)
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			a := m[i][k]
			if a == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				r[i][j] += a * other[k][j]
			}
		}
	}
	return r
}

// Transpose returns m with rows and columns swapped.
func (m Matrix) Transpose() Matrix {
	n := len(m)
	r := New(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			r[j][i] = m[i][j]
		}
	}
	return r
}

// MulVec returns m*v.
func (m Matrix) MulVec(v []float64) []float64 {
	r := make([]float64, len(m))
	for i := range m {
		sum := 0.0
		for j := range m[i] {
			sum += m[i][j] * v[j]
		}
		r[i] = sum
	}
	return r
}

// InfNorm returns the maximum absolute row sum.
func (m Matrix) InfNorm() float64 {
	norm := 0.0
	for i := range m {
		sum := 0.0
		for j := range m[i] {
			sum += math.Abs(m[i][j])
		}
		if sum > norm {
			norm = sum
		}
	}
	return norm
}
