package linalg

import (
	"fmt"
	"math"
)

// Expm computes exp(q*t) by scaling and squaring with a degree-2 rational
// approximation. The operand is halved until its infinity norm drops below
// one, the exponential of the scaled matrix is approximated by
//
//	(I - M/2 + M^2/12)^-1 (I + M/2 + M^2/12)
//
// and the result is squared once per halving. At t=0 this is exactly the
// identity. If the rational denominator is numerically singular the error
// from Invert is propagated instead of returning garbage.
func Expm(q Matrix, t float64) (Matrix, error) {
	n := q.Dim()
	m := q.Scale(t)

	squarings := 0
	if norm := m.InfNorm(); norm > 0 {
		squarings = int(math.Ceil(math.Log2(norm)))
		if squarings < 0 {
			squarings = 0
		}
	}
	if squarings > 0 {
		m = m.Scale(1 / math.Pow(2, float64(squarings)))
	}

	m2 := m.Mul(m).Scale(1.0 / 12.0)
	half := m.Scale(0.5)
	num := Identity(n).Add(half).Add(m2)
	den := Identity(n).Sub(half).Add(m2)

	denInv, err := Invert(den)
	if err != nil {
		return nil, fmt.Errorf("expm: denominator at t=%g: %w", t, err)
	}

	p := denInv.Mul(num)
	for i := 0; i < squarings; i++ {
		p = p.Mul(p)
	}
	return p, nil
}
