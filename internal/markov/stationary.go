package markov

import (
	"fmt"

	"github.com/LambdaAK/Stochastic-Processes-Simulator/internal/linalg"
)

// StationaryDistribution computes the equilibrium distribution pi of an
// irreducible chain, the solution of pi*Q = 0 with sum(pi) = 1. The
// rank-deficient system Q^T pi^T = 0 is pinned down by replacing its last
// row with all ones and the matching right-hand side entry with 1.
// Returns ErrNotIrreducible when no stationary distribution exists.
func StationaryDistribution(c *Chain) (map[string]float64, error) {
	if !IsIrreducible(c) {
		return nil, ErrNotIrreducible
	}

	n := c.NumStates()
	m := GeneratorMatrix(c).Transpose()
	b := make([]float64, n)
	for j := 0; j < n; j++ {
		m[n-1][j] = 1
	}
	b[n-1] = 1

	pi, err := linalg.Solve(m, b)
	if err != nil {
		return nil, fmt.Errorf("stationary system: %w", err)
	}

	dist := make(map[string]float64, n)
	for i, name := range c.States {
		p := pi[i]
		if p < 0 {
			// Tiny negatives are floating-point noise from elimination.
			p = 0
		}
		dist[name] = p
	}
	return dist, nil
}
