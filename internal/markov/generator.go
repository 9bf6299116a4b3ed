package markov

import "github.com/LambdaAK/Stochastic-Processes-Simulator/internal/linalg"

// GeneratorMatrix derives the rate matrix Q from the chain. Off-diagonal
// Q[i][j] is the summed rate of all i->j transitions; each diagonal entry
// is the negated row sum, so every row sums to zero.
func GeneratorMatrix(c *Chain) linalg.Matrix {
	q := linalg.New(c.NumStates())
	for _, tr := range c.Transitions {
		q[tr.From][tr.To] += tr.Rate
	}
	for i := range q {
		total := 0.0
		for j := range q[i] {
			if j != i {
				total += q[i][j]
			}
		}
		q[i][i] = -total
	}
	return q
}

// IsIrreducible reports whether every state can reach every other state
// through positive-rate transitions, i.e. whether the transition graph is
// strongly connected. A chain with at most one state is irreducible by
// definition.
func IsIrreducible(c *Chain) bool {
	n := c.NumStates()
	if n <= 1 {
		return true
	}

	adj := make([][]int, n)
	for _, tr := range c.Transitions {
		adj[tr.From] = append(adj[tr.From], tr.To)
	}

	for start := 0; start < n; start++ {
		if bfsCount(adj, start, n) != n {
			return false
		}
	}
	return true
}

// bfsCount returns how many of the n states a breadth-first traversal
// from start can reach.
func bfsCount(adj [][]int, start, n int) int {
	visited := make([]bool, n)
	visited[start] = true
	queue := make([]int, 0, n)
	queue = append(queue, start)
	count := 1

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, next := range adj[node] {
			if !visited[next] {
				visited[next] = true
				count++
				queue = append(queue, next)
			}
		}
	}
	return count
}
