package markov

import (
	"fmt"

	"github.com/LambdaAK/Stochastic-Processes-Simulator/internal/linalg"
)

// Distribution pairs a time grid with per-state probability sequences.
// Probs[i][s] is the probability of state s (by chain index) at Times[i].
// The same shape is produced by the exact evaluator here and by the
// Monte-Carlo driver in internal/sim.
type Distribution struct {
	Times  []float64
	States []string
	Probs  [][]float64
}

// At returns the distribution at grid index i keyed by state name.
func (d *Distribution) At(i int) map[string]float64 {
	dist := make(map[string]float64, len(d.States))
	for s, name := range d.States {
		dist[name] = d.Probs[i][s]
	}
	return dist
}

// Series returns the probability sequence of a single state across the
// whole grid, or nil if the state is unknown.
func (d *Distribution) Series(state string) []float64 {
	for s, name := range d.States {
		if name == state {
			series := make([]float64, len(d.Probs))
			for i := range d.Probs {
				series[i] = d.Probs[i][s]
			}
			return series
		}
	}
	return nil
}

// DistributionOverTime computes the exact marginal distribution at each
// requested time: mu * exp(Q t), with mu the initial distribution. Times
// must be non-negative; they are evaluated independently, one matrix
// exponential per entry.
func DistributionOverTime(c *Chain, times []float64) (*Distribution, error) {
	n := c.NumStates()
	q := GeneratorMatrix(c)

	d := &Distribution{
		Times:  append([]float64(nil), times...),
		States: append([]string(nil), c.States...),
		Probs:  make([][]float64, len(times)),
	}

	for i, t := range times {
		p, err := linalg.Expm(q, t)
		if err != nil {
			return nil, fmt.Errorf("distribution at t=%g: %w", t, err)
		}
		row := make([]float64, n)
		for s := 0; s < n; s++ {
			sum := 0.0
			for from := 0; from < n; from++ {
				sum += c.Initial[from] * p[from][s]
			}
			row[s] = sum
		}
		d.Probs[i] = row
	}
	return d, nil
}

// TimeGrid returns points evenly spaced times covering [0, horizon],
// endpoints included.
func TimeGrid(horizon float64, points int) []float64 {
	if points < 2 {
		return []float64{0}
	}
	times := make([]float64, points)
	for i := range times {
		times[i] = horizon * float64(i) / float64(points-1)
	}
	return times
}
