package analysis

import (
	"fmt"
	"math"

	"github.com/LambdaAK/Stochastic-Processes-Simulator/internal/markov"
)

// TotalVariation returns half the sum of absolute differences between two
// probability vectors over the same state ordering.
func TotalVariation(p, q []float64) float64 {
	sum := 0.0
	for i := range p {
		sum += math.Abs(p[i] - q[i])
	}
	return sum / 2
}

// TotalVariationMaps is TotalVariation for name-keyed distributions;
// states fixes the ordering and missing entries count as zero.
func TotalVariationMaps(p, q map[string]float64, states []string) float64 {
	sum := 0.0
	for _, s := range states {
		sum += math.Abs(p[s] - q[s])
	}
	return sum / 2
}

// Compare returns the total variation distance between two distributions
// at each shared grid time. The grids must match exactly.
func Compare(a, b *markov.Distribution) ([]float64, error) {
	if len(a.Times) != len(b.Times) {
		return nil, fmt.Errorf("analysis: grid size mismatch (%d vs %d)", len(a.Times), len(b.Times))
	}
	if len(a.States) != len(b.States) {
		return nil, fmt.Errorf("analysis: state space mismatch (%d vs %d)", len(a.States), len(b.States))
	}

	distances := make([]float64, len(a.Times))
	for i := range a.Times {
		distances[i] = TotalVariation(a.Probs[i], b.Probs[i])
	}
	return distances, nil
}

// DistanceToStationary returns, for each grid time, the total variation
// distance between the distribution and pi. For an irreducible chain the
// sequence trends to zero as the grid extends.
func DistanceToStationary(d *markov.Distribution, pi map[string]float64) []float64 {
	target := make([]float64, len(d.States))
	for s, name := range d.States {
		target[s] = pi[name]
	}

	distances := make([]float64, len(d.Times))
	for i := range d.Times {
		distances[i] = TotalVariation(d.Probs[i], target)
	}
	return distances
}

// MaxDistance returns the largest entry of a distance series, 0 for an
// empty series.
func MaxDistance(distances []float64) float64 {
	max := 0.0
	for _, d := range distances {
		if d > max {
			max = d
		}
	}
	return max
}
