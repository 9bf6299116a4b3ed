package analysis

import (
	"math"
	"testing"

	"github.com/LambdaAK/Stochastic-Processes-Simulator/internal/markov"
)

func TestTotalVariation(t *testing.T) {
	tests := []struct {
		name string
		p, q []float64
		want float64
	}{
		{"identical", []float64{0.5, 0.5}, []float64{0.5, 0.5}, 0},
		{"disjoint", []float64{1, 0}, []float64{0, 1}, 1},
		{"partial", []float64{0.7, 0.3}, []float64{0.5, 0.5}, 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalVariation(tt.p, tt.q)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("TotalVariation = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestTotalVariationMaps(t *testing.T) {
	p := map[string]float64{"A": 0.7, "B": 0.3}
	q := map[string]float64{"A": 0.5, "B": 0.5}
	got := TotalVariationMaps(p, q, []string{"A", "B"})
	if math.Abs(got-0.2) > 1e-12 {
		t.Errorf("TotalVariationMaps = %f, want 0.2", got)
	}

	// Missing entries count as zero.
	got = TotalVariationMaps(map[string]float64{"A": 1}, map[string]float64{}, []string{"A", "B"})
	if math.Abs(got-0.5) > 1e-12 {
		t.Errorf("TotalVariationMaps with missing = %f, want 0.5", got)
	}
}

func TestCompare(t *testing.T) {
	a := &markov.Distribution{
		Times:  []float64{0, 1},
		States: []string{"A", "B"},
		Probs:  [][]float64{{1, 0}, {0.6, 0.4}},
	}
	b := &markov.Distribution{
		Times:  []float64{0, 1},
		States: []string{"A", "B"},
		Probs:  [][]float64{{1, 0}, {0.5, 0.5}},
	}

	distances, err := Compare(a, b)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if distances[0] != 0 {
		t.Errorf("expected 0 at t=0, got %f", distances[0])
	}
	if math.Abs(distances[1]-0.1) > 1e-12 {
		t.Errorf("expected 0.1 at t=1, got %f", distances[1])
	}
}

func TestCompareGridMismatch(t *testing.T) {
	a := &markov.Distribution{Times: []float64{0}, States: []string{"A"}, Probs: [][]float64{{1}}}
	b := &markov.Distribution{Times: []float64{0, 1}, States: []string{"A"}, Probs: [][]float64{{1}, {1}}}
	if _, err := Compare(a, b); err == nil {
		t.Error("expected error on grid mismatch")
	}
}

func TestDistanceToStationaryDecays(t *testing.T) {
	c, err := markov.Parse(`States: A, B
Initial distribution: A : 1.0
Rates: A -> B : 1.0, B -> A : 1.0`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	d, err := markov.DistributionOverTime(c, []float64{0, 1, 2, 5, 10})
	if err != nil {
		t.Fatalf("distribution failed: %v", err)
	}
	pi, err := markov.StationaryDistribution(c)
	if err != nil {
		t.Fatalf("stationary failed: %v", err)
	}

	distances := DistanceToStationary(d, pi)
	for i := 1; i < len(distances); i++ {
		if distances[i] >= distances[i-1] {
			t.Errorf("distance did not shrink at grid %d: %f >= %f", i, distances[i], distances[i-1])
		}
	}
	if final := distances[len(distances)-1]; final > 1e-3 {
		t.Errorf("expected near-zero final distance, got %f", final)
	}
	if MaxDistance(distances) != distances[0] {
		t.Errorf("max distance should be at t=0")
	}
}
