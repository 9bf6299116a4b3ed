package sim

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/LambdaAK/Stochastic-Processes-Simulator/internal/markov"
)

func TestRunInvalidConfig(t *testing.T) {
	c := parseChain(t, `States: A, B
Initial distribution: A : 1.0
Rates: A -> B : 1.0, B -> A : 1.0`)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero trajectories", Config{Trajectories: 0, Horizon: 1, GridPoints: 10}},
		{"negative horizon", Config{Trajectories: 10, Horizon: -1, GridPoints: 10}},
		{"one grid point", Config{Trajectories: 10, Horizon: 1, GridPoints: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Run(context.Background(), c, tt.cfg, seeded(1)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunShape(t *testing.T) {
	c := parseChain(t, `States: A, B, C
Initial distribution: uniform
Rates: A -> B : 1.0, B -> C : 1.0, C -> A : 1.0`)

	cfg := Config{Trajectories: 100, Horizon: 5.0, GridPoints: 11}
	d, err := Run(context.Background(), c, cfg, seeded(3))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(d.Times) != 11 {
		t.Errorf("expected 11 grid times, got %d", len(d.Times))
	}
	if d.Times[0] != 0 || d.Times[len(d.Times)-1] != 5.0 {
		t.Errorf("grid must span [0, horizon], got [%f, %f]", d.Times[0], d.Times[len(d.Times)-1])
	}
	for i := range d.Times {
		sum := 0.0
		for _, p := range d.Probs[i] {
			sum += p
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("probabilities at grid %d sum to %f", i, sum)
		}
	}
}

func TestRunDeterministicWithSeed(t *testing.T) {
	c := parseChain(t, `States: A, B
Initial distribution: A : 1.0
Rates: A -> B : 2.0, B -> A : 1.0`)

	cfg := Config{Trajectories: 200, Horizon: 4.0, GridPoints: 9}
	d1, err := Run(context.Background(), c, cfg, seeded(99))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	d2, err := Run(context.Background(), c, cfg, seeded(99))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for i := range d1.Probs {
		for s := range d1.Probs[i] {
			if d1.Probs[i][s] != d2.Probs[i][s] {
				t.Fatalf("same seed produced different estimates at [%d][%d]", i, s)
			}
		}
	}
}

func TestRunConvergesToExact(t *testing.T) {
	c := parseChain(t, `States: A, B
Initial distribution: A : 1.0
Rates: A -> B : 1.0, B -> A : 1.0`)

	cfg := Config{Trajectories: 20000, Horizon: 5.0, GridPoints: 11}
	empirical, err := Run(context.Background(), c, cfg, seeded(2024))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	exact, err := markov.DistributionOverTime(c, empirical.Times)
	if err != nil {
		t.Fatalf("exact evaluation failed: %v", err)
	}

	for i := range empirical.Times {
		tv := 0.0
		for s := range empirical.Probs[i] {
			tv += math.Abs(empirical.Probs[i][s] - exact.Probs[i][s])
		}
		tv /= 2
		if tv > 0.05 {
			t.Errorf("tv distance %f at t=%f exceeds 0.05", tv, empirical.Times[i])
		}
	}
}

func TestRunCancellation(t *testing.T) {
	c := parseChain(t, `States: A, B
Initial distribution: A : 1.0
Rates: A -> B : 1.0, B -> A : 1.0`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := Config{Trajectories: 100000, Horizon: 10.0, GridPoints: 50}
	if _, err := Run(ctx, c, cfg, seeded(1)); err == nil {
		t.Error("expected context error, got nil")
	}
}

func TestEnsembleMatchesShape(t *testing.T) {
	c := parseChain(t, `States: A, B, C
Initial distribution: uniform
Rates: A -> B : 1.0, B -> C : 1.0, C -> A : 1.0`)

	cfg := Config{Trajectories: 1001, Horizon: 5.0, GridPoints: 11}
	factory := func(worker int) RandSource {
		return rand.New(rand.NewSource(500 + int64(worker))).Float64
	}

	d, err := NewEnsemble(4).Run(context.Background(), c, cfg, factory)
	if err != nil {
		t.Fatalf("ensemble run failed: %v", err)
	}

	if len(d.Times) != 11 {
		t.Errorf("expected 11 grid times, got %d", len(d.Times))
	}
	for i := range d.Times {
		sum := 0.0
		for _, p := range d.Probs[i] {
			sum += p
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("probabilities at grid %d sum to %f", i, sum)
		}
	}
}

func TestEnsembleConvergesToExact(t *testing.T) {
	c := parseChain(t, `States: A, B
Initial distribution: A : 1.0
Rates: A -> B : 1.0, B -> A : 1.0`)

	cfg := Config{Trajectories: 20000, Horizon: 5.0, GridPoints: 6}
	factory := func(worker int) RandSource {
		return rand.New(rand.NewSource(7000 + int64(worker))).Float64
	}

	empirical, err := NewEnsemble(8).Run(context.Background(), c, cfg, factory)
	if err != nil {
		t.Fatalf("ensemble run failed: %v", err)
	}
	exact, err := markov.DistributionOverTime(c, empirical.Times)
	if err != nil {
		t.Fatalf("exact evaluation failed: %v", err)
	}

	for i := range empirical.Times {
		tv := 0.0
		for s := range empirical.Probs[i] {
			tv += math.Abs(empirical.Probs[i][s] - exact.Probs[i][s])
		}
		tv /= 2
		if tv > 0.05 {
			t.Errorf("tv distance %f at t=%f exceeds 0.05", tv, empirical.Times[i])
		}
	}
}
