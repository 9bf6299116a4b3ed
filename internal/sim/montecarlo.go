package sim

import (
	"context"
	"fmt"

	"github.com/LambdaAK/Stochastic-Processes-Simulator/internal/markov"
)

// Config controls a Monte-Carlo run.
type Config struct {
	Trajectories int
	Horizon      float64
	GridPoints   int
}

// DefaultConfig returns the settings used by the CLI when none are given.
func DefaultConfig() Config {
	return Config{
		Trajectories: 5000,
		Horizon:      10.0,
		GridPoints:   50,
	}
}

func (cfg Config) validate() error {
	if cfg.Trajectories <= 0 {
		return fmt.Errorf("trajectories must be positive, got %d", cfg.Trajectories)
	}
	if cfg.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %f", cfg.Horizon)
	}
	if cfg.GridPoints < 2 {
		return fmt.Errorf("grid points must be at least 2, got %d", cfg.GridPoints)
	}
	return nil
}

// Run estimates the marginal state probabilities empirically: it samples
// cfg.Trajectories independent paths, looks up the occupied state at every
// grid time, and divides the counts by the trajectory count. The output
// shape matches markov.DistributionOverTime so callers can compare the two
// directly.
func Run(ctx context.Context, c *markov.Chain, cfg Config, rnd RandSource) (*markov.Distribution, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	jc := BuildJumpChain(c)
	times := markov.TimeGrid(cfg.Horizon, cfg.GridPoints)
	n := c.NumStates()

	counts := make([][]float64, len(times))
	for i := range counts {
		counts[i] = make([]float64, n)
	}

	for m := 0; m < cfg.Trajectories; m++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		tr := SampleTrajectory(c, jc, cfg.Horizon, rnd)
		for i, t := range times {
			counts[i][tr.StateAt(t)]++
		}
	}

	total := float64(cfg.Trajectories)
	for i := range counts {
		for s := range counts[i] {
			counts[i][s] /= total
		}
	}

	return &markov.Distribution{
		Times:  times,
		States: append([]string(nil), c.States...),
		Probs:  counts,
	}, nil
}
