package sim

import (
	"context"
	"sync"

	"github.com/LambdaAK/Stochastic-Processes-Simulator/internal/markov"
)

// SourceFactory builds an independent RandSource for a worker. Callers
// wanting reproducible parallel runs derive each worker's source from a
// base seed plus the worker index.
type SourceFactory func(worker int) RandSource

// Ensemble splits a Monte-Carlo run across workers, each sampling its
// share of trajectories with its own random source. The merged result is
// identical in shape to a sequential Run.
type Ensemble struct {
	workers int
}

func NewEnsemble(workers int) *Ensemble {
	if workers < 1 {
		workers = 1
	}
	return &Ensemble{workers: workers}
}

func (e *Ensemble) Run(ctx context.Context, c *markov.Chain, cfg Config, factory SourceFactory) (*markov.Distribution, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	workers := e.workers
	if workers > cfg.Trajectories {
		workers = cfg.Trajectories
	}

	results := make([]*markov.Distribution, workers)
	errs := make([]error, workers)

	share := cfg.Trajectories / workers
	extra := cfg.Trajectories % workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			workerCfg := cfg
			workerCfg.Trajectories = share
			if idx < extra {
				workerCfg.Trajectories++
			}
			results[idx], errs[idx] = Run(ctx, c, workerCfg, factory(idx))
		}(w)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	// Weighted average of the worker estimates.
	merged := results[0]
	total := 0.0
	for idx := range results {
		weight := float64(share)
		if idx < extra {
			weight++
		}
		total += weight
	}
	out := &markov.Distribution{
		Times:  merged.Times,
		States: merged.States,
		Probs:  make([][]float64, len(merged.Times)),
	}
	for i := range out.Probs {
		out.Probs[i] = make([]float64, len(merged.States))
		for idx, res := range results {
			weight := float64(share)
			if idx < extra {
				weight++
			}
			for s := range out.Probs[i] {
				out.Probs[i][s] += res.Probs[i][s] * weight / total
			}
		}
	}
	return out, nil
}
