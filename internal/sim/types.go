package sim

import "github.com/LambdaAK/Stochastic-Processes-Simulator/internal/markov"

// RandSource yields uniform random values in [0,1). Supplying a seeded
// source makes a whole run reproducible; the engine itself has no notion
// of seeding.
type RandSource func() float64

// JumpChain is the per-state "where next" table derived from a chain:
// for each state the reachable targets, their cumulative rate thresholds
// (monotonically increasing, final value equal to the exit rate), and the
// total exit rate. An exit rate of zero marks an absorbing state.
type JumpChain struct {
	Targets [][]int
	Cum     [][]float64
	Exit    []float64
}

// Event is one jump of a trajectory: the chain enters State at Time.
type Event struct {
	Time  float64
	State int
}

// Trajectory is a time-ordered sequence of jump events. The first event
// is always (0, initial state).
type Trajectory []Event

// StateAt returns the state occupied at time t: the state of the last
// event at or before t, found by binary search.
func (tr Trajectory) StateAt(t float64) int {
	lo, hi := 0, len(tr)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if tr[mid].Time <= t {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return tr[lo].State
}

// BuildJumpChain aggregates the chain's transitions into a jump table.
// Duplicate transitions between the same ordered pair accumulate into a
// single threshold step.
func BuildJumpChain(c *markov.Chain) *JumpChain {
	n := c.NumStates()
	rates := make([][]float64, n)
	for i := range rates {
		rates[i] = make([]float64, n)
	}
	for _, tr := range c.Transitions {
		rates[tr.From][tr.To] += tr.Rate
	}

	jc := &JumpChain{
		Targets: make([][]int, n),
		Cum:     make([][]float64, n),
		Exit:    make([]float64, n),
	}
	for from := 0; from < n; from++ {
		cum := 0.0
		for to := 0; to < n; to++ {
			if rates[from][to] == 0 {
				continue
			}
			cum += rates[from][to]
			jc.Targets[from] = append(jc.Targets[from], to)
			jc.Cum[from] = append(jc.Cum[from], cum)
		}
		jc.Exit[from] = cum
	}
	return jc
}
