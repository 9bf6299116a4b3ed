package sim

import (
	"math"

	"github.com/LambdaAK/Stochastic-Processes-Simulator/internal/markov"
)

// SampleInitialState draws a start state from the chain's initial
// distribution with a single uniform draw against its cumulative
// probabilities. If rounding exhausts the draw before the cumulative sum
// reaches 1, the last state is returned.
func SampleInitialState(c *markov.Chain, rnd RandSource) int {
	u := rnd()
	cum := 0.0
	for i, p := range c.Initial {
		cum += p
		if u < cum {
			return i
		}
	}
	return c.NumStates() - 1
}

// SampleTrajectory draws one continuous-time sample path up to horizon.
// Holding times are Exponential(exit rate) via inverse-CDF sampling; the
// next state comes from the jump chain's cumulative thresholds. An
// absorbing state, or a jump that would land at or past the horizon, ends
// the path.
func SampleTrajectory(c *markov.Chain, jc *JumpChain, horizon float64, rnd RandSource) Trajectory {
	state := SampleInitialState(c, rnd)
	tr := Trajectory{{Time: 0, State: state}}
	t := 0.0

	for t < horizon {
		rate := jc.Exit[state]
		if rate == 0 {
			// Absorbing: the holding time is infinite.
			break
		}

		hold := -math.Log(rnd()) / rate
		if t+hold >= horizon {
			break
		}
		t += hold

		u := rnd() * rate
		targets, cum := jc.Targets[state], jc.Cum[state]
		next := targets[len(targets)-1]
		for k, threshold := range cum {
			if u < threshold {
				next = targets[k]
				break
			}
		}

		state = next
		tr = append(tr, Event{Time: t, State: state})
	}
	return tr
}
