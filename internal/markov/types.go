package markov

// Transition is a single rated edge between two states, identified by
// their indices in the chain's state list.
type Transition struct {
	From int
	To   int
	Rate float64
}

// Chain is a validated, immutable chain definition. States are kept in
// declaration order; Initial is aligned with States. Duplicate transitions
// between the same ordered pair are legal and their rates add up wherever
// the chain is turned into a matrix or jump table.
type Chain struct {
	States      []string
	Initial     []float64
	Transitions []Transition

	index map[string]int
}

// NumStates returns the size of the state space.
func (c *Chain) NumStates() int { return len(c.States) }

// Index returns the position of a state name in the state list.
func (c *Chain) Index(name string) (int, bool) {
	i, ok := c.index[name]
	return i, ok
}

// InitialDistribution returns the initial distribution keyed by state
// name. The returned map is a fresh copy.
func (c *Chain) InitialDistribution() map[string]float64 {
	dist := make(map[string]float64, len(c.States))
	for i, name := range c.States {
		dist[name] = c.Initial[i]
	}
	return dist
}
