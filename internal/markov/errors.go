package markov

import "errors"

// Parse-time errors. Each maps to exactly one way a chain description can
// be malformed; Parse wraps them with the offending token.
var (
	// ErrEmptyInput indicates the description contains no sections at all.
	ErrEmptyInput = errors.New("markov: empty chain description")

	// ErrMissingSection indicates a required section is absent or appears
	// out of order (States -> Initial distribution -> Rates).
	ErrMissingSection = errors.New("markov: missing or misordered section")

	// ErrEmptyStates indicates the States section declares no states.
	ErrEmptyStates = errors.New("markov: empty state list")

	// ErrDuplicateState indicates a state name is declared twice.
	ErrDuplicateState = errors.New("markov: duplicate state")

	// ErrUnknownState indicates a reference to an undeclared state.
	ErrUnknownState = errors.New("markov: unknown state")

	// ErrInvalidProbability indicates a probability outside [0,1] or one
	// that does not parse as a number.
	ErrInvalidProbability = errors.New("markov: invalid probability")

	// ErrDistributionSum indicates the initial distribution does not sum
	// to 1 within tolerance.
	ErrDistributionSum = errors.New("markov: initial distribution must sum to 1")

	// ErrInvalidRate indicates a rate that is not a positive finite number.
	ErrInvalidRate = errors.New("markov: invalid rate")

	// ErrSelfLoop indicates a transition from a state to itself.
	ErrSelfLoop = errors.New("markov: self-loop not allowed")
)

// ErrNotIrreducible is returned by StationaryDistribution when the chain
// has no stationary distribution because its transition graph is not
// strongly connected.
var ErrNotIrreducible = errors.New("markov: chain is not irreducible")
