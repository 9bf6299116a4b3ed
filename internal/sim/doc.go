// Package sim provides the stochastic side of the CTMC engine: the
// embedded jump chain, continuous-time trajectory sampling with
// exponential holding times, and the Monte-Carlo driver that bins many
// trajectories onto a time grid to estimate marginal state probabilities.
//
// Randomness is an injected capability: every sampling function takes a
// RandSource, a zero-argument function returning uniform values in [0,1).
// There is no package-level default source; seeding (and therefore
// determinism) is entirely the caller's choice.
//
// # Thread Safety
//
// A single RandSource must not be shared across goroutines. The Ensemble
// type runs trajectories in parallel by giving each worker its own source
// from a caller-supplied factory.
package sim
