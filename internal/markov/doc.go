// Package markov implements the continuous-time Markov chain engine: a
// small DSL parser producing an immutable chain definition, the generator
// (rate) matrix derived from it, irreducibility analysis, the stationary
// distribution, and the exact distribution over time via the matrix
// exponential.
//
// A chain is described textually:
//
//	States: A, B, C
//	Initial distribution: A : 0.5, B : 0.3, C : 0.2
//	Rates: A -> B : 2.5, B -> C : 1.0, C -> A : 0.5
//
// Parse is the only constructor and the only place validation happens;
// every function downstream assumes a well-formed chain and performs no
// checks of its own.
//
// # Thread Safety
//
// A Chain is immutable after Parse. All derived values (generator matrix,
// distributions) are freshly allocated per call, so concurrent reads are
// safe.
package markov
