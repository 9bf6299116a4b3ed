// Package linalg provides the dense linear-algebra primitives shared by
// the markov engines: square matrices, Gaussian elimination with partial
// pivoting, Gauss-Jordan inversion, and a scaling-and-squaring matrix
// exponential.
//
// Everything here is O(n^3) and dense. That is deliberate: the chains this
// repository works with have a handful of states, and clarity wins over
// sparse cleverness at that scale.
package linalg
