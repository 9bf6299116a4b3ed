// Package analysis compares probability distributions produced by the
// exact evaluator and the Monte-Carlo driver: total variation distance
// point-by-point and across a whole time grid, plus distance-to-stationary
// decay curves used by the plot and compare commands.
package analysis
