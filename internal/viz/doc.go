// Package viz renders engine output for the terminal: asciigraph plots of
// per-state probability curves for the plot/compare commands, and a
// bubbletea TUI that animates a live trajectory with its running
// occupancy estimate next to the stationary distribution.
package viz
