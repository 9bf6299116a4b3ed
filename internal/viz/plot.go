package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/LambdaAK/Stochastic-Processes-Simulator/internal/markov"
)

const (
	plotHeight = 10
	plotWidth  = 80
)

// RenderDistribution plots each state's probability curve over the grid.
func RenderDistribution(d *markov.Distribution) string {
	var b strings.Builder
	for _, state := range d.States {
		series := d.Series(state)
		graph := asciigraph.Plot(series,
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(fmt.Sprintf("P(%s) over [%.2f, %.2f]", state, d.Times[0], d.Times[len(d.Times)-1])),
		)
		b.WriteString(graph)
		b.WriteString("\n\n")
	}
	return b.String()
}

// RenderSeries plots a single captioned series, used for TV-distance
// decay curves.
func RenderSeries(data []float64, caption string) string {
	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}
