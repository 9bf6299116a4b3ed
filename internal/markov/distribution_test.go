package markov

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributionAtTimeZero(t *testing.T) {
	c := mustParse(t, `States: A, B
Initial distribution: A : 0.7, B : 0.3
Rates: A -> B : 1.0, B -> A : 1.0`)

	d, err := DistributionOverTime(c, []float64{0})
	require.NoError(t, err)
	assert.InDelta(t, 0.7, d.Probs[0][0], 1e-6)
	assert.InDelta(t, 0.3, d.Probs[0][1], 1e-6)
}

func TestDistributionTwoStateClosedForm(t *testing.T) {
	// Starting in A with symmetric unit rates:
	// P(A at t) = (1 + e^{-2t}) / 2.
	c := mustParse(t, `States: A, B
Initial distribution: A : 1.0
Rates: A -> B : 1.0, B -> A : 1.0`)

	times := []float64{0.25, 0.5, 1.0, 2.0}
	d, err := DistributionOverTime(c, times)
	require.NoError(t, err)

	for i, tt := range times {
		want := (1 + math.Exp(-2*tt)) / 2
		assert.InDelta(t, want, d.Probs[i][0], 1e-3, "t=%g", tt)
		assert.InDelta(t, 1-want, d.Probs[i][1], 1e-3, "t=%g", tt)
	}
}

func TestDistributionConvergesToStationary(t *testing.T) {
	c := mustParse(t, `States: A, B
Initial distribution: A : 1.0
Rates: A -> B : 1.0, B -> A : 1.0`)

	d, err := DistributionOverTime(c, []float64{1, 5, 20})
	require.NoError(t, err)

	pi, err := StationaryDistribution(c)
	require.NoError(t, err)

	prev := math.Inf(1)
	for i := range d.Times {
		tv := 0.0
		at := d.At(i)
		for name, p := range pi {
			tv += math.Abs(at[name] - p)
		}
		tv /= 2
		assert.Less(t, tv, prev, "tv must shrink at t=%g", d.Times[i])
		prev = tv
	}
	assert.Less(t, prev, 1e-3)
}

func TestDistributionRowsSumToOne(t *testing.T) {
	c := mustParse(t, `States: A, B, C
Initial distribution: uniform
Rates: A -> B : 2.5, B -> C : 1.0, C -> A : 0.5`)

	d, err := DistributionOverTime(c, TimeGrid(10, 21))
	require.NoError(t, err)

	for i := range d.Times {
		sum := 0.0
		for _, p := range d.Probs[i] {
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-6, "t=%g", d.Times[i])
	}
}

func TestTimeGrid(t *testing.T) {
	grid := TimeGrid(10, 5)
	assert.Equal(t, []float64{0, 2.5, 5, 7.5, 10}, grid)
	assert.Equal(t, []float64{0}, TimeGrid(10, 1))
}

func TestDistributionSeries(t *testing.T) {
	c := mustParse(t, `States: A, B
Initial distribution: A : 1.0
Rates: A -> B : 1.0, B -> A : 1.0`)

	d, err := DistributionOverTime(c, []float64{0, 1})
	require.NoError(t, err)

	series := d.Series("A")
	require.Len(t, series, 2)
	assert.InDelta(t, 1.0, series[0], 1e-6)
	assert.Nil(t, d.Series("missing"))
}
