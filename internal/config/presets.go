package config

import "sort"

// Preset is a canned chain with simulation parameters tuned for it.
type Preset struct {
	Description  string
	Chain        string
	Horizon      float64
	GridPoints   int
	Trajectories int
}

var Presets = map[string]*Preset{
	"two-state": {
		Description: "symmetric two-state flip-flop, stationary (1/2, 1/2)",
		Chain: `States: A, B
Initial distribution: A : 1.0
Rates: A -> B : 1.0, B -> A : 1.0`,
		Horizon: 10.0, GridPoints: 50, Trajectories: 5000,
	},
	"cycle": {
		Description: "three states rotating with uneven rates",
		Chain: `States: A, B, C
Initial distribution: A : 0.5, B : 0.3, C : 0.2
Rates: A -> B : 2.5, B -> C : 1.0, C -> A : 0.5`,
		Horizon: 15.0, GridPoints: 60, Trajectories: 5000,
	},
	"birth-death": {
		Description: "four-level birth-death chain, births slower than deaths",
		Chain: `States: N0, N1, N2, N3
Initial distribution: N0 : 1.0
Rates: N0 -> N1 : 1.0, N1 -> N2 : 1.0, N2 -> N3 : 1.0,
N1 -> N0 : 1.5, N2 -> N1 : 1.5, N3 -> N2 : 1.5`,
		Horizon: 20.0, GridPoints: 80, Trajectories: 8000,
	},
	"weather": {
		Description: "sunny/cloudy/rainy toy weather model",
		Chain: `States: Sunny, Cloudy, Rainy
Initial distribution: Sunny : 1.0
Rates: Sunny -> Cloudy : 0.3, Cloudy -> Sunny : 0.4,
Cloudy -> Rainy : 0.25, Rainy -> Cloudy : 0.5, Rainy -> Sunny : 0.1`,
		Horizon: 30.0, GridPoints: 60, Trajectories: 5000,
	},
	"absorbing": {
		Description: "chain that drains into an absorbing failure state",
		Chain: `States: Up, Degraded, Down
Initial distribution: Up : 1.0
Rates: Up -> Degraded : 0.5, Degraded -> Up : 1.0, Degraded -> Down : 0.25`,
		Horizon: 25.0, GridPoints: 50, Trajectories: 8000,
	},
}

func GetPreset(name string) *Preset {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
