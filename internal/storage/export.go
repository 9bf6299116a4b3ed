package storage

import (
	"encoding/json"
	"io"

	"github.com/LambdaAK/Stochastic-Processes-Simulator/internal/markov"
)

// ExportData is the flattened JSON form of a stored run.
type ExportData struct {
	ID           string             `json:"id"`
	Chain        string             `json:"chain"`
	Method       string             `json:"method"`
	Horizon      float64            `json:"horizon"`
	GridPoints   int                `json:"grid_points"`
	Trajectories int                `json:"trajectories"`
	Seed         int64              `json:"seed"`
	States       []string           `json:"states"`
	Times        []float64          `json:"times"`
	Probs        [][]float64        `json:"probabilities"`
	Metrics      map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, dist *markov.Distribution) error {
	data := ExportData{
		ID:           meta.ID,
		Chain:        meta.Chain,
		Method:       meta.Method,
		Horizon:      meta.Horizon,
		GridPoints:   meta.GridPoints,
		Trajectories: meta.Trajectories,
		Seed:         meta.Seed,
		States:       dist.States,
		Times:        dist.Times,
		Probs:        dist.Probs,
		Metrics:      meta.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
