package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/LambdaAK/Stochastic-Processes-Simulator/internal/markov"
)

// Store persists runs on disk, one directory per run holding
// metadata.json and distribution.csv (time column plus one column per
// state).
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string             `json:"id"`
	Chain        string             `json:"chain"`
	Method       string             `json:"method"`
	Timestamp    time.Time          `json:"timestamp"`
	Horizon      float64            `json:"horizon"`
	GridPoints   int                `json:"grid_points"`
	Trajectories int                `json:"trajectories"`
	Seed         int64              `json:"seed"`
	States       []string           `json:"states"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Save writes a run to disk and returns its generated id. Method is
// "exact" or "simulate"; Trajectories is 0 for exact runs.
func (s *Store) Save(meta RunMetadata, dist *markov.Distribution) (string, error) {
	runID := fmt.Sprintf("%s_%s_%d", meta.Chain, meta.Method, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.States = dist.States

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "distribution.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := append([]string{"time"}, dist.States...)
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range dist.Times {
		row := []string{strconv.FormatFloat(dist.Times[i], 'f', 6, 64)}
		for _, p := range dist.Probs[i] {
			row = append(row, strconv.FormatFloat(p, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadDistribution reads a stored run's grid back into a Distribution.
func (s *Store) LoadDistribution(runID string) (*markov.Distribution, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "distribution.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("storage: empty distribution file for %s", runID)
	}

	d := &markov.Distribution{
		States: append([]string(nil), records[0][1:]...),
	}
	for i, record := range records[1:] {
		if len(record) != len(records[0]) {
			return nil, fmt.Errorf("storage: %s row %d: got %d fields, want %d",
				runID, i+1, len(record), len(records[0]))
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: %s row %d: bad time %q", runID, i+1, record[0])
		}
		row := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			p, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: %s row %d: bad probability %q", runID, i+1, field)
			}
			row = append(row, p)
		}
		d.Times = append(d.Times, t)
		d.Probs = append(d.Probs, row)
	}
	return d, nil
}
