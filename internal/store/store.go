package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/sim"
	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/truss"
)

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
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	SubSteps  int                `json:"sub_steps"`
	Duration  float64            `json:"duration"`
	Mode      string             `json:"mode,omitempty"`
	Broken    int                `json:"broken"`
	Yielded   int                `json:"yielded"`
	TotalMass float64            `json:"total_mass"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save persists one finished run: metadata.json, the element state table
// as elements.csv, and, when a recording was captured, series.csv.
func (s *Store) Save(preset string, cfg sim.Config, duration float64, res *sim.Result, st *truss.Structure, series *sim.Series) (string, error) {
	runID := fmt.Sprintf("%s_%d", preset, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Preset:    preset,
		Timestamp: time.Now(),
		Dt:        cfg.Dt,
		SubSteps:  cfg.SubSteps,
		Duration:  duration,
		Broken:    res.Broken,
		Yielded:   res.Yielded,
		TotalMass: st.TotalMass(),
		Metrics:   res.Metrics,
	}
	if series != nil {
		meta.Mode = series.Mode.String()
	}

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

	elemFile, err := os.Create(filepath.Join(runDir, "elements.csv"))
	if err != nil {
		return "", err
	}
	defer elemFile.Close()
	if err := WriteElementsCSV(elemFile, st); err != nil {
		return "", err
	}

	if series != nil {
		seriesFile, err := os.Create(filepath.Join(runDir, "series.csv"))
		if err != nil {
			return "", err
		}
		defer seriesFile.Close()
		if err := WriteSeriesCSV(seriesFile, *series); err != nil {
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

// LoadSeries reads a recorded sample sequence back: header column names,
// times, and one row of values per sample.
func (s *Store) LoadSeries(runID string) ([]string, []float64, [][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}
	if len(records) < 2 {
		return nil, []float64{}, [][]float64{}, nil
	}

	header := records[0]
	times := make([]float64, 0, len(records)-1)
	samples := make([][]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		row := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				v = 0
			}
			row = append(row, v)
		}
		times = append(times, t)
		samples = append(samples, row)
	}

	return header, times, samples, nil
}
