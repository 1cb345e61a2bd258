package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/predsim/internal/config"
	"github.com/san-kum/predsim/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
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

func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

type RunMetadata struct {
	ID           string                    `json:"id"`
	Name         string                    `json:"name"`
	Timestamp    time.Time                 `json:"timestamp"`
	Coefficients config.CoefficientsConfig `json:"coefficients"`
	InitState    config.InitStateConfig    `json:"init_state"`
	Dt           float64                   `json:"dt"`
	RunTime      float64                   `json:"run_time"`
	Labels       config.LabelsConfig       `json:"labels"`
	Samples      int                       `json:"samples"`
	Metrics      map[string]float64        `json:"metrics"`
}

// NewMetadata describes a finished run. Non-finite metric values (such as
// an extinction time for a run without extinction) are left out because
// JSON cannot carry them.
func NewMetadata(name string, cfg *config.Config, ts *dynamo.TimeSeries) RunMetadata {
	metrics := make(map[string]float64, len(ts.Metrics))
	for k, v := range ts.Metrics {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		metrics[k] = v
	}
	return RunMetadata{
		Name:         name,
		Timestamp:    time.Now(),
		Coefficients: cfg.Coefficients,
		InitState:    cfg.InitState,
		Dt:           cfg.Dt,
		RunTime:      cfg.RunTime,
		Labels:       cfg.Labels,
		Samples:      ts.Len(),
		Metrics:      metrics,
	}
}

// Config rebuilds the configuration the run was made with.
func (m *RunMetadata) Config() *config.Config {
	return &config.Config{
		Coefficients: m.Coefficients,
		InitState:    m.InitState,
		Dt:           m.Dt,
		RunTime:      m.RunTime,
		Labels:       m.Labels,
	}
}

// Save writes series.csv and then metadata.json into a new run directory
// and returns the run id. A failed save leaves no run directory behind.
func (s *Store) Save(name string, cfg *config.Config, ts *dynamo.TimeSeries) (string, error) {
	meta := NewMetadata(name, cfg, ts)
	meta.ID = fmt.Sprintf("%s_%d", name, meta.Timestamp.UnixNano())
	runDir := s.Dir(meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeRun(runDir, &meta, ts); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return meta.ID, nil
}

func writeRun(runDir string, meta *RunMetadata, ts *dynamo.TimeSeries) error {
	err := writeFile(filepath.Join(runDir, seriesFile), func(w io.Writer) error {
		return WriteCSV(w, ts)
	})
	if err != nil {
		return fmt.Errorf("write series: %w", err)
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	return writeFile(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}

// writeFile creates path, fills it with write and reports the close error,
// which is where a short write on a full disk surfaces.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns every stored run, oldest first.
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata for %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadSeries reads a stored trajectory. Labels come from the csv header.
func (s *Store) LoadSeries(runID string) (*dynamo.TimeSeries, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 3

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read series for %s: %w", runID, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("series for %s has no header", runID)
	}

	header := records[0]
	labels := dynamo.Labels{Predator: header[1], Prey: header[2]}

	samples := make([]dynamo.Sample, 0, len(records)-1)
	for i, record := range records[1:] {
		var vals [3]float64
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("series for %s row %d: %w", runID, i+1, err)
			}
			vals[j] = v
		}
		samples = append(samples, dynamo.Sample{Time: vals[0], Predators: vals[1], Prey: vals[2]})
	}

	return dynamo.FromSamples(labels, samples), nil
}
