package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/lwave/internal/config"
	"github.com/san-kum/lwave/internal/dynamo"
	"github.com/san-kum/lwave/internal/export"
	"github.com/san-kum/lwave/internal/grid"
	"github.com/san-kum/lwave/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var ErrRunNotFound = errors.New("run not found")

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
	Scheme    string             `json:"scheme"`
	Timestamp time.Time          `json:"timestamp"`
	Config    config.Config      `json:"config"`
	Fields    []string           `json:"fields"`
	H         float64            `json:"h"`
	Dt        float64            `json:"dt"`
	Lambda    float64            `json:"lambda"`
	Frames    int                `json:"frames"`
	Metrics   map[string]float64 `json:"metrics"`
	Diverged  []string           `json:"diverged,omitempty"`
	Warnings  []string           `json:"warnings,omitempty"`
}

// Save writes metadata.json and frames.csv under a fresh run directory and
// returns the run id.
func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID, runDir, err := s.allocate(result.Scheme, now)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scheme:    result.Scheme,
		Timestamp: now,
		Config:    *cfg,
		Fields:    result.FieldNames,
		H:         result.Params.H,
		Dt:        result.Params.Dt,
		Lambda:    result.Params.Lambda,
		Frames:    len(result.Frames),
		Metrics:   make(map[string]float64, len(result.Metrics)),
		Warnings:  result.Warnings,
	}
	// JSON has no encoding for Inf or NaN.
	for name, v := range result.Metrics {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			meta.Diverged = append(meta.Diverged, name)
			continue
		}
		meta.Metrics[name] = v
	}
	sort.Strings(meta.Diverged)

	if err := writeRun(runDir, &meta, result); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func writeRun(runDir string, meta *RunMetadata, result *sim.Result) error {
	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	if err := export.WriteCSV(csvFile, result); err != nil {
		return fmt.Errorf("write frames: %w", err)
	}
	return nil
}

// allocate creates a run directory named after the scheme and time, adding a
// suffix when several runs land in the same millisecond.
func (s *Store) allocate(scheme string, now time.Time) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	base := fmt.Sprintf("%s_%s", scheme, now.Format("20060102_150405.000"))
	for i := 0; ; i++ {
		id := base
		if i > 0 {
			id = fmt.Sprintf("%s_%d", base, i)
		}
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
	}
}

// List returns the metadata of every stored run, oldest first.
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
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%s: %w", runID, err)
	}
	return &meta, nil
}

// LoadResult rebuilds the history of a stored run.
func (s *Store) LoadResult(runID string) (*sim.Result, *RunMetadata, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	tab, err := export.ReadCSV(file)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", runID, err)
	}
	mode, err := dynamo.ParseBoundaryMode(meta.Config.Boundary)
	if err != nil {
		return nil, nil, err
	}

	res := &sim.Result{
		Scheme:     meta.Scheme,
		FieldNames: tab.FieldNames,
		Grid:       &grid.Grid{X: tab.X, H: meta.H},
		Params:     grid.Params{C: meta.Config.Speed, H: meta.H, Dt: meta.Dt, Lambda: meta.Lambda},
		Boundary:   mode,
		Frames:     tab.Frames,
		Metrics:    meta.Metrics,
		Warnings:   meta.Warnings,
	}
	if res.Metrics == nil {
		res.Metrics = make(map[string]float64)
	}
	for _, name := range meta.Diverged {
		res.Metrics[name] = math.Inf(1)
	}
	return res, meta, nil
}

// Latest returns the id of the most recent run.
func (s *Store) Latest() (string, error) {
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", ErrRunNotFound
	}
	return runs[len(runs)-1].ID, nil
}
