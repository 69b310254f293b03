package storage

import (
	"encoding/json"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/territory/internal/config"
	"github.com/san-kum/territory/internal/export"
	"github.com/san-kum/territory/internal/telemetry"
)

const (
	metadataFile  = "metadata.json"
	configFile    = "config.yaml"
	telemetryFile = "telemetry.csv"
	snapshotPNG   = "snapshot.png"
	snapshotSVG   = "snapshot.svg"
)

type Store struct {
	baseDir string

	// Scale is the pixel size of one cell in saved snapshots.
	Scale int
	// SVG additionally writes a vector snapshot.
	SVG bool
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, Scale: 1}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

type RunMetadata struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Timestamp        time.Time          `json:"timestamp"`
	Seed             int64              `json:"seed"`
	Width            int                `json:"width"`
	Height           int                `json:"height"`
	Species          int                `json:"species"`
	ColorSpace       string             `json:"color_space"`
	Strategy         string             `json:"strategy"`
	MutationStrength float64            `json:"mutation_strength"`
	Generations      int                `json:"generations"`
	Complete         bool               `json:"complete"`
	Metrics          map[string]float64 `json:"metrics"`
}

// Run is everything persisted for one simulation.
type Run struct {
	Meta      RunMetadata
	Config    *config.Config
	Telemetry []telemetry.Stats
	Frame     export.Frame
}

// Save writes run into a fresh directory and returns its id.
func (s *Store) Save(run Run) (string, error) {
	name := run.Meta.Name
	if name == "" {
		name = "run"
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := s.Dir(runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := run.Meta
	meta.ID = runID
	meta.Name = name
	if meta.Timestamp.IsZero() {
		meta.Timestamp = now
	}
	if run.Frame != nil && meta.Width == 0 {
		meta.Width, meta.Height = run.Frame.Width(), run.Frame.Height()
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	if run.Config != nil {
		if err := config.Save(filepath.Join(runDir, configFile), run.Config); err != nil {
			return "", err
		}
	}

	csvFile, err := os.Create(filepath.Join(runDir, telemetryFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()
	if err := telemetry.WriteAll(csvFile, run.Telemetry); err != nil {
		return "", err
	}

	if run.Frame != nil {
		if err := export.Save(filepath.Join(runDir, snapshotPNG), run.Frame, s.Scale); err != nil {
			return "", err
		}
		if s.SVG {
			if err := export.Save(filepath.Join(runDir, snapshotSVG), run.Frame, s.Scale); err != nil {
				return "", err
			}
		}
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}

// List returns stored runs, oldest first.
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
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadConfig returns the configuration a run was started with.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.Dir(runID), configFile))
}

func (s *Store) LoadTelemetry(runID string) ([]telemetry.Stats, error) {
	f, err := os.Open(filepath.Join(s.Dir(runID), telemetryFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return telemetry.ReadAll(f)
}

// SnapshotPath is where Save put the run's final PNG frame.
func (s *Store) SnapshotPath(runID string) string {
	return filepath.Join(s.Dir(runID), snapshotPNG)
}

// LoadSnapshot reads the final frame back at one colour per cell.
func (s *Store) LoadSnapshot(runID string) (export.Frame, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(s.SnapshotPath(runID))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return export.FrameFromImage(img, meta.Width, meta.Height)
}
