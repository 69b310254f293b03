package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/territory/internal/telemetry"
)

type ExportData struct {
	Run       RunMetadata       `json:"run"`
	Telemetry []telemetry.Stats `json:"telemetry"`
}

// ExportJSON writes a stored run's metadata and telemetry as one document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	stats, err := s.LoadTelemetry(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Run: *meta, Telemetry: stats})
}
