package telemetry

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// Writer streams records as CSV, writing the header once.
type Writer struct {
	w             io.Writer
	headerWritten bool
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (tw *Writer) Write(s Stats) error {
	records := []Stats{s}
	if !tw.headerWritten {
		if err := gocsv.Marshal(records, tw.w); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		tw.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, tw.w); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WriteAll writes a complete table with header.
func WriteAll(w io.Writer, records []Stats) error {
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// ReadAll parses a table written by Writer or WriteAll.
func ReadAll(r io.Reader) ([]Stats, error) {
	var records []Stats
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("reading telemetry: %w", err)
	}
	return records, nil
}
