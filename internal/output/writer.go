// Package output serializes extraction results as tab-separated text.
package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/christabone/google-timeline-to-city/pkg/file"
	"github.com/rs/zerolog"
)

// Row is one line of the extraction result. Column order is fixed:
// adjusted timestamp, latitude, longitude, place name.
type Row struct {
	Timestamp string
	Latitude  float64
	Longitude float64
	Place     string
}

// Writer writes rows to a tab-separated file.
type Writer struct {
	fileClient file.FileOperations
	logger     zerolog.Logger
}

// NewWriter creates a new Writer instance with the provided file client.
func NewWriter(fileClient file.FileOperations, logger zerolog.Logger) *Writer {
	return &Writer{
		fileClient: fileClient,
		logger:     logger,
	}
}

// Write renders the rows in order and creates or truncates the file at path.
// The body carries no header row.
func (w *Writer) Write(path string, rows []Row) error {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(Format(row))
		b.WriteByte('\n')
	}

	if err := w.fileClient.WriteFile(path, b.String()); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}

	w.logger.Info().
		Int("rows", len(rows)).
		Str("path", path).
		Msg("Wrote output file")
	return nil
}

// Format renders a single row as a tab-separated line without the trailing
// newline. Coordinates keep their shortest exact decimal representation.
func Format(row Row) string {
	return strings.Join([]string{
		row.Timestamp,
		strconv.FormatFloat(row.Latitude, 'f', -1, 64),
		strconv.FormatFloat(row.Longitude, 'f', -1, 64),
		row.Place,
	}, "\t")
}
