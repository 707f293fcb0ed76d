// Package services orchestrates a single extraction run.
package services

import (
	"context"
	"fmt"

	"github.com/christabone/google-timeline-to-city/internal/models"
	"github.com/christabone/google-timeline-to-city/internal/output"
	"github.com/christabone/google-timeline-to-city/internal/timeline"
	"github.com/christabone/google-timeline-to-city/internal/utils"
	"github.com/christabone/google-timeline-to-city/pkg/geocoder"
	"github.com/rs/zerolog"
)

// ExtractionService walks the configured date ranges in order, selects the
// closest record for each, resolves its place name and writes the result.
type ExtractionService struct {
	// Configuration fields
	specs      []utils.DateRangeSpec
	outputPath string

	// Dependencies
	records  []models.LocationRecord
	resolver geocoder.Resolver
	writer   *output.Writer
	logger   zerolog.Logger
}

// NewExtractionService creates a new ExtractionService instance with the
// provided configuration.
func NewExtractionService(specs []utils.DateRangeSpec, outputPath string, records []models.LocationRecord,
	resolver geocoder.Resolver, writer *output.Writer, logger zerolog.Logger) *ExtractionService {
	return &ExtractionService{
		specs:      specs,
		outputPath: outputPath,
		records:    records,
		resolver:   resolver,
		writer:     writer,
		logger:     logger,
	}
}

// Run executes the extraction. Range specs are compiled up front so a
// malformed spec aborts before any geocoding request is issued. A range that
// matches no record is skipped silently; a failed resolution degrades that
// row's place name to the unknown marker and the run continues. Output rows
// preserve the configured range order.
func (s *ExtractionService) Run(ctx context.Context) error {
	ranges := make([]timeline.Range, len(s.specs))
	for i, spec := range s.specs {
		r, err := timeline.ParseRange(spec)
		if err != nil {
			return fmt.Errorf("date range %d: %w", i+1, err)
		}
		ranges[i] = r
	}

	rows := make([]output.Row, 0, len(ranges))
	for i, r := range ranges {
		spec := s.specs[i]
		rangeLog := s.logger.With().
			Int("range", i+1).
			Str("start", spec.Start).
			Str("end", spec.End).
			Logger()

		record, ok := timeline.SelectClosest(s.records, r)
		if !ok {
			rangeLog.Info().Msg("No records in date range")
			continue
		}

		rows = append(rows, output.Row{
			Timestamp: timeline.AdjustTimestamp(record.TimestampUTC, r.Offset),
			Latitude:  record.Latitude,
			Longitude: record.Longitude,
			Place:     s.resolvePlace(ctx, record, rangeLog),
		})
		rangeLog.Info().
			Int("rows", len(rows)).
			Int("ranges", len(ranges)).
			Str("place", rows[len(rows)-1].Place).
			Msg("Processed date range")
	}

	if err := s.writer.Write(s.outputPath, rows); err != nil {
		return err
	}

	s.logger.Info().
		Int("ranges", len(ranges)).
		Int("rows", len(rows)).
		Msg("Extraction complete")
	return nil
}

// resolvePlace turns a record's coordinates into a place name, degrading to
// the unknown marker when the geocoding collaborator fails or answers with
// no usable fields.
func (s *ExtractionService) resolvePlace(ctx context.Context, record models.LocationRecord, logger zerolog.Logger) string {
	address, err := s.resolver.Reverse(ctx, record.Latitude, record.Longitude)
	if err != nil {
		logger.Warn().
			Err(err).
			Float64("latitude", record.Latitude).
			Float64("longitude", record.Longitude).
			Msg("Reverse geocoding failed")
		return geocoder.Unknown
	}

	name := geocoder.ComposeName(address)
	if name == "" {
		logger.Warn().
			Float64("latitude", record.Latitude).
			Float64("longitude", record.Longitude).
			Msg("Reverse geocoding returned no usable fields")
		return geocoder.Unknown
	}
	return name
}
