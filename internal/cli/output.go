package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pfrederiksen/camara-gastos/internal/extract"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// WriteOutput writes the run summary in the specified format
func WriteOutput(w io.Writer, summary *extract.Summary, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, summary)
	case FormatText:
		return writeText(w, summary, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the summary as JSON
func writeJSON(w io.Writer, summary *extract.Summary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}

// writeText outputs the summary as human-readable text
func writeText(w io.Writer, s *extract.Summary, verbose bool) error {
	if !s.Success {
		fmt.Fprintf(w, "Extraction failed: %s\n", s.Error)
		return nil
	}

	fmt.Fprintf(w, "Extraction completed for %02d/%d to %02d/%d\n", s.StartMonth, s.Year, s.EndMonth, s.Year)
	fmt.Fprintf(w, "  Records:         %d\n", s.TotalRecords)
	fmt.Fprintf(w, "  Representatives: %d\n", s.TotalRepresentatives)
	fmt.Fprintf(w, "  Periods:         %d processed, %d unavailable, %d failed\n",
		s.PeriodsProcessed, s.PeriodsUnavailable, s.PeriodsFailed)
	fmt.Fprintf(w, "  Elapsed:         %.2fs\n", s.ElapsedSeconds)
	fmt.Fprintf(w, "  CSV:             %s\n", s.CSVPath)
	if s.XLSXPath != "" {
		fmt.Fprintf(w, "  XLSX:            %s\n", s.XLSXPath)
	}
	if s.SinkFailures > 0 {
		fmt.Fprintf(w, "  Warning: %d write failures, see log\n", s.SinkFailures)
	}

	if verbose {
		fmt.Fprintf(w, "\nRun ID: %s\n", s.RunID)
		for _, path := range s.PeriodFiles {
			fmt.Fprintf(w, "  period: %s\n", path)
		}
		for _, path := range s.RepresentativeFiles {
			fmt.Fprintf(w, "  representative: %s\n", path)
		}
	}

	return nil
}
