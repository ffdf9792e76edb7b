package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/camara-gastos/internal/expense"
)

const utf8BOM = "\ufeff"

// Storage handles persistence of expense records as CSV files
type Storage struct {
	dataDir string
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// Dir returns the root output directory
func (s *Storage) Dir() string {
	return s.dataDir
}

// PeriodPath returns the path of the per-period file
func (s *Storage) PeriodPath(p expense.Period) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("mes_%d", p.Year), fmt.Sprintf("Dados%s.csv", p.Compact()))
}

// RepresentativePath returns the path of the per-representative file for a year
func (s *Storage) RepresentativePath(year int, representative string) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("ind_%d", year), fmt.Sprintf("Dados_%s.csv", fileSafe(representative)))
}

// ConsolidatedPath returns the path of the consolidated file of a run
func (s *Storage) ConsolidatedPath(year, startMonth, endMonth int) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("gastos_vereadores_%d_%02d_%02d.csv", year, startMonth, endMonth))
}

// WritePeriod writes the records of one period, replacing any previous file
func (s *Storage) WritePeriod(p expense.Period, records []expense.Record) (string, error) {
	path := s.PeriodPath(p)
	if err := writeFile(path, "", records); err != nil {
		return "", fmt.Errorf("writing period %s: %w", p, err)
	}
	return path, nil
}

// AppendRepresentative appends records to a representative's file, creating it with
// a header row on first write. Nothing is de-duplicated.
func (s *Storage) AppendRepresentative(year int, representative string, records []expense.Record) (string, error) {
	path := s.RepresentativePath(year, representative)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating directory: %w", err)
	}

	_, statErr := os.Stat(path)
	exists := statErr == nil
	if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
		return "", fmt.Errorf("checking %s: %w", path, statErr)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if err := writeRecords(f, !exists, records); err != nil {
		return "", fmt.Errorf("appending to %s: %w", path, err)
	}
	return path, nil
}

// WriteConsolidated writes the merged records of a run
func (s *Storage) WriteConsolidated(year, startMonth, endMonth int, records []expense.Record) (string, error) {
	path := s.ConsolidatedPath(year, startMonth, endMonth)
	if err := writeFile(path, utf8BOM, records); err != nil {
		return "", fmt.Errorf("writing consolidated file: %w", err)
	}
	return path, nil
}

// ReadRecords loads records from a file written by this package
func ReadRecords(path string) ([]expense.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), utf8BOM)))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	records := make([]expense.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := expense.FromRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// writeFile creates or truncates path and writes a header plus records
func writeFile(path, prefix string, records []expense.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if prefix != "" {
		if _, err := io.WriteString(f, prefix); err != nil {
			f.Close()
			return err
		}
	}

	if err := writeRecords(f, true, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeRecords(w io.Writer, header bool, records []expense.Record) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(expense.Columns); err != nil {
			return err
		}
	}
	for _, rec := range records {
		if err := cw.Write(rec.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// fileSafe replaces characters that cannot appear in a file name
func fileSafe(name string) string {
	name = strings.TrimSpace(name)
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "\x00", "")
	name = replacer.Replace(name)
	if name == "" || name == "." || name == ".." {
		return "_"
	}
	return name
}
