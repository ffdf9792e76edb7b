package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pfrederiksen/camara-gastos/internal/aggregate"
	"github.com/pfrederiksen/camara-gastos/internal/expense"
	"github.com/pfrederiksen/camara-gastos/internal/logger"
	"github.com/pfrederiksen/camara-gastos/internal/parser"
	"github.com/pfrederiksen/camara-gastos/internal/scraper"
	"github.com/pfrederiksen/camara-gastos/internal/spreadsheet"
	"github.com/pfrederiksen/camara-gastos/internal/storage"
)

// Fetcher retrieves the disclosure page of one period
type Fetcher interface {
	Fetch(ctx context.Context, p expense.Period) (*scraper.Page, error)
}

// Ledger persists the records of a run
type Ledger interface {
	Append(ctx context.Context, runID string, records []expense.Record) error
}

// Request selects the months to extract
type Request struct {
	Year       int
	StartMonth int
	EndMonth   int
}

// Summary describes the outcome of a run
type Summary struct {
	Success              bool          `json:"success"`
	RunID                string        `json:"run_id"`
	Year                 int           `json:"year"`
	StartMonth           int           `json:"start_month"`
	EndMonth             int           `json:"end_month"`
	CSVPath              string        `json:"csv_path,omitempty"`
	XLSXPath             string        `json:"xlsx_path,omitempty"`
	PeriodFiles          []string      `json:"period_files,omitempty"`
	RepresentativeFiles  []string      `json:"representative_files,omitempty"`
	TotalRecords         int           `json:"total_records"`
	TotalRepresentatives int           `json:"total_representatives"`
	PeriodsRequested     int           `json:"periods_requested"`
	PeriodsProcessed     int           `json:"periods_processed"`
	PeriodsUnavailable   int           `json:"periods_unavailable"`
	PeriodsFailed        int           `json:"periods_failed"`
	SinkFailures         int           `json:"sink_failures"`
	Elapsed              time.Duration `json:"-"`
	ElapsedSeconds       float64       `json:"elapsed_seconds"`
	Error                string        `json:"error,omitempty"`
}

// Extractor coordinates fetching, parsing and persistence
type Extractor struct {
	fetcher   Fetcher
	store     *storage.Storage
	ledger    Ledger
	writeXLSX bool
	newRunID  func() string
}

// Option configures an Extractor
type Option func(*Extractor)

// WithLedger appends every period's records to l
func WithLedger(l Ledger) Option {
	return func(e *Extractor) {
		e.ledger = l
	}
}

// WithXLSX enables or disables the consolidated workbook
func WithXLSX(enabled bool) Option {
	return func(e *Extractor) {
		e.writeXLSX = enabled
	}
}

// New creates an Extractor. The XLSX workbook is written by default.
func New(fetcher Fetcher, store *storage.Storage, opts ...Option) *Extractor {
	e := &Extractor{
		fetcher:   fetcher,
		store:     store,
		writeXLSX: true,
		newRunID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run extracts every period of req. The returned Summary is always non-nil; the
// error is non-nil for invalid requests, cancellation, failure to write the
// consolidated outputs, and runs that extracted nothing (ErrNoDataExtracted).
func (e *Extractor) Run(ctx context.Context, req Request) (*Summary, error) {
	start := time.Now()
	summary := &Summary{
		RunID:      e.newRunID(),
		Year:       req.Year,
		StartMonth: req.StartMonth,
		EndMonth:   req.EndMonth,
	}
	fail := func(err error) (*Summary, error) {
		summary.Success = false
		summary.Error = err.Error()
		summary.Elapsed = time.Since(start)
		summary.ElapsedSeconds = summary.Elapsed.Seconds()
		return summary, err
	}

	periods, err := expense.Range(req.Year, req.StartMonth, req.EndMonth)
	if err != nil {
		return fail(fmt.Errorf("invalid request: %w", err))
	}
	summary.PeriodsRequested = len(periods)

	logger.Info("Extraction started", logger.Fields{
		"run_id":  summary.RunID,
		"year":    req.Year,
		"periods": len(periods),
	})

	perPeriod := make([][]expense.Record, 0, len(periods))
	for _, p := range periods {
		if err := ctx.Err(); err != nil {
			return fail(fmt.Errorf("extraction aborted: %w", err))
		}

		records, path, err := e.processPeriod(ctx, summary.RunID, p)
		fields := logger.Fields{"run_id": summary.RunID, "period": p.String()}
		switch {
		case errors.Is(err, ErrFetchUnavailable):
			summary.PeriodsUnavailable++
			logger.IncrCounter("periods.unavailable")
			logger.Warn("Period unavailable, skipping", withError(fields, err))
			continue
		case errors.Is(err, ErrMalformedDocument):
			summary.PeriodsFailed++
			logger.IncrCounter("periods.malformed")
			logger.Error("Malformed document, skipping", fields, err)
			continue
		case errors.Is(err, ErrSinkWrite):
			// records are kept for the consolidated outputs
			summary.SinkFailures++
			logger.IncrCounter("sink.failures")
			logger.Error("Failed to persist period", fields, err)
		case err != nil:
			summary.PeriodsFailed++
			logger.Error("Period failed, skipping", fields, err)
			continue
		}

		if path != "" {
			summary.PeriodFiles = append(summary.PeriodFiles, path)
		}
		summary.PeriodsProcessed++
		perPeriod = append(perPeriod, records)

		fields["records"] = len(records)
		logger.Info("Period parsed", fields)
	}
	if err := ctx.Err(); err != nil {
		return fail(fmt.Errorf("extraction aborted: %w", err))
	}

	merged := aggregate.Merge(perPeriod...)
	if len(merged) == 0 {
		return fail(fmt.Errorf("%w: none of the %d requested periods had records; check that the selected months are published",
			ErrNoDataExtracted, len(periods)))
	}

	csvPath, err := e.store.WriteConsolidated(req.Year, req.StartMonth, req.EndMonth, merged)
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrSinkWrite, err))
	}
	summary.CSVPath = csvPath

	if e.writeXLSX {
		xlsxPath := filepath.Join(e.store.Dir(), spreadsheet.FileName(req.Year, req.StartMonth, req.EndMonth))
		if err := spreadsheet.Write(xlsxPath, merged); err != nil {
			return fail(fmt.Errorf("%w: %v", ErrSinkWrite, err))
		}
		summary.XLSXPath = xlsxPath
	}

	groups := aggregate.Partition(merged)
	for _, g := range groups {
		path, err := e.store.AppendRepresentative(req.Year, g.Representative, g.Records)
		if err != nil {
			summary.SinkFailures++
			logger.IncrCounter("sink.failures")
			logger.Error("Failed to write representative file", logger.Fields{
				"run_id":         summary.RunID,
				"representative": g.Representative,
			}, err)
			continue
		}
		summary.RepresentativeFiles = append(summary.RepresentativeFiles, path)
	}

	summary.Success = true
	summary.TotalRecords = len(merged)
	summary.TotalRepresentatives = len(groups)
	summary.Elapsed = time.Since(start)
	summary.ElapsedSeconds = summary.Elapsed.Seconds()

	logger.SetGauge("run.records", float64(summary.TotalRecords))
	logger.SetGauge("run.representatives", float64(summary.TotalRepresentatives))
	logger.RecordTiming("run.duration", summary.Elapsed)
	logger.Info("Extraction finished", logger.Fields{
		"run_id":          summary.RunID,
		"records":         summary.TotalRecords,
		"representatives": summary.TotalRepresentatives,
		"unavailable":     summary.PeriodsUnavailable,
		"csv":             summary.CSVPath,
	})

	return summary, nil
}

// processPeriod fetches, parses and persists one period. On ErrSinkWrite the parsed
// records are still returned.
func (e *Extractor) processPeriod(ctx context.Context, runID string, p expense.Period) ([]expense.Record, string, error) {
	fetchStart := time.Now()
	page, err := e.fetcher.Fetch(ctx, p)
	logger.RecordTiming("fetch.duration", time.Since(fetchStart))
	if err != nil {
		if errors.Is(err, scraper.ErrUnavailable) {
			return nil, "", fmt.Errorf("%w: %v", ErrFetchUnavailable, err)
		}
		return nil, "", err
	}
	logger.IncrCounter("periods.fetched")
	logger.Debug("Page fetched", logger.Fields{"period": p.String(), "url": page.URL, "bytes": len(page.Body)})

	records, err := parser.ParseDocument(bytes.NewReader(page.Body), p)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %v", ErrMalformedDocument, page.URL, err)
	}
	logger.AddCounter("records.emitted", int64(len(records)))

	path, err := e.store.WritePeriod(p, records)
	if err != nil {
		return records, "", fmt.Errorf("%w: %v", ErrSinkWrite, err)
	}

	if e.ledger != nil && len(records) > 0 {
		if err := e.ledger.Append(ctx, runID, records); err != nil {
			return records, path, fmt.Errorf("%w: ledger: %v", ErrSinkWrite, err)
		}
	}

	return records, path, nil
}

func withError(fields logger.Fields, err error) logger.Fields {
	fields["error"] = err.Error()
	return fields
}
