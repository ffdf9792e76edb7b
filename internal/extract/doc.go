// Package extract runs an extraction over a range of months.
//
// Periods are processed one at a time in ascending order: fetch the disclosure page,
// parse it into records, write the per-period file and, when configured, append to the
// ledger. Failures of a single period are logged and the period is skipped. Once every
// period is done the records are merged and sorted by representative, written to the
// consolidated CSV and XLSX outputs, and appended to one file per representative.
// Only a run that extracts no record at all fails, with ErrNoDataExtracted.
package extract
