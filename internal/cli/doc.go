// Package cli implements the command-line interface for camara-gastos.
//
// The cli package provides the Cobra-based command that extracts representatives'
// expenses for a range of months of one year, and reports the run summary as text
// or JSON. It wires configuration, the page scraper, file sinks and the optional
// SQLite ledger into an extract.Extractor.
package cli
