// Package expense provides the record and period types shared by the extractor.
//
// A Record is one disclosed expense line item as printed on a monthly disclosure
// page. Values are kept verbatim (no numeric coercion of amounts, no validation of
// tax identifiers) so that output files reproduce the source faithfully.
package expense
