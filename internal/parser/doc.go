// Package parser turns a monthly expense disclosure page into expense records.
//
// Disclosure tables carry no schema. Each cell is classified on its own (see Classify)
// into a closed set of markers, and a row-walking state machine (see Step) assigns
// field values from the sequence of markers: representative header, expense category,
// vendor tax ID, vendor name and one or more amounts. Fixed phrases close an item
// ("TOTAL DO ITEM") or a whole representative section ("TOTAL DO MÊS",
// "VEREADOR AFASTADO").
package parser
