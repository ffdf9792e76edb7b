package parser

import (
	"github.com/pfrederiksen/camara-gastos/internal/expense"
)

// Phase is the position within the current field sequence
type Phase int

const (
	AwaitingHolder Phase = iota
	ExpectCategory
	ExpectTaxID
	ExpectVendor
	CollectingAmounts
)

func (p Phase) String() string {
	switch p {
	case AwaitingHolder:
		return "awaiting_holder"
	case ExpectCategory:
		return "expect_category"
	case ExpectTaxID:
		return "expect_tax_id"
	case ExpectVendor:
		return "expect_vendor"
	case CollectingAmounts:
		return "collecting_amounts"
	default:
		return "unknown"
	}
}

// HeaderGuard tracks absorption of the duplicated row that follows the first
// representative header of a page.
type HeaderGuard int

const (
	GuardReady   HeaderGuard = iota // no header seen yet on this page
	GuardPending                    // next row is the duplicate and is dropped
	GuardSpent                      // duplicate already absorbed
)

// State is the parsing cursor carried from one row to the next within a page.
// The zero value is the state at the start of a page.
type State struct {
	Phase          Phase
	Representative string
	Category       string
	Vendor         string
	TaxID          string

	// SkipNextCell drops the cell after "TOTAL DO ITEM" (a repeated label)
	SkipNextCell bool
	// IgnoreUntilHeader suppresses rows after a section terminator
	IgnoreUntilHeader bool
	Guard             HeaderGuard
}

// Step consumes one row of cell markup and returns the next state together with
// the records completed in that row. It never fails: unrecognized cells are blank
// or plain values.
func Step(st State, cells []string, period expense.Period) (State, []expense.Record) {
	if st.Guard == GuardPending {
		st.Guard = GuardSpent
		return st, nil
	}

	markers := make([]Marker, len(cells))
	headerFound := false
	for i, cell := range cells {
		markers[i] = Classify(cell)
		if markers[i].Kind != KindHeader {
			continue
		}
		headerFound = true
		st.Representative = markers[i].Text
		st.Phase = ExpectCategory
		st.Category, st.Vendor, st.TaxID = "", "", ""
		st.IgnoreUntilHeader = false
		if st.Guard == GuardReady {
			st.Guard = GuardPending
		}
	}

	if st.IgnoreUntilHeader && !headerFound {
		return st, nil
	}
	if st.Phase == AwaitingHolder {
		return st, nil
	}

	var records []expense.Record
	for _, m := range markers {
		if st.SkipNextCell {
			st.SkipNextCell = false
			continue
		}

		switch m.Kind {
		case KindHeader, KindBlank:
			continue
		case KindItemTerminator:
			st.SkipNextCell = true
			st.Phase = ExpectCategory
			continue
		case KindSectionTerminator:
			st.IgnoreUntilHeader = true
			st.Phase = AwaitingHolder
			return st, records
		case KindTaxID:
			// Tax-ID-shaped text realigns the sequence whatever the current phase
			st.TaxID = m.Text
			st.Phase = ExpectVendor
			continue
		}

		switch st.Phase {
		case ExpectCategory:
			st.Category = m.Text
			st.Phase = ExpectTaxID
		case ExpectTaxID:
			st.TaxID = m.Text
			st.Phase = ExpectVendor
		case ExpectVendor:
			st.Vendor = m.Text
			st.Phase = CollectingAmounts
		case CollectingAmounts:
			if st.Category == "" {
				// group started by a tax ID right after a header: no category established
				continue
			}
			records = append(records, expense.Record{
				Representative: st.Representative,
				Category:       st.Category,
				Vendor:         st.Vendor,
				TaxID:          st.TaxID,
				Amount:         m.Text,
				Period:         period.String(),
			})
		}
	}

	return st, records
}

// Walk runs Step over every row of one page, starting from a fresh State
func Walk(rows [][]string, period expense.Period) []expense.Record {
	var (
		st      State
		records []expense.Record
		emitted []expense.Record
	)
	for _, row := range rows {
		st, emitted = Step(st, row, period)
		records = append(records, emitted...)
	}
	return records
}
