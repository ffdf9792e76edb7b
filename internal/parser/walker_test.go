package parser

import (
	"testing"

	"github.com/pfrederiksen/camara-gastos/internal/expense"
)

var testPeriod = expense.Period{Year: 2024, Month: 1}

// open returns the state right after a representative header and its duplicate row
func open(name string) State {
	return State{Phase: ExpectCategory, Representative: name, Guard: GuardSpent}
}

func TestWalk_SingleGroup(t *testing.T) {
	rows := [][]string{
		{"Gabinete do Vereador(a): Jane", "Transport", "12.345.678/0001-99", "Acme", "100,00"},
	}

	records := Walk(rows, testPeriod)
	if len(records) != 1 {
		t.Fatalf("Walk() returned %d records, want 1", len(records))
	}

	want := expense.Record{
		Representative: "Jane",
		Category:       "Transport",
		Vendor:         "Acme",
		TaxID:          "12.345.678/0001-99",
		Amount:         "100,00",
		Period:         "01/2024",
	}
	if records[0] != want {
		t.Errorf("record = %+v, want %+v", records[0], want)
	}
}

func TestWalk_GroupSpanningRows(t *testing.T) {
	rows := [][]string{
		{"Gabinete do Vereador(a): Jane"},
		{"Gabinete do Vereador(a): Jane"}, // duplicate header row
		{"Transport"},
		{"12.345.678/0001-99"},
		{"Acme"},
		{"100,00"},
	}

	records := Walk(rows, testPeriod)
	if len(records) != 1 {
		t.Fatalf("Walk() returned %d records, want 1", len(records))
	}
	if records[0].Category != "Transport" || records[0].Vendor != "Acme" || records[0].Amount != "100,00" {
		t.Errorf("unexpected record: %+v", records[0])
	}
}

func TestWalk_NoHeader(t *testing.T) {
	rows := [][]string{
		{"Transport", "12.345.678/0001-99", "Acme", "100,00"},
		{"TOTAL DO ITEM", "100,00"},
		{"Food", "98.765.432/0001-10", "Diner", "50,00"},
	}

	if records := Walk(rows, testPeriod); len(records) != 0 {
		t.Errorf("Walk() without header returned %d records, want 0", len(records))
	}
}

func TestWalk_DuplicateHeaderRowAbsorbedOnce(t *testing.T) {
	rows := [][]string{
		{"Gabinete do Vereador(a): Jane"},
		{"Transport", "12.345.678/0001-99", "Acme", "1,00"}, // absorbed as duplicate
		{"Food", "12.345.678/0001-99", "Diner", "2,00"},
		{"TOTAL DO MÊS"},
		{"Gabinete do Vereador(a): John"},
		{"Books", "98.765.432/0001-10", "Store", "3,00"}, // guard spent: processed
	}

	records := Walk(rows, testPeriod)
	if len(records) != 2 {
		t.Fatalf("Walk() returned %d records, want 2: %+v", len(records), records)
	}
	if records[0].Amount != "2,00" || records[0].Representative != "Jane" {
		t.Errorf("first record = %+v", records[0])
	}
	if records[1].Amount != "3,00" || records[1].Representative != "John" {
		t.Errorf("second record = %+v", records[1])
	}
}

func TestStep_TaxIDAnchor(t *testing.T) {
	tests := []struct {
		name  string
		state State
	}{
		{"while expecting category", open("Jane")},
		{"while expecting vendor", State{Phase: ExpectVendor, Representative: "Jane", Category: "C", TaxID: "old", Guard: GuardSpent}},
		{"while collecting amounts", State{Phase: CollectingAmounts, Representative: "Jane", Category: "C", TaxID: "old", Vendor: "V", Guard: GuardSpent}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, records := Step(tt.state, []string{"12.345.678/0001-99"}, testPeriod)
			if len(records) != 0 {
				t.Errorf("Step() emitted %d records, want 0", len(records))
			}
			if st.TaxID != "12.345.678/0001-99" {
				t.Errorf("TaxID = %q, want 12.345.678/0001-99", st.TaxID)
			}
			if st.Phase != ExpectVendor {
				t.Errorf("Phase = %v, want %v", st.Phase, ExpectVendor)
			}
		})
	}
}

func TestStep_ItemTerminatorSkipsExactlyOneCell(t *testing.T) {
	st := State{
		Phase:          CollectingAmounts,
		Representative: "Jane",
		Category:       "Transport",
		Vendor:         "Acme",
		TaxID:          "12.345.678/0001-99",
		Guard:          GuardSpent,
	}

	st, records := Step(st, []string{"TOTAL DO ITEM", "100,00", "Food", "98.765.432/0001-10", "Diner", "30,00"}, testPeriod)
	if len(records) != 1 {
		t.Fatalf("Step() returned %d records, want 1", len(records))
	}
	if records[0].Category != "Food" {
		t.Errorf("Category = %q, want Food (exactly one cell discarded)", records[0].Category)
	}
	if st.SkipNextCell {
		t.Error("SkipNextCell still set after discarding")
	}
}

func TestStep_ItemTerminatorSkipCrossesRows(t *testing.T) {
	st := open("Jane")
	st, _ = Step(st, []string{"Transport", "12.345.678/0001-99", "Acme", "10,00", "TOTAL DO ITEM"}, testPeriod)
	if !st.SkipNextCell {
		t.Fatal("SkipNextCell not set after item terminator")
	}

	st, records := Step(st, []string{"10,00", "Food"}, testPeriod)
	if len(records) != 0 {
		t.Errorf("Step() emitted %d records, want 0", len(records))
	}
	if st.Category != "Food" || st.Phase != ExpectTaxID {
		t.Errorf("state = %+v, want category Food expecting tax id", st)
	}
}

func TestStep_SectionTerminator(t *testing.T) {
	st := open("Jane")
	st, records := Step(st, []string{"Transport", "12.345.678/0001-99", "Acme", "10,00", "TOTAL DO MÊS", "20,00"}, testPeriod)
	if len(records) != 1 {
		t.Fatalf("Step() returned %d records, want 1 (cells after terminator ignored)", len(records))
	}
	if !st.IgnoreUntilHeader {
		t.Fatal("IgnoreUntilHeader not set")
	}

	st, records = Step(st, []string{"Food", "98.765.432/0001-10", "Diner", "30,00"}, testPeriod)
	if len(records) != 0 {
		t.Errorf("rows after section terminator emitted %d records", len(records))
	}

	st, records = Step(st, []string{"Gabinete do Vereador(a): John", "Food", "98.765.432/0001-10", "Diner", "30,00"}, testPeriod)
	if len(records) != 1 {
		t.Fatalf("header row after section terminator returned %d records, want 1", len(records))
	}
	if records[0].Representative != "John" {
		t.Errorf("Representative = %q, want John", records[0].Representative)
	}
	if st.IgnoreUntilHeader {
		t.Error("IgnoreUntilHeader still set after header")
	}
}

func TestStep_MultipleAmountsShareGroup(t *testing.T) {
	st := open("Jane")
	_, records := Step(st, []string{"Transport", "12.345.678/0001-99", "Acme", "10,00", "20,00", "", "30,00"}, testPeriod)
	if len(records) != 3 {
		t.Fatalf("Step() returned %d records, want 3", len(records))
	}
	for i, r := range records {
		if r.Vendor != "Acme" || r.Category != "Transport" || r.TaxID != "12.345.678/0001-99" {
			t.Errorf("record %d = %+v, want shared group fields", i, r)
		}
	}
}

func TestStep_HeaderAbandonsPartialGroup(t *testing.T) {
	st := open("Jane")
	st, _ = Step(st, []string{"Transport", "12.345.678/0001-99"}, testPeriod)

	st, records := Step(st, []string{"Gabinete do Vereador(a): John"}, testPeriod)
	if len(records) != 0 {
		t.Errorf("Step() emitted %d records for partial group", len(records))
	}
	if st.Phase != ExpectCategory || st.Category != "" || st.TaxID != "" {
		t.Errorf("state after header = %+v, want fresh group", st)
	}
}

func TestStep_NoCategoryNoEmission(t *testing.T) {
	st := open("Jane")
	_, records := Step(st, []string{"12.345.678/0001-99", "Acme", "10,00"}, testPeriod)
	if len(records) != 0 {
		t.Errorf("Step() emitted %d records without an established category", len(records))
	}
}

func TestWalk_PartialGroupAtEndOfPage(t *testing.T) {
	rows := [][]string{
		{"Gabinete do Vereador(a): Jane", "Transport", "12.345.678/0001-99", "Acme"},
	}
	if records := Walk(rows, testPeriod); len(records) != 0 {
		t.Errorf("Walk() returned %d records for unfinished group, want 0", len(records))
	}
}
