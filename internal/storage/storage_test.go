package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pfrederiksen/camara-gastos/internal/expense"
)

var period = expense.Period{Year: 2024, Month: 2}

func sampleRecords() []expense.Record {
	return []expense.Record{
		{Representative: "JANE DOE", Category: "COMBUSTÍVEL", Vendor: "POSTO ACME", TaxID: "12.345.678/0001-99", Amount: "150,00", Period: "02/2024"},
		{Representative: "JANE DOE", Category: "COMBUSTÍVEL", Vendor: "POSTO, \"B\"", TaxID: "98.765.432/0001-10", Amount: "1.075,50", Period: "02/2024"},
	}
}

func TestWritePeriod(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	path, err := s.WritePeriod(period, sampleRecords())
	if err != nil {
		t.Fatalf("WritePeriod() error: %v", err)
	}
	if filepath.Base(path) != "Dados022024.csv" || filepath.Base(filepath.Dir(path)) != "mes_2024" {
		t.Errorf("WritePeriod() path = %q", path)
	}

	// Writing again replaces the file
	if _, err := s.WritePeriod(period, sampleRecords()[:1]); err != nil {
		t.Fatalf("second WritePeriod() error: %v", err)
	}

	got, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords() error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("ReadRecords() returned %d records, want 1", len(got))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "Vereador,Tipo_de_Gasto,Nome_Da_Empresa,CNPJ,Valor,Mes/Ano\n") {
		t.Errorf("file does not start with header: %q", data)
	}
}

func TestWritePeriod_Empty(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	path, err := s.WritePeriod(period, nil)
	if err != nil {
		t.Fatalf("WritePeriod() error: %v", err)
	}
	got, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ReadRecords() returned %d records, want 0", len(got))
	}
}

func TestAppendRepresentative_AppendOnly(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	records := sampleRecords()

	path, err := s.AppendRepresentative(2024, "JANE DOE", records)
	if err != nil {
		t.Fatalf("AppendRepresentative() error: %v", err)
	}
	first, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords() error: %v", err)
	}

	if _, err := s.AppendRepresentative(2024, "JANE DOE", records); err != nil {
		t.Fatalf("second AppendRepresentative() error: %v", err)
	}
	second, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords() error: %v", err)
	}

	if len(second) != 2*len(first) {
		t.Errorf("after second append got %d records, want %d", len(second), 2*len(first))
	}
	if second[2] != records[0] {
		t.Errorf("appended record = %+v, want %+v", second[2], records[0])
	}
}

func TestWriteConsolidated_BOM(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	path, err := s.WriteConsolidated(2024, 1, 3, sampleRecords())
	if err != nil {
		t.Fatalf("WriteConsolidated() error: %v", err)
	}
	if filepath.Base(path) != "gastos_vereadores_2024_01_03.csv" {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), utf8BOM) {
		t.Error("consolidated file missing UTF-8 BOM")
	}

	got, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords() error: %v", err)
	}
	if len(got) != 2 || got[1].Vendor != "POSTO, \"B\"" {
		t.Errorf("ReadRecords() = %+v", got)
	}
}

func TestFileSafe(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"JANE DOE", "JANE DOE"},
		{"A/B", "A_B"},
		{" ..", "_"},
		{"", "_"},
		{"C:\\D", "C__D"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := fileSafe(tt.input); got != tt.expected {
				t.Errorf("fileSafe(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNew_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := New("~/gastos")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if s.Dir() != filepath.Join(home, "gastos") {
		t.Errorf("Dir() = %q, want %q", s.Dir(), filepath.Join(home, "gastos"))
	}
}
