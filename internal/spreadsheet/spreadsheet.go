// Package spreadsheet writes the consolidated dataset of a run as an XLSX workbook.
package spreadsheet

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pfrederiksen/camara-gastos/internal/expense"
	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the single worksheet in the workbook
const SheetName = "Gastos"

// FileName returns the workbook name of a run, e.g. Gastos_Vereadores_2024_01_03.xlsx
func FileName(year, startMonth, endMonth int) string {
	return fmt.Sprintf("Gastos_Vereadores_%d_%02d_%02d.xlsx", year, startMonth, endMonth)
}

// Write saves records to path as a workbook with a header row followed by one row per
// record, in the order given.
func Write(path string, records []expense.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	if err := setRow(f, 1, expense.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, rec := range records {
		if err := setRow(f, i+2, rec.Row()); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "F1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", "C", 40); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}
	if err := f.SetColWidth(SheetName, "D", "F", 20); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}

	// amounts stay text: "1.234,56" must not be coerced to a number
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(SheetName, cell, &cells)
}
