package expense

import (
	"fmt"
)

// Columns is the fixed column order of every tabular output
var Columns = []string{"Vereador", "Tipo_de_Gasto", "Nome_Da_Empresa", "CNPJ", "Valor", "Mes/Ano"}

// Record represents one disclosed expense line item
type Record struct {
	Representative string `json:"representative"`
	Category       string `json:"category"`
	Vendor         string `json:"vendor"`
	TaxID          string `json:"tax_id"`
	Amount         string `json:"amount"` // as printed, currency formatting preserved
	Period         string `json:"period"` // MM/YYYY
}

// Row returns the record's fields in Columns order
func (r Record) Row() []string {
	return []string{r.Representative, r.Category, r.Vendor, r.TaxID, r.Amount, r.Period}
}

// FromRow builds a Record from a row in Columns order
func FromRow(row []string) (Record, error) {
	if len(row) != len(Columns) {
		return Record{}, fmt.Errorf("expected %d columns, got %d", len(Columns), len(row))
	}
	return Record{
		Representative: row[0],
		Category:       row[1],
		Vendor:         row[2],
		TaxID:          row[3],
		Amount:         row[4],
		Period:         row[5],
	}, nil
}
