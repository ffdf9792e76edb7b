// Package storage provides CSV persistence for extracted expense records.
//
// Records are written to three kinds of files under the output directory:
// one file per period (mes_YYYY/DadosMMYYYY.csv), one append-only file per
// representative (ind_YYYY/Dados_<name>.csv) and one consolidated file per run
// (gastos_vereadores_YYYY_SS_EE.csv, UTF-8 with BOM for spreadsheet tools).
// All files share the column order of expense.Columns.
package storage
