package parser

import (
	"testing"
)

func TestStripTags(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"<b>Acme</b>", "Acme"},
		{"A &amp; B", "A  B"},
		{"&nbsp;", ""},
		{"&#160;100,00", "100,00"},
		{"&#xa0;x", "x"},
		{`<font color="red">TOTAL</font> DO ITEM`, "TOTAL DO ITEM"},
		{"no markup", "no markup"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := StripTags(tt.input); got != tt.expected {
				t.Errorf("StripTags(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind Kind
		wantText string
	}{
		{"header", "Gabinete do Vereador(a): Jane", KindHeader, "Jane"},
		{"header with markup", "<b>Gabinete do Vereador(a):</b> JANE DOE", KindHeader, "JANE DOE"},
		{"header case insensitive", "GABINETE DO VEREADOR(A) John", KindHeader, "John"},
		{"header without name", "Gabinete do Vereador(a): ", KindBlank, ""},
		{"formatted tax id", "12.345.678/0001-99", KindTaxID, "12.345.678/0001-99"},
		{"bare tax id", "12345678000199", KindTaxID, "12345678000199"},
		{"tax id with padding", "  12.345.678/0001-99 ", KindTaxID, "12.345.678/0001-99"},
		{"short number", "12.345", KindPlain, "12.345"},
		{"amount", "1.234,56", KindPlain, "1.234,56"},
		{"item terminator", "TOTAL DO ITEM", KindItemTerminator, ""},
		{"item terminator lowercase", "total do item", KindPlain, "total do item"},
		{"month terminator", "TOTAL DO MÊS", KindSectionTerminator, ""},
		{"representative on leave", "VEREADOR AFASTADO", KindSectionTerminator, ""},
		{"noise label", "Natureza da despesa", KindBlank, ""},
		{"noise inside text", "VALORES GASTOS Transporte", KindPlain, "Transporte"},
		{"all noise labels", "Valor utilizado VALORES DISPONIBILIZADOS", KindBlank, ""},
		{"whitespace", "  \n\t ", KindBlank, ""},
		{"markup only", "<br/>", KindBlank, ""},
		{"plain value", "POSTO ACME LTDA", KindPlain, "POSTO ACME LTDA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.input)
			if got.Kind != tt.wantKind {
				t.Errorf("Classify(%q).Kind = %v, want %v", tt.input, got.Kind, tt.wantKind)
			}
			if got.Text != tt.wantText {
				t.Errorf("Classify(%q).Text = %q, want %q", tt.input, got.Text, tt.wantText)
			}
		})
	}
}
