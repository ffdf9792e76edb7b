package parser

import (
	"regexp"
	"strings"
)

// Kind is the semantic tag assigned to a cell
type Kind int

const (
	KindBlank Kind = iota
	KindPlain
	KindHeader
	KindTaxID
	KindItemTerminator
	KindSectionTerminator
)

func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindPlain:
		return "plain"
	case KindHeader:
		return "header"
	case KindTaxID:
		return "tax_id"
	case KindItemTerminator:
		return "item_terminator"
	case KindSectionTerminator:
		return "section_terminator"
	default:
		return "unknown"
	}
}

// Marker is the classification of a single cell.
// Text holds the representative name for KindHeader and the cleaned cell text for
// KindPlain and KindTaxID.
type Marker struct {
	Kind Kind
	Text string
}

const (
	itemTerminator = "TOTAL DO ITEM"
)

var (
	// Markup elements and character references; references collapse to nothing
	tagPattern = regexp.MustCompile(`<.*?>|&([a-z0-9]+|#[0-9]{1,6}|#x[0-9a-f]{1,6});`)

	// "Gabinete do Vereador(a): NAME"
	headerPattern = regexp.MustCompile(`(?i)[\s\S]+Vereador\(a\)[:\s]`)

	// CNPJ shape, e.g. 12.345.678/0001-99 or 12345678000199
	taxIDPattern = regexp.MustCompile(`^\s*\d{2}[[:punct:]]?\d{3}[[:punct:]]?\d{3}[[:punct:]]?\d{4}[[:punct:]]?\d{2}`)

	noiseLabels = []string{
		"Natureza da despesa",
		"Valor utilizado",
		"VALORES GASTOS",
		"VALORES DISPONIBILIZADOS",
	}

	sectionTerminators = []string{
		"TOTAL DO MÊS",
		"VEREADOR AFASTADO",
	}
)

// StripTags removes element markup and character references from s
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// Classify maps a cell's markup to a Marker. Tags are stripped first, then the rules
// are tried in order: header, noise removal, item terminator, section terminator,
// blank, tax ID, plain value.
func Classify(markup string) Marker {
	text := StripTags(markup)

	if headerPattern.MatchString(text) {
		name := strings.TrimSpace(headerPattern.ReplaceAllString(text, ""))
		if name == "" {
			return Marker{Kind: KindBlank}
		}
		return Marker{Kind: KindHeader, Text: name}
	}

	for _, label := range noiseLabels {
		text = strings.ReplaceAll(text, label, "")
	}

	if strings.Contains(text, itemTerminator) {
		return Marker{Kind: KindItemTerminator}
	}
	for _, phrase := range sectionTerminators {
		if strings.Contains(text, phrase) {
			return Marker{Kind: KindSectionTerminator}
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Marker{Kind: KindBlank}
	}

	if taxIDPattern.MatchString(text) {
		return Marker{Kind: KindTaxID, Text: text}
	}

	return Marker{Kind: KindPlain, Text: text}
}
