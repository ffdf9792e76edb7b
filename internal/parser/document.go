package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/camara-gastos/internal/expense"
)

// ErrNoTable is returned when a document has no table to walk
var ErrNoTable = errors.New("no table found in document")

// sourceText undoes the references the renderer adds for quotes and carriage
// returns, leaving only &amp;, &lt; and &gt; escaped in text
var sourceText = strings.NewReplacer("&#39;", "'", "&#34;", `"`, "&#13;", "\r")

// Rows extracts the inner markup of every cell of every table row, in document order.
// Nested rows and cells are included, as the disclosure pages nest tables freely.
func Rows(r io.Reader) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	body := doc.Find("body")
	if body.Length() == 0 || body.Find("table").Length() == 0 {
		return nil, ErrNoTable
	}

	rows := make([][]string, 0)
	body.Find("tr").Each(func(i int, tr *goquery.Selection) {
		cells := make([]string, 0)
		tr.Find("td").Each(func(j int, td *goquery.Selection) {
			markup, err := td.Html()
			if err != nil {
				// unrenderable cell is treated as blank
				markup = ""
			}
			cells = append(cells, sourceText.Replace(markup))
		})
		rows = append(rows, cells)
	})

	return rows, nil
}

// ParseDocument extracts every expense record of one disclosure page
func ParseDocument(r io.Reader, period expense.Period) ([]expense.Record, error) {
	rows, err := Rows(r)
	if err != nil {
		return nil, err
	}
	return Walk(rows, period), nil
}
