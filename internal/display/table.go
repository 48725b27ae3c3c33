package display

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table renders rows as aligned plain-text columns. Widths are measured in
// terminal cells so Hangul names line up with ASCII ones.
type Table struct {
	Header   []string
	Rows     [][]string
	MaxWidth int // per-column cap in cells; 0 means no cap
}

// Append adds a row.
func (t *Table) Append(cells ...string) { t.Rows = append(t.Rows, cells) }

// Render writes the table with a dashed rule under the header.
func (t *Table) Render(w io.Writer) error {
	widths := t.widths()
	var b strings.Builder
	if len(t.Header) > 0 {
		writeRow(&b, t.Header, widths, t.MaxWidth)
		rule := make([]string, len(widths))
		for i, n := range widths {
			rule[i] = strings.Repeat("-", n)
		}
		writeRow(&b, rule, widths, 0)
	}
	for _, row := range t.Rows {
		writeRow(&b, row, widths, t.MaxWidth)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (t *Table) widths() []int {
	n := len(t.Header)
	for _, r := range t.Rows {
		if len(r) > n {
			n = len(r)
		}
	}
	widths := make([]int, n)
	measure := func(row []string) {
		for i, cell := range row {
			cw := runewidth.StringWidth(cell)
			if t.MaxWidth > 0 && cw > t.MaxWidth {
				cw = t.MaxWidth
			}
			if cw > widths[i] {
				widths[i] = cw
			}
		}
	}
	measure(t.Header)
	for _, r := range t.Rows {
		measure(r)
	}
	return widths
}

func writeRow(b *strings.Builder, row []string, widths []int, limit int) {
	for i, width := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if limit > 0 {
			cell = runewidth.Truncate(cell, limit, "…")
		}
		if i == len(widths)-1 {
			b.WriteString(cell)
			break
		}
		b.WriteString(runewidth.FillRight(cell, width))
		b.WriteString("  ")
	}
	b.WriteString("\n")
}
