package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/reflow/ansi"
	"golang.org/x/term"
)

const (
	columnDelimiter = "  "
	// used when not attached to a terminal so scripts and CI logs get whole values
	unlimitedWidth = 99999
)

type Table interface {
	AddRow(fields ...string)
	Print() error
}

type table struct {
	out      io.Writer
	maxWidth int
	rows     [][]string
}

func NewTable(out io.Writer) Table {
	width := unlimitedWidth
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	return &table{out: out, maxWidth: width}
}

func (t *table) AddRow(fields ...string) {
	t.rows = append(t.rows, fields)
}

func (t *table) Print() error {
	if len(t.rows) == 0 {
		return nil
	}
	widths := t.columnWidths()
	for _, row := range t.rows {
		var line strings.Builder
		for col, field := range row {
			if col > 0 {
				line.WriteString(columnDelimiter)
			}
			value := Truncate(widths[col], field)
			line.WriteString(value)
			if col < len(row)-1 {
				if pad := widths[col] - ansi.PrintableRuneWidth(value); pad > 0 {
					line.WriteString(strings.Repeat(" ", pad))
				}
			}
		}
		if _, err := fmt.Fprintln(t.out, line.String()); err != nil {
			return err
		}
	}
	return nil
}

// columnWidths sizes every column to its widest value; when that overflows the terminal,
// the last column gets whatever width is left.
func (t *table) columnWidths() []int {
	var widths []int
	for _, row := range t.rows {
		for col, field := range row {
			if col >= len(widths) {
				widths = append(widths, 0)
			}
			if w := ansi.PrintableRuneWidth(field); w > widths[col] {
				widths[col] = w
			}
		}
	}

	total := len(columnDelimiter) * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	if last := len(widths) - 1; total > t.maxWidth && last > 0 {
		remaining := widths[last] - (total - t.maxWidth)
		if remaining < len(ellipsis)+2 {
			remaining = len(ellipsis) + 2
		}
		widths[last] = remaining
	}
	return widths
}
