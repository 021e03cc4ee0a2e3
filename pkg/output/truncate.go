package output

import (
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

const ellipsis = "..."

// Truncate shortens s to maxWidth printable cells, ending with an ellipsis when there is room for one.
func Truncate(maxWidth int, s string) string {
	if maxWidth <= 0 || ansi.PrintableRuneWidth(s) <= maxWidth {
		return s
	}
	tail := ""
	if maxWidth > len(ellipsis)+1 {
		tail = ellipsis
	}
	return truncate.StringWithTail(s, uint(maxWidth), tail)
}
