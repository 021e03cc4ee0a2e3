package output

import (
	"fmt"
	"os"

	"github.com/mgutz/ansi"
	"golang.org/x/term"
)

var isColorEnabled = os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(os.Stdout.Fd()))

// SetColorEnabled overrides terminal detection.
func SetColorEnabled(enabled bool) {
	isColorEnabled = enabled
}

type colorFunc func(string) string

func painter(style string) colorFunc {
	paint := ansi.ColorFunc(style)
	return func(s string) string {
		if !isColorEnabled {
			return s
		}
		return paint(s)
	}
}

var (
	Red     = painter("red")
	Green   = painter("green")
	Yellow  = painter("yellow")
	Cyan    = painter("cyan")
	Blue    = painter("blue")
	Magenta = painter("magenta")
	Bold    = painter("default+b")
	Dim     = painter("black+h")
)

func Redf(format string, args ...any) string    { return Red(fmt.Sprintf(format, args...)) }
func Greenf(format string, args ...any) string  { return Green(fmt.Sprintf(format, args...)) }
func Yellowf(format string, args ...any) string { return Yellow(fmt.Sprintf(format, args...)) }
func Cyanf(format string, args ...any) string   { return Cyan(fmt.Sprintf(format, args...)) }
func Boldf(format string, args ...any) string   { return Bold(fmt.Sprintf(format, args...)) }
func Dimf(format string, args ...any) string    { return Dim(fmt.Sprintf(format, args...)) }
