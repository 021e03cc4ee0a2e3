package logging

import (
	"fmt"
	"io"
	"sync"

	"github.com/inedo/teamcity-cli/pkg/output"
	"github.com/inedo/teamcity-cli/pkg/teamcity"
)

// ConsoleLogger writes information to out, and warnings and errors to errOut.
// Debug messages are only written when verbose.
type ConsoleLogger struct {
	out     io.Writer
	errOut  io.Writer
	verbose bool
	mu      sync.Mutex
}

var _ teamcity.Logger = (*ConsoleLogger)(nil)

func NewConsoleLogger(out io.Writer, errOut io.Writer, verbose bool) *ConsoleLogger {
	return &ConsoleLogger{
		out:     out,
		errOut:  errOut,
		verbose: verbose,
	}
}

func (l *ConsoleLogger) Debug(format string, args ...any) {
	if !l.verbose {
		return
	}
	l.write(l.out, output.Dimf(format, args...))
}

func (l *ConsoleLogger) Info(format string, args ...any) {
	l.write(l.out, fmt.Sprintf(format, args...))
}

func (l *ConsoleLogger) Warn(format string, args ...any) {
	l.write(l.errOut, output.Yellow("Warning: ")+fmt.Sprintf(format, args...))
}

func (l *ConsoleLogger) Error(format string, args ...any) {
	l.write(l.errOut, output.Red("Error: ")+fmt.Sprintf(format, args...))
}

func (l *ConsoleLogger) write(w io.Writer, line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintln(w, line)
}
