package usage

import (
	"fmt"

	"github.com/spf13/cobra"
)

// UsageError means the command line was wrong; the root error handler prints the
// command's usage after the message.
type UsageError struct {
	s   string
	cmd *cobra.Command
}

func NewUsageError(s string, cmd *cobra.Command) *UsageError {
	return &UsageError{s: s, cmd: cmd}
}

func NewUsageErrorf(cmd *cobra.Command, format string, args ...any) *UsageError {
	return NewUsageError(fmt.Sprintf(format, args...), cmd)
}

func (e *UsageError) Error() string {
	return e.s
}

func (e *UsageError) Command() *cobra.Command {
	return e.cmd
}

func ExactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return NewUsageErrorf(cmd, "accepts %d arg(s), received %d", n, len(args))
		}
		return nil
	}
}

func MaximumNArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return NewUsageErrorf(cmd, "accepts at most %d arg(s), received %d", n, len(args))
		}
		return nil
	}
}

// MutuallyExclusive fails when more than one of the named flags was set.
func MutuallyExclusive(cmd *cobra.Command, flagNames ...string) error {
	var set []string
	for _, name := range flagNames {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			set = append(set, "--"+name)
		}
	}
	if len(set) > 1 {
		return NewUsageErrorf(cmd, "%s cannot be used together", joinFlags(set))
	}
	return nil
}

func joinFlags(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	result := names[0]
	for _, n := range names[1 : len(names)-1] {
		result += ", " + n
	}
	return result + " and " + names[len(names)-1]
}
