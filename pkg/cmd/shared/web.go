package shared

import (
	"fmt"
	"io"

	"github.com/inedo/teamcity-cli/pkg/output"
	"github.com/inedo/teamcity-cli/pkg/util/flag"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

const (
	FlagWeb = "web"
)

type WebFlags struct {
	Web *flag.Flag[bool]
}

func NewWebFlags() *WebFlags {
	return &WebFlags{
		Web: flag.New[bool](FlagWeb, false),
	}
}

func RegisterWebFlag(cmd *cobra.Command, flags *WebFlags) {
	cmd.Flags().BoolVarP(&flags.Web.Value, flags.Web.Name, "w", false, "Open in web browser")
}

// openURL is swapped out in tests.
var openURL = browser.OpenURL

// DoWeb prints the link to a page of the TeamCity UI and opens it when --web was given.
func DoWeb(url string, description string, out io.Writer, flags *WebFlags) error {
	if url == "" {
		return nil
	}
	fmt.Fprintf(out, "View this %s on TeamCity: %s\n", description, output.Blue(url))
	if flags != nil && flags.Web.Value {
		return openURL(url)
	}
	return nil
}
