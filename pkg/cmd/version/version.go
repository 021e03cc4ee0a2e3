package version

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/inedo/teamcity-cli/pkg/factory"
	"github.com/spf13/cobra"
)

func NewCmdVersion(f factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "version",
		Short:   "Print the version of the CLI",
		Hidden:  true,
		Example: heredoc.Docf("$ %s version", constants.ExecutableName),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println(f.BuildVersion())
			return nil
		},
	}

	return cmd
}
