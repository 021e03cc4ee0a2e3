package config

import (
	"github.com/MakeNowJust/heredoc/v2"
	getCmd "github.com/inedo/teamcity-cli/pkg/cmd/config/get"
	listCmd "github.com/inedo/teamcity-cli/pkg/cmd/config/list"
	setCmd "github.com/inedo/teamcity-cli/pkg/cmd/config/set"
	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/inedo/teamcity-cli/pkg/constants/annotations"
	"github.com/inedo/teamcity-cli/pkg/factory"
	"github.com/spf13/cobra"
)

func NewCmdConfig(f factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config <command>",
		Short: "Manage CLI config file",
		Long:  "Manage the CLI config file, which holds the server, account and defaults used by every command.",
		Example: heredoc.Docf(`
			$ %[1]s config set Server https://teamcity.example.com
			$ %[1]s config get DefaultBranch
			$ %[1]s config list
		`, constants.ExecutableName),
		Annotations: map[string]string{
			annotations.IsConfiguration: "true",
		},
	}

	cmd.AddCommand(getCmd.NewCmdGet(f))
	cmd.AddCommand(setCmd.NewCmdSet(f))
	cmd.AddCommand(listCmd.NewCmdList(f))
	return cmd
}
