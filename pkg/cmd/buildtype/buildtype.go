package buildtype

import (
	"github.com/MakeNowJust/heredoc/v2"
	cmdList "github.com/inedo/teamcity-cli/pkg/cmd/buildtype/list"
	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/inedo/teamcity-cli/pkg/constants/annotations"
	"github.com/inedo/teamcity-cli/pkg/factory"
	"github.com/spf13/cobra"
)

func NewCmdBuildType(f factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "buildtype <command>",
		Aliases: []string{"build-type", "bt"},
		Short:   "Manage build configurations",
		Long:    "Work with TeamCity build configurations, called build types by the REST API.",
		Example: heredoc.Docf(`
			$ %[1]s buildtype list
			$ %[1]s bt ls --project Widgets
		`, constants.ExecutableName),
		Annotations: map[string]string{
			annotations.IsCore: "true",
		},
	}

	cmd.AddCommand(cmdList.NewCmdList(f))

	return cmd
}
