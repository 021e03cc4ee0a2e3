package project

import (
	"github.com/MakeNowJust/heredoc/v2"
	cmdList "github.com/inedo/teamcity-cli/pkg/cmd/project/list"
	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/inedo/teamcity-cli/pkg/constants/annotations"
	"github.com/inedo/teamcity-cli/pkg/factory"
	"github.com/spf13/cobra"
)

func NewCmdProject(f factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project <command>",
		Aliases: []string{"proj"},
		Short:   "Manage projects",
		Long:    "Work with TeamCity projects.",
		Example: heredoc.Docf(`
			$ %[1]s project list
			$ %[1]s project ls
		`, constants.ExecutableName),
		Annotations: map[string]string{
			annotations.IsCore: "true",
		},
	}

	cmd.AddCommand(cmdList.NewCmdList(f))

	return cmd
}
