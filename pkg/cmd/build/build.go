package build

import (
	"github.com/MakeNowJust/heredoc/v2"
	cmdList "github.com/inedo/teamcity-cli/pkg/cmd/build/list"
	cmdQueue "github.com/inedo/teamcity-cli/pkg/cmd/build/queue"
	cmdView "github.com/inedo/teamcity-cli/pkg/cmd/build/view"
	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/inedo/teamcity-cli/pkg/constants/annotations"
	"github.com/inedo/teamcity-cli/pkg/factory"
	"github.com/spf13/cobra"
)

func NewCmdBuild(f factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <command>",
		Short: "Queue and inspect builds",
		Long:  "Queue TeamCity builds, wait for them to finish and look up their build numbers.",
		Example: heredoc.Docf(`
			$ %[1]s build queue --project Widgets --build-type CI --wait
			$ %[1]s build view 1234
			$ %[1]s build list --project Widgets --build-type CI
		`, constants.ExecutableName),
		Annotations: map[string]string{
			annotations.IsCore: "true",
		},
	}

	cmd.AddCommand(cmdQueue.NewCmdQueue(f))
	cmd.AddCommand(cmdView.NewCmdView(f))
	cmd.AddCommand(cmdList.NewCmdList(f))

	return cmd
}
