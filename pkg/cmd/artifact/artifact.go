package artifact

import (
	"github.com/MakeNowJust/heredoc/v2"
	cmdImport "github.com/inedo/teamcity-cli/pkg/cmd/artifact/import"
	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/inedo/teamcity-cli/pkg/constants/annotations"
	"github.com/inedo/teamcity-cli/pkg/factory"
	"github.com/spf13/cobra"
)

func NewCmdArtifact(f factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifact <command>",
		Short: "Import build artifacts",
		Long:  "Download artifacts published by TeamCity builds.",
		Example: heredoc.Docf(`
			$ %[1]s artifact import --project Widgets --build-type CI --artifact widgets.zip
		`, constants.ExecutableName),
		Annotations: map[string]string{
			annotations.IsCore: "true",
		},
	}

	cmd.AddCommand(cmdImport.NewCmdImport(f))

	return cmd
}
