package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	artifactCmd "github.com/inedo/teamcity-cli/pkg/cmd/artifact"
	buildCmd "github.com/inedo/teamcity-cli/pkg/cmd/build"
	buildTypeCmd "github.com/inedo/teamcity-cli/pkg/cmd/buildtype"
	configCmd "github.com/inedo/teamcity-cli/pkg/cmd/config"
	projectCmd "github.com/inedo/teamcity-cli/pkg/cmd/project"
	versionCmd "github.com/inedo/teamcity-cli/pkg/cmd/version"
	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/inedo/teamcity-cli/pkg/factory"
	"github.com/inedo/teamcity-cli/pkg/question"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewCmdRoot returns the base command when called without any subcommands.
// askProvider may be nil when prompting is controlled by the factory alone, as in tests.
func NewCmdRoot(f factory.Factory, askProvider question.AskProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   constants.ExecutableName + " <command>",
		Short: "TeamCity CLI",
		Long:  "Queue TeamCity builds, follow them to completion and import their artifacts from the command line.",
		Example: heredoc.Docf(`
			$ %[1]s build queue --project "Platform :: Widgets" --build-type CI --wait
			$ %[1]s artifact import --project Widgets --build-type CI --artifact widgets.zip
		`, constants.ExecutableName),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if askProvider != nil && viper.GetBool(constants.ConfigNoPrompt) {
				askProvider.DisableInteractive()
			}
			return nil
		},
	}

	cmdPFlags := cmd.PersistentFlags()
	cmdPFlags.BoolP(constants.FlagHelp, "h", false, "Show help for a command")
	cmdPFlags.StringP(constants.FlagOutputFormat, "f", "", "Specify the output format for a command (\"json\", \"table\", or \"basic\")")
	cmdPFlags.Bool(constants.FlagNoPrompt, false, "Disable prompting in interactive mode")
	cmdPFlags.BoolP(constants.FlagVerbose, "v", false, "Write debug output, including every request sent to the server")

	// flags override values from the environment and the config file
	_ = viper.BindPFlag(constants.ConfigNoPrompt, cmdPFlags.Lookup(constants.FlagNoPrompt))
	_ = viper.BindPFlag(constants.ConfigOutputFormat, cmdPFlags.Lookup(constants.FlagOutputFormat))
	_ = viper.BindPFlag(constants.ConfigVerbose, cmdPFlags.Lookup(constants.FlagVerbose))

	cmd.SetHelpFunc(rootHelpFunc)

	// core commands
	cmd.AddCommand(buildCmd.NewCmdBuild(f))
	cmd.AddCommand(artifactCmd.NewCmdArtifact(f))
	cmd.AddCommand(projectCmd.NewCmdProject(f))
	cmd.AddCommand(buildTypeCmd.NewCmdBuildType(f))

	// configuration commands
	cmd.AddCommand(configCmd.NewCmdConfig(f))

	cmd.AddCommand(versionCmd.NewCmdVersion(f))

	return cmd
}
