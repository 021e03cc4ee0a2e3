package list

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/inedo/teamcity-cli/pkg/cmd"
	"github.com/inedo/teamcity-cli/pkg/cmd/shared"
	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/inedo/teamcity-cli/pkg/factory"
	"github.com/inedo/teamcity-cli/pkg/output"
	"github.com/inedo/teamcity-cli/pkg/teamcity"
	"github.com/inedo/teamcity-cli/pkg/usage"
	"github.com/inedo/teamcity-cli/pkg/util"
	"github.com/spf13/cobra"
)

type BuildNumberAsJson struct {
	Number   string `json:"Number"`
	Reserved bool   `json:"Reserved"`
}

func NewCmdList(f factory.Factory) *cobra.Command {
	listFlags := shared.NewBuildConfigurationFlags()
	c := &cobra.Command{
		Use:   "list",
		Short: "List build numbers of a build configuration",
		Long: heredoc.Doc(`
			List the build numbers of a build configuration. The reserved numbers lastSuccessful,
			lastPinned and lastFinished come first and may be used wherever a build number is expected.
		`),
		Example: heredoc.Docf(`
			$ %[1]s build list --project Widgets --build-type CI
			$ %[1]s build ls -p Widgets -t CI -f basic
		`, constants.ExecutableName),
		Aliases: []string{"ls"},
		Args:    usage.ExactArgs(0),
		RunE: func(c *cobra.Command, args []string) error {
			return listRun(c, f, listFlags)
		},
	}

	flagAliases := make(map[string][]string, 2)
	flags := c.Flags()
	flags.StringVarP(&listFlags.Project.Value, listFlags.Project.Name, "p", "", "Name of the project")
	flags.StringVarP(&listFlags.BuildType.Value, listFlags.BuildType.Name, "t", "", "Name of the build configuration within the project")
	util.AddFlagAliases(flags, shared.FlagProject, flagAliases, shared.FlagAliasProjectName)
	util.AddFlagAliases(flags, shared.FlagBuildType, flagAliases, shared.FlagAliasBuildConfigurationName)

	c.PreRunE = func(c *cobra.Command, _ []string) error {
		util.ApplyFlagAliases(c.Flags(), flagAliases)
		return nil
	}
	return c
}

func listRun(c *cobra.Command, f factory.Factory, flags *shared.BuildConfigurationFlags) error {
	deps, err := cmd.NewDependencies(f, c)
	if err != nil {
		return err
	}
	if deps.NoPrompt && (flags.Project.Value == "" || flags.BuildType.Value == "") {
		return usage.NewUsageErrorf(c, "--%s and --%s must be specified", shared.FlagProject, shared.FlagBuildType)
	}
	if err := shared.AskBuildConfiguration(c, deps, flags); err != nil {
		return err
	}

	ref := flags.Ref()
	numbers, err := deps.Client.ListBuildNumbers(c.Context(), ref.ProjectName, ref.BuildConfigurationName)
	if err != nil {
		return err
	}

	return output.PrintArray(numbers, c, output.Mappers[string]{
		Json: func(n string) any {
			return BuildNumberAsJson{Number: n, Reserved: teamcity.IsReservedBuildNumber(n)}
		},
		Table: output.TableDefinition[string]{
			Header: []string{"BUILD NUMBER"},
			Row: func(n string) []string {
				if teamcity.IsReservedBuildNumber(n) {
					return []string{output.Dim(n)}
				}
				return []string{n}
			},
		},
		Basic: func(n string) string {
			return n
		},
	})
}
