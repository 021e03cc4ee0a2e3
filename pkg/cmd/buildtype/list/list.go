package list

import (
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/inedo/teamcity-cli/pkg/cmd"
	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/inedo/teamcity-cli/pkg/factory"
	"github.com/inedo/teamcity-cli/pkg/output"
	"github.com/inedo/teamcity-cli/pkg/teamcity"
	"github.com/inedo/teamcity-cli/pkg/usage"
	"github.com/inedo/teamcity-cli/pkg/util/flag"
	"github.com/spf13/cobra"
)

const FlagProject = "project"

type BuildTypeAsJson struct {
	Id          string `json:"Id"`
	Name        string `json:"Name"`
	ProjectId   string `json:"ProjectId"`
	ProjectName string `json:"ProjectName"`
}

type ListFlags struct {
	Project *flag.Flag[string]
}

func NewCmdList(f factory.Factory) *cobra.Command {
	listFlags := &ListFlags{Project: flag.New[string](FlagProject, false)}
	c := &cobra.Command{
		Use:   "list",
		Short: "List build configurations",
		Long:  "List the build configurations on the server, optionally only those of one project.",
		Example: heredoc.Docf(`
			$ %[1]s buildtype list
			$ %[1]s buildtype list --project "Platform :: Widgets" -f json
		`, constants.ExecutableName),
		Aliases: []string{"ls"},
		Args:    usage.ExactArgs(0),
		RunE: func(c *cobra.Command, args []string) error {
			return listRun(c, f, listFlags)
		},
	}
	c.Flags().StringVarP(&listFlags.Project.Value, listFlags.Project.Name, "p", "", "Only list the build configurations of this project, given by its full name")
	return c
}

func listRun(c *cobra.Command, f factory.Factory, flags *ListFlags) error {
	deps, err := cmd.NewDependencies(f, c)
	if err != nil {
		return err
	}

	buildTypes, err := deps.Client.ListBuildTypes(c.Context())
	if err != nil {
		return err
	}
	if project := strings.TrimSpace(flags.Project.Value); project != "" {
		var matching []teamcity.BuildType
		for _, bt := range buildTypes {
			if strings.EqualFold(bt.ProjectName, project) {
				matching = append(matching, bt)
			}
		}
		buildTypes = matching
	}

	return output.PrintArray(buildTypes, c, output.Mappers[teamcity.BuildType]{
		Json: func(bt teamcity.BuildType) any {
			return BuildTypeAsJson{
				Id:          bt.ID,
				Name:        bt.Name,
				ProjectId:   bt.ProjectID,
				ProjectName: bt.ProjectName,
			}
		},
		Table: output.TableDefinition[teamcity.BuildType]{
			Header: []string{"ID", "NAME", "PROJECT"},
			Row: func(bt teamcity.BuildType) []string {
				return []string{bt.ID, output.Bold(bt.Name), bt.ProjectName}
			},
		},
		Basic: func(bt teamcity.BuildType) string {
			return bt.Name
		},
	})
}
