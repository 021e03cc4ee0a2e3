package list

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/inedo/teamcity-cli/pkg/cmd"
	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/inedo/teamcity-cli/pkg/factory"
	"github.com/inedo/teamcity-cli/pkg/output"
	"github.com/inedo/teamcity-cli/pkg/teamcity"
	"github.com/spf13/cobra"
)

type ProjectAsJson struct {
	Id              string `json:"Id"`
	Name            string `json:"Name"`
	QualifiedName   string `json:"QualifiedName"`
	ParentProjectId string `json:"ParentProjectId,omitempty"`
}

func NewCmdList(f factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects in TeamCity",
		Long:  "List projects in TeamCity. Nested projects are shown with their parents' names joined by \" :: \".",
		Example: heredoc.Docf(`
			$ %[1]s project list
			$ %[1]s project ls -f json
		`, constants.ExecutableName),
		Aliases: []string{"ls"},
		RunE: func(c *cobra.Command, args []string) error {
			return listRun(c, f)
		},
	}

	return cmd
}

func listRun(c *cobra.Command, f factory.Factory) error {
	deps, err := cmd.NewDependencies(f, c)
	if err != nil {
		return err
	}

	projects, err := deps.Client.ListProjects(c.Context())
	if err != nil {
		return err
	}

	return output.PrintArray(projects, c, output.Mappers[teamcity.Project]{
		Json: func(p teamcity.Project) any {
			return ProjectAsJson{
				Id:              p.ID,
				Name:            p.Name,
				QualifiedName:   p.QualifiedName,
				ParentProjectId: p.ParentProjectID,
			}
		},
		Table: output.TableDefinition[teamcity.Project]{
			Header: []string{"NAME", "ID"},
			Row: func(p teamcity.Project) []string {
				return []string{output.Bold(p.QualifiedName), p.ID}
			},
		},
		Basic: func(p teamcity.Project) string {
			return p.QualifiedName
		},
	})
}
