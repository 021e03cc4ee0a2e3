package view

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/inedo/teamcity-cli/pkg/cmd"
	"github.com/inedo/teamcity-cli/pkg/cmd/shared"
	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/inedo/teamcity-cli/pkg/factory"
	"github.com/inedo/teamcity-cli/pkg/output"
	"github.com/inedo/teamcity-cli/pkg/teamcity"
	"github.com/inedo/teamcity-cli/pkg/usage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type BuildAsJson struct {
	Id              string `json:"Id"`
	Number          string `json:"Number"`
	Status          string `json:"Status"`
	IsRunning       bool   `json:"IsRunning"`
	PercentComplete int    `json:"PercentComplete"`
	BuildTypeId     string `json:"BuildTypeId,omitempty"`
	ProjectName     string `json:"ProjectName,omitempty"`
	BranchName      string `json:"BranchName,omitempty"`
	StatusText      string `json:"StatusText,omitempty"`
	WebUrl          string `json:"WebUrl,omitempty"`
}

func NewCmdView(f factory.Factory) *cobra.Command {
	webFlags := shared.NewWebFlags()
	c := &cobra.Command{
		Use:   "view <id>",
		Short: "View a build",
		Long:  "Show the status of a build, given the build id TeamCity assigned to it.",
		Example: heredoc.Docf(`
			$ %[1]s build view 1234
			$ %[1]s build view 1234 --web
		`, constants.ExecutableName),
		Args: usage.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return viewRun(c, f, strings.TrimSpace(args[0]), webFlags)
		},
	}
	shared.RegisterWebFlag(c, webFlags)
	return c
}

func viewRun(c *cobra.Command, f factory.Factory, id string, webFlags *shared.WebFlags) error {
	if id == "" {
		return usage.NewUsageError("a build id must be specified", c)
	}
	deps, err := cmd.NewDependencies(f, c)
	if err != nil {
		return err
	}

	build, err := deps.Client.GetBuildStatus(c.Context(), "app/rest/builds/id:"+url.PathEscape(id))
	if err != nil {
		return err
	}

	outputFormat, _ := c.Flags().GetString(constants.FlagOutputFormat)
	if outputFormat == "" {
		outputFormat = viper.GetString(constants.ConfigOutputFormat)
	}

	switch strings.ToLower(outputFormat) {
	case constants.OutputFormatJson:
		data, err := json.MarshalIndent(BuildAsJson{
			Id:              build.ID,
			Number:          build.Number,
			Status:          string(build.Status),
			IsRunning:       build.IsRunning,
			PercentComplete: build.PercentComplete,
			BuildTypeId:     build.BuildTypeID,
			ProjectName:     build.ProjectName,
			BranchName:      build.BranchName,
			StatusText:      build.StatusText,
			WebUrl:          build.WebURL,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Out, string(data))
		return nil
	case constants.OutputFormatBasic:
		fmt.Fprintf(deps.Out, "Build #%s %s\n", build.Number, formatStatus(build))
	default:
		rows := []*shared.DataRow{
			shared.NewDataRow("Number", build.Number),
			shared.NewDataRow("Status", formatStatus(build)),
			shared.NewDataRow("Project", build.ProjectName),
			shared.NewDataRow("Configuration", build.BuildTypeID),
			shared.NewDataRow("Branch", build.BranchName),
			shared.NewDataRow("Details", build.StatusText),
		}
		if err := shared.PrintDataRows(deps.Out, rows); err != nil {
			return err
		}
	}
	return shared.DoWeb(build.WebURL, "build", deps.Out, webFlags)
}

func formatStatus(build *teamcity.BuildStatus) string {
	switch {
	case build.Status == teamcity.StatusQueued:
		return output.Cyan("queued")
	case build.IsRunning:
		return output.Cyan("running (" + strconv.Itoa(build.PercentComplete) + "% complete)")
	case build.Succeeded():
		return output.Green(string(build.Status))
	}
	return output.Red(string(build.Status))
}
