package queue

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/inedo/teamcity-cli/pkg/cmd"
	"github.com/inedo/teamcity-cli/pkg/cmd/shared"
	"github.com/inedo/teamcity-cli/pkg/config"
	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/inedo/teamcity-cli/pkg/factory"
	"github.com/inedo/teamcity-cli/pkg/output"
	"github.com/inedo/teamcity-cli/pkg/question"
	"github.com/inedo/teamcity-cli/pkg/teamcity"
	"github.com/inedo/teamcity-cli/pkg/usage"
	"github.com/inedo/teamcity-cli/pkg/util"
	"github.com/inedo/teamcity-cli/pkg/util/flag"
	"github.com/inedo/teamcity-cli/pkg/validation"
	"github.com/spf13/cobra"
)

const (
	FlagLegacy = "legacy"

	FlagProperty = "property"

	FlagAdditionalParameters = "additional-parameters"

	FlagWait                   = "wait"
	FlagAliasWaitForCompletion = "wait-for-completion"
)

// appearDelay is how long the legacy trigger waits before looking for the running build.
var appearDelay = teamcity.DefaultAppearDelay

type QueueFlags struct {
	*shared.BuildConfigurationFlags
	Legacy               *flag.Flag[bool]
	Properties           *flag.Flag[[]string]
	AdditionalParameters *flag.Flag[string]
	Wait                 *flag.Flag[bool]
	*shared.WebFlags
}

func NewQueueFlags() *QueueFlags {
	return &QueueFlags{
		BuildConfigurationFlags: shared.NewBuildConfigurationFlags(),
		Legacy:                  flag.New[bool](FlagLegacy, false),
		Properties:              flag.New[[]string](FlagProperty, false),
		AdditionalParameters:    flag.New[string](FlagAdditionalParameters, false),
		Wait:                    flag.New[bool](FlagWait, false),
		WebFlags:                shared.NewWebFlags(),
	}
}

func NewCmdQueue(f factory.Factory) *cobra.Command {
	queueFlags := NewQueueFlags()
	c := &cobra.Command{
		Use:   "queue",
		Short: "Queue a build",
		Long:  "Queue a build of a TeamCity build configuration, optionally waiting for it to finish.",
		Example: heredoc.Docf(`
			$ %[1]s build queue
			$ %[1]s build queue --project Widgets --build-type CI --branch release/1.0 --wait
			$ %[1]s build queue --id bt7 --property env.TARGET=staging --property env.VERBOSE=true
			$ %[1]s build queue --id bt7 --legacy --additional-parameters "name=env.TARGET&value=staging"
		`, constants.ExecutableName),
		Args: usage.ExactArgs(0),
		RunE: func(c *cobra.Command, args []string) error {
			return queueRun(c, f, queueFlags)
		},
	}

	flagAliases := make(map[string][]string, 6)
	shared.RegisterBuildConfigurationFlags(c, queueFlags.BuildConfigurationFlags, flagAliases)

	flags := c.Flags()
	flags.BoolVar(&queueFlags.Legacy.Value, queueFlags.Legacy.Name, false, "Trigger through action.html instead of the REST build queue, for servers older than TeamCity 8")
	flags.StringArrayVar(&queueFlags.Properties.Value, queueFlags.Properties.Name, nil, "Set a build parameter in the form name=value (can be specified multiple times)")
	flags.StringVar(&queueFlags.AdditionalParameters.Value, queueFlags.AdditionalParameters.Name, "", "Extra query string appended to the trigger request, only used with --legacy")
	flags.BoolVar(&queueFlags.Wait.Value, queueFlags.Wait.Name, false, "Wait for the build to finish, and fail if the build fails")
	shared.RegisterWebFlag(c, queueFlags.WebFlags)
	flags.SortFlags = false

	util.AddFlagAliases(flags, FlagWait, flagAliases, FlagAliasWaitForCompletion)

	c.PreRunE = func(c *cobra.Command, _ []string) error {
		util.ApplyFlagAliases(c.Flags(), flagAliases)
		return nil
	}
	return c
}

func queueRun(c *cobra.Command, f factory.Factory, flags *QueueFlags) error {
	if err := flags.Validate(c); err != nil {
		return err
	}
	properties, err := parseProperties(c, flags.Properties.Value)
	if err != nil {
		return err
	}

	deps, err := cmd.NewDependencies(f, c)
	if err != nil {
		return err
	}

	flags.ApplyDefaultBranch()
	if !deps.NoPrompt {
		if err := askQuestions(c, deps, flags); err != nil {
			return err
		}
		autoCmd := flag.GenerateAutomationCmd(deps.CmdPath,
			flags.ID, flags.Project, flags.BuildType, flags.Branch,
			flags.Legacy, flags.Properties, flags.AdditionalParameters, flags.Wait)
		fmt.Fprintf(deps.Out, "\nAutomation Command: %s\n", autoCmd)
	} else if err := shared.AskBuildConfiguration(c, deps, flags.BuildConfigurationFlags); err != nil {
		return err
	}

	queuer := teamcity.NewBuildQueuer(deps.Client, deps.Log)
	queuer.Configuration = flags.Ref()
	queuer.BranchName = strings.TrimSpace(flags.Branch.Value)
	queuer.WaitForCompletion = flags.Wait.Value
	queuer.PollInterval = config.PollInterval(teamcity.DefaultPollInterval)
	queuer.AppearDelay = appearDelay
	if flags.Legacy.Value {
		queuer.Strategy = teamcity.TriggerLegacyAction
		queuer.AdditionalParameters = strings.TrimSpace(flags.AdditionalParameters.Value)
		if len(properties) > 0 {
			deps.Log.Warn("--%s is ignored with --%s; pass parameters with --%s instead", FlagProperty, FlagLegacy, FlagAdditionalParameters)
		}
	} else {
		queuer.Strategy = teamcity.TriggerBuildQueue
		queuer.Properties = properties
		if flags.AdditionalParameters.Value != "" {
			deps.Log.Warn("--%s is only used with --%s", FlagAdditionalParameters, FlagLegacy)
		}
	}

	if queuer.WaitForCompletion {
		queuer.OnProgress = func(p teamcity.Progress) {
			deps.Spinner.SetMessage(p.Message)
		}
		deps.Spinner.Start()
	}
	outcome := queuer.Queue(c.Context())
	deps.Spinner.Stop()

	if !outcome.Succeeded() {
		return outcome.Err
	}

	if build := outcome.Build; build != nil {
		if outcome.Result == teamcity.ResultSucceeded {
			fmt.Fprintf(deps.Out, "Build %s finished: %s\n", output.Bold("#"+build.Number), output.Green(string(build.Status)))
		} else if build.ID != "" {
			fmt.Fprintf(deps.Out, "Build %s was queued.\n", output.Bold(build.ID))
		}
		return shared.DoWeb(build.WebURL, "build", deps.Out, flags.WebFlags)
	}
	fmt.Fprintln(deps.Out, "Build was triggered.")
	return nil
}

func askQuestions(c *cobra.Command, deps *cmd.Dependencies, flags *QueueFlags) error {
	if err := shared.AskBuildConfiguration(c, deps, flags.BuildConfigurationFlags); err != nil {
		return err
	}
	if strings.TrimSpace(flags.Branch.Value) == "" {
		branch, err := question.Input(deps.Ask, "Branch", "Leave blank to build the default branch of the build configuration.", false)
		if err != nil {
			return err
		}
		flags.Branch.Value = branch
	}
	return nil
}

// parseProperties turns name=value pairs into a map. A later value for the same name wins.
func parseProperties(c *cobra.Command, values []string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	properties := make(map[string]string, len(values))
	for _, v := range values {
		if err := validation.IsPropertyAssignment(v); err != nil {
			return nil, usage.NewUsageError(err.Error(), c)
		}
		name, value, _ := strings.Cut(v, "=")
		properties[strings.TrimSpace(name)] = value
	}
	return properties, nil
}
