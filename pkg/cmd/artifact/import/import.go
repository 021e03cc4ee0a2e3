package _import

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/google/uuid"
	"github.com/inedo/teamcity-cli/pkg/artifacts"
	"github.com/inedo/teamcity-cli/pkg/cmd"
	"github.com/inedo/teamcity-cli/pkg/cmd/shared"
	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/inedo/teamcity-cli/pkg/factory"
	"github.com/inedo/teamcity-cli/pkg/question"
	"github.com/inedo/teamcity-cli/pkg/question/selectors"
	"github.com/inedo/teamcity-cli/pkg/servicemessages"
	"github.com/inedo/teamcity-cli/pkg/teamcity"
	"github.com/inedo/teamcity-cli/pkg/usage"
	"github.com/inedo/teamcity-cli/pkg/util"
	"github.com/inedo/teamcity-cli/pkg/util/flag"
	"github.com/inedo/teamcity-cli/pkg/variables"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	FlagArtifact          = "artifact"
	FlagAliasArtifactName = "artifact-name"

	FlagBuildNumber = "build-number"

	FlagExtract = "extract"
	FlagTarget  = "target"
	FlagInclude = "include"

	FlagApplication = "application"
	FlagRelease     = "release"
	FlagBuild       = "build"

	FlagOutputEnvFile = "output-env-file"
)

type ImportFlags struct {
	*shared.BuildConfigurationFlags
	Artifact      *flag.Flag[string]
	BuildNumber   *flag.Flag[string]
	Extract       *flag.Flag[bool]
	Target        *flag.Flag[string]
	Include       *flag.Flag[[]string]
	Application   *flag.Flag[string]
	Release       *flag.Flag[string]
	Build         *flag.Flag[string]
	OutputEnvFile *flag.Flag[string]
}

func NewImportFlags() *ImportFlags {
	return &ImportFlags{
		BuildConfigurationFlags: shared.NewBuildConfigurationFlags(),
		Artifact:                flag.New[string](FlagArtifact, false),
		BuildNumber:             flag.New[string](FlagBuildNumber, false),
		Extract:                 flag.New[bool](FlagExtract, false),
		Target:                  flag.New[string](FlagTarget, false),
		Include:                 flag.New[[]string](FlagInclude, false),
		Application:             flag.New[string](FlagApplication, false),
		Release:                 flag.New[string](FlagRelease, false),
		Build:                   flag.New[string](FlagBuild, false),
		OutputEnvFile:           flag.New[string](FlagOutputEnvFile, false),
	}
}

func NewCmdImport(f factory.Factory) *cobra.Command {
	importFlags := NewImportFlags()
	c := &cobra.Command{
		Use:   "import",
		Short: "Import an artifact from a build",
		Long: heredoc.Doc(`
			Download an artifact of a TeamCity build and store it in the artifact root, or extract it into a directory.
			The build number may be a concrete number or one of lastSuccessful, lastPinned and lastFinished.
			The concrete build number the artifact came from is printed, and published as TeamCityBuildNumber.
		`),
		Example: heredoc.Docf(`
			$ %[1]s artifact import
			$ %[1]s artifact import --project Widgets --build-type CI --artifact widgets.zip --application widgets --release 1.2
			$ %[1]s artifact import --id bt7 --artifact site.zip --build-number lastPinned --extract --target ./site
		`, constants.ExecutableName),
		Args: usage.ExactArgs(0),
		RunE: func(c *cobra.Command, args []string) error {
			return importRun(c, f, importFlags)
		},
	}

	flagAliases := make(map[string][]string, 6)
	shared.RegisterBuildConfigurationFlags(c, importFlags.BuildConfigurationFlags, flagAliases)

	flags := c.Flags()
	flags.StringVarP(&importFlags.Artifact.Value, importFlags.Artifact.Name, "a", "", "Path of the artifact within the build, such as widgets.zip or dist/site.zip")
	flags.StringVar(&importFlags.BuildNumber.Value, importFlags.BuildNumber.Name, "", "Build to import from. Defaults to lastSuccessful")
	flags.BoolVar(&importFlags.Extract.Value, importFlags.Extract.Name, false, "Extract the artifact, which must be a zip file, instead of storing it")
	flags.StringVar(&importFlags.Target.Value, importFlags.Target.Name, "", "Directory to extract into, used with --extract")
	flags.StringArrayVar(&importFlags.Include.Value, importFlags.Include.Name, nil, "Only extract entries matching this glob, such as bin/**/*.dll (can be specified multiple times)")
	flags.StringVar(&importFlags.Application.Value, importFlags.Application.Name, "", "Application the artifact is stored for")
	flags.StringVar(&importFlags.Release.Value, importFlags.Release.Name, "", "Release number the artifact is stored for")
	flags.StringVar(&importFlags.Build.Value, importFlags.Build.Name, "", "Build of the release the artifact is stored for")
	flags.StringVar(&importFlags.OutputEnvFile.Value, importFlags.OutputEnvFile.Name, "", "Also write TeamCityBuildNumber to this dotenv file")
	flags.SortFlags = false

	util.AddFlagAliases(flags, FlagArtifact, flagAliases, FlagAliasArtifactName)

	c.PreRunE = func(c *cobra.Command, _ []string) error {
		util.ApplyFlagAliases(c.Flags(), flagAliases)
		return nil
	}
	return c
}

func importRun(c *cobra.Command, f factory.Factory, flags *ImportFlags) error {
	if err := flags.Validate(c); err != nil {
		return err
	}
	if flags.Extract.Value && strings.TrimSpace(flags.Target.Value) == "" {
		return usage.NewUsageErrorf(c, "--%s must be specified with --%s", FlagTarget, FlagExtract)
	}

	deps, err := cmd.NewDependencies(f, c)
	if err != nil {
		return err
	}

	flags.ApplyDefaultBranch()
	if deps.NoPrompt {
		if strings.TrimSpace(flags.Artifact.Value) == "" {
			return usage.NewUsageErrorf(c, "--%s must be specified", FlagArtifact)
		}
		if err := shared.AskBuildConfiguration(c, deps, flags.BuildConfigurationFlags); err != nil {
			return err
		}
	} else {
		if err := askQuestions(c, deps, flags); err != nil {
			return err
		}
		autoCmd := flag.GenerateAutomationCmd(deps.CmdPath,
			flags.ID, flags.Project, flags.BuildType, flags.Branch, flags.Artifact, flags.BuildNumber,
			flags.Extract, flags.Target, flags.Include, flags.Application, flags.Release, flags.Build, flags.OutputEnvFile)
		fmt.Fprintf(deps.Out, "\nAutomation Command: %s\n", autoCmd)
	}

	store := artifacts.NewLocalStore(viper.GetString(constants.ConfigArtifactRoot), flags.Include.Value...)
	importer := teamcity.NewArtifactImporter(deps.Client, store, deps.Log)
	ref := flags.Ref()
	app := teamcity.ApplicationContext{
		ApplicationID: strings.TrimSpace(flags.Application.Value),
		ReleaseNumber: strings.TrimSpace(flags.Release.Value),
		BuildNumber:   strings.TrimSpace(flags.Build.Value),
		ExecutionID:   uuid.NewString(),
	}

	buildNumber, err := importer.Import(c.Context(), app, teamcity.ArtifactRequest{
		BuildConfigurationID:   ref.ID,
		ProjectName:            ref.ProjectName,
		BuildConfigurationName: ref.BuildConfigurationName,
		BuildNumber:            strings.TrimSpace(flags.BuildNumber.Value),
		ArtifactName:           strings.TrimSpace(flags.Artifact.Value),
		BranchName:             strings.TrimSpace(flags.Branch.Value),
		ExtractToTarget:        flags.Extract.Value,
		TargetDirectory:        strings.TrimSpace(flags.Target.Value),
	})
	if err != nil {
		return err
	}

	if !flags.Extract.Value {
		deps.Log.Debug("Stored at %s", store.Path(app, teamcity.TrimArtifactName(flags.Artifact.Value)))
	}

	if err := outputSink(deps, flags).Set(constants.BuildNumberVariable, buildNumber); err != nil {
		return err
	}
	fmt.Fprintln(deps.Out, buildNumber)
	return nil
}

func outputSink(deps *cmd.Dependencies, flags *ImportFlags) variables.Sink {
	sinks := []variables.Sink{
		variables.NewServiceMessageSink(servicemessages.NewProvider(servicemessages.NewPrinter(deps.Out, deps.Err))),
	}
	if path := strings.TrimSpace(flags.OutputEnvFile.Value); path != "" {
		sinks = append(sinks, &variables.EnvFileSink{Path: path})
	}
	return variables.Multi(sinks...)
}

func askQuestions(c *cobra.Command, deps *cmd.Dependencies, flags *ImportFlags) error {
	if err := shared.AskBuildConfiguration(c, deps, flags.BuildConfigurationFlags); err != nil {
		return err
	}
	if strings.TrimSpace(flags.BuildNumber.Value) == "" && strings.TrimSpace(flags.ID.Value) == "" {
		number, err := selectors.BuildNumber(c.Context(), deps.Ask, deps.Client, flags.Project.Value, flags.BuildType.Value, "Select the build to import from")
		if err != nil {
			return err
		}
		flags.BuildNumber.Value = number
	}
	if strings.TrimSpace(flags.Artifact.Value) == "" {
		artifact, err := question.Input(deps.Ask, "Artifact", "Path of the artifact within the build, such as widgets.zip", true)
		if err != nil {
			return err
		}
		flags.Artifact.Value = artifact
	}
	return nil
}
