package shared

import (
	"strings"

	"github.com/inedo/teamcity-cli/pkg/cmd"
	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/inedo/teamcity-cli/pkg/question/selectors"
	"github.com/inedo/teamcity-cli/pkg/teamcity"
	"github.com/inedo/teamcity-cli/pkg/usage"
	"github.com/inedo/teamcity-cli/pkg/util"
	"github.com/inedo/teamcity-cli/pkg/util/flag"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	FlagBuildConfigurationID      = "id"
	FlagAliasBuildConfigurationID = "build-configuration-id"

	FlagProject          = "project"
	FlagAliasProjectName = "project-name"

	FlagBuildType                   = "build-type"
	FlagAliasBuildConfigurationName = "build-configuration-name"

	FlagBranch          = "branch"
	FlagAliasBranchName = "branch-name"
)

// BuildConfigurationFlags select a build configuration either by id or by project and name.
type BuildConfigurationFlags struct {
	ID        *flag.Flag[string]
	Project   *flag.Flag[string]
	BuildType *flag.Flag[string]
	Branch    *flag.Flag[string]
}

func NewBuildConfigurationFlags() *BuildConfigurationFlags {
	return &BuildConfigurationFlags{
		ID:        flag.New[string](FlagBuildConfigurationID, false),
		Project:   flag.New[string](FlagProject, false),
		BuildType: flag.New[string](FlagBuildType, false),
		Branch:    flag.New[string](FlagBranch, false),
	}
}

// RegisterBuildConfigurationFlags adds the flags, and their long-form aliases to flagAliases.
func RegisterBuildConfigurationFlags(c *cobra.Command, flags *BuildConfigurationFlags, flagAliases map[string][]string) {
	f := c.Flags()
	f.StringVar(&flags.ID.Value, flags.ID.Name, "", "ID of the build configuration, such as bt7. Takes the place of --project and --build-type")
	f.StringVarP(&flags.Project.Value, flags.Project.Name, "p", "", "Name of the project. Nested projects may be given by any level of their name")
	f.StringVarP(&flags.BuildType.Value, flags.BuildType.Name, "t", "", "Name of the build configuration within the project")
	f.StringVarP(&flags.Branch.Value, flags.Branch.Name, "b", "", "Branch to use. Defaults to the DefaultBranch config value, then the configuration's default branch")

	util.AddFlagAliases(f, FlagBuildConfigurationID, flagAliases, FlagAliasBuildConfigurationID)
	util.AddFlagAliases(f, FlagProject, flagAliases, FlagAliasProjectName)
	util.AddFlagAliases(f, FlagBuildType, flagAliases, FlagAliasBuildConfigurationName)
	util.AddFlagAliases(f, FlagBranch, flagAliases, FlagAliasBranchName)
}

// Ref returns the configuration reference the flags describe.
func (flags *BuildConfigurationFlags) Ref() teamcity.BuildConfigurationRef {
	return teamcity.BuildConfigurationRef{
		ID:                     strings.TrimSpace(flags.ID.Value),
		ProjectName:            strings.TrimSpace(flags.Project.Value),
		BuildConfigurationName: strings.TrimSpace(flags.BuildType.Value),
	}
}

func (flags *BuildConfigurationFlags) Validate(c *cobra.Command) error {
	if err := usage.MutuallyExclusive(c, FlagBuildConfigurationID, FlagProject); err != nil {
		return err
	}
	return usage.MutuallyExclusive(c, FlagBuildConfigurationID, FlagBuildType)
}

// ApplyDefaultBranch fills in the branch from config when none was given.
func (flags *BuildConfigurationFlags) ApplyDefaultBranch() {
	if strings.TrimSpace(flags.Branch.Value) == "" {
		flags.Branch.Value = strings.TrimSpace(viper.GetString(constants.ConfigDefaultBranch))
	}
}

// AskBuildConfiguration prompts for whatever part of the project and build configuration is missing.
// Without prompting, a missing value is a usage error.
func AskBuildConfiguration(c *cobra.Command, deps *cmd.Dependencies, flags *BuildConfigurationFlags) error {
	if strings.TrimSpace(flags.ID.Value) != "" {
		return nil
	}
	if deps.NoPrompt {
		if strings.TrimSpace(flags.Project.Value) == "" || strings.TrimSpace(flags.BuildType.Value) == "" {
			return usage.NewUsageErrorf(c, "either --%s or both --%s and --%s must be specified", FlagBuildConfigurationID, FlagProject, FlagBuildType)
		}
		return nil
	}

	if strings.TrimSpace(flags.Project.Value) == "" {
		project, err := selectors.Project(c.Context(), deps.Ask, deps.Client, "Select the project")
		if err != nil {
			return err
		}
		flags.Project.Value = project
	}
	if strings.TrimSpace(flags.BuildType.Value) == "" {
		buildType, err := selectors.BuildType(c.Context(), deps.Ask, deps.Client, flags.Project.Value, "Select the build configuration")
		if err != nil {
			return err
		}
		flags.BuildType.Value = buildType.Name
	}
	return nil
}
