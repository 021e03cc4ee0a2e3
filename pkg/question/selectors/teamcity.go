package selectors

import (
	"context"
	"fmt"
	"strings"

	"github.com/inedo/teamcity-cli/pkg/output"
	"github.com/inedo/teamcity-cli/pkg/question"
	"github.com/inedo/teamcity-cli/pkg/teamcity"
)

// Project asks for a project and returns its qualified name, the form build configurations refer to it by.
func Project(ctx context.Context, ask question.Asker, client *teamcity.Client, message string) (string, error) {
	projects, err := client.ListProjects(ctx)
	if err != nil {
		return "", err
	}
	// the root project cannot hold build configurations
	projects = filter(projects, func(p teamcity.Project) bool { return p.ParentProjectID != "" })
	if len(projects) == 0 {
		return "", fmt.Errorf("no projects found on %s", client.Connection().ServerURL())
	}
	selected, err := question.SelectOrSingle(ask, message, projects, func(p teamcity.Project) string {
		return p.QualifiedName
	})
	if err != nil {
		return "", err
	}
	return selected.QualifiedName, nil
}

// BuildType asks for one of the build configurations of projectName and returns the chosen configuration.
func BuildType(ctx context.Context, ask question.Asker, client *teamcity.Client, projectName string, message string) (teamcity.BuildType, error) {
	buildTypes, err := client.ListBuildTypes(ctx)
	if err != nil {
		return teamcity.BuildType{}, err
	}
	buildTypes = filter(buildTypes, func(bt teamcity.BuildType) bool {
		return strings.EqualFold(bt.ProjectName, projectName)
	})
	if len(buildTypes) == 0 {
		return teamcity.BuildType{}, fmt.Errorf("project '%s' has no build configurations", projectName)
	}
	return question.SelectOrSingle(ask, message, buildTypes, func(bt teamcity.BuildType) string {
		return fmt.Sprintf("%s %s", bt.Name, output.Dimf("(%s)", bt.ID))
	})
}

// BuildNumber asks for a build number of the configuration, offering the reserved numbers first.
func BuildNumber(ctx context.Context, ask question.Asker, client *teamcity.Client, projectName string, buildConfigurationName string, message string) (string, error) {
	numbers, err := client.ListBuildNumbers(ctx, projectName, buildConfigurationName)
	if err != nil {
		return "", err
	}
	return question.Select(ask, message, numbers, func(n string) string { return n })
}

func filter[T any](items []T, keep func(T) bool) []T {
	var result []T
	for _, item := range items {
		if keep(item) {
			result = append(result, item)
		}
	}
	return result
}
