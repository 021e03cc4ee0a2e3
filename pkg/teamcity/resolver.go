package teamcity

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/exp/slices"
)

// Resolver turns names into build configuration ids and symbolic build numbers into concrete ones.
// Nothing is cached; every call asks the server.
type Resolver struct {
	client *Client
	logger Logger
}

func NewResolver(client *Client, logger Logger) *Resolver {
	return &Resolver{
		client: client,
		logger: loggerOrNop(logger),
	}
}

// Resolve returns ref.ID when set, otherwise looks the configuration up by project and name.
func (r *Resolver) Resolve(ctx context.Context, ref BuildConfigurationRef) (string, error) {
	if ref.ID != "" {
		return ref.ID, nil
	}
	if ref.ProjectName == "" || ref.BuildConfigurationName == "" {
		return "", errors.New("either a build configuration id or a project and build configuration name must be specified")
	}
	return r.ResolveConfigurationID(ctx, ref.ProjectName, ref.BuildConfigurationName)
}

type configurationCandidate struct {
	buildType BuildType
	depth     int
}

// ResolveConfigurationID finds the configuration named buildConfigurationName in projectName, ignoring case.
// projectName may name any level of a nested project; the shallowest level wins, and an exact match
// on the whole qualified name is used only when no single level matches.
func (r *Resolver) ResolveConfigurationID(ctx context.Context, projectName string, buildConfigurationName string) (string, error) {
	r.logger.Debug("Resolving build configuration %q in project %q", buildConfigurationName, projectName)
	buildTypes, err := r.client.ListBuildTypes(ctx)
	if err != nil {
		return "", err
	}

	var candidates []configurationCandidate
	for _, bt := range buildTypes {
		if !strings.EqualFold(bt.Name, buildConfigurationName) {
			continue
		}
		segments := strings.Split(bt.ProjectName, QualifiedNameSeparator)
		depth := slices.IndexFunc(segments, func(s string) bool {
			return strings.EqualFold(s, projectName)
		})
		if depth < 0 {
			if !strings.EqualFold(bt.ProjectName, projectName) {
				continue
			}
			depth = len(segments)
		}
		candidates = append(candidates, configurationCandidate{buildType: bt, depth: depth})
	}
	if len(candidates) == 0 {
		return "", &ConfigurationNotFoundError{ProjectName: projectName, BuildConfigurationName: buildConfigurationName}
	}

	slices.SortStableFunc(candidates, func(a, b configurationCandidate) bool {
		return a.depth < b.depth
	})
	id := candidates[0].buildType.ID
	r.logger.Debug("Build configuration %q in project %q resolved to %s", buildConfigurationName, projectName, id)
	return id, nil
}

// ResolveBuildNumber returns buildNumber unchanged unless it is a reserved token, in which case the
// server is asked for the matching build. Failures are logged and returned as *ResolutionError.
func (r *Resolver) ResolveBuildNumber(ctx context.Context, buildConfigurationID string, buildNumber string, branchName string) (string, error) {
	token := canonicalBuildNumber(buildNumber)
	if token == "" {
		return buildNumber, nil
	}

	locator := []string{"buildType:" + buildConfigurationID, "running:false"}
	switch token {
	case LastSuccessful:
		locator = append(locator, "status:success")
	case LastPinned:
		locator = append(locator, "pinned:true")
	}
	locator = append(locator, "count:1")
	if branchName != "" {
		locator = append(locator, "branch:"+branchName)
	}

	fail := func(err error) (string, error) {
		resolutionErr := &ResolutionError{
			ConfigurationID: buildConfigurationID,
			BuildNumber:     buildNumber,
			BranchName:      branchName,
			Err:             err,
		}
		r.logger.Error("%v", resolutionErr)
		return "", resolutionErr
	}

	body, err := r.client.Get(ctx, buildsLocatorURL(locator))
	if err != nil {
		return fail(err)
	}
	builds, err := decodeBuilds(body)
	if err != nil {
		return fail(err)
	}
	if len(builds) == 0 || builds[0].Number == "" {
		return fail(errors.New("no matching build was found"))
	}

	r.logger.Debug("Build number %s resolved to %s", buildNumber, builds[0].Number)
	return builds[0].Number, nil
}
