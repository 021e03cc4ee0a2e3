package teamcity

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// QueueRequest is the body of a build-queue POST.
type QueueRequest struct {
	BuildTypeID string
	BranchName  string
	Properties  map[string]string
}

// ListProjects returns every project visible to the account, with nested names joined by " :: ".
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	body, err := c.Get(ctx, "app/rest/projects")
	if err != nil {
		return nil, err
	}
	var doc xmlProjects
	if err := decodeXML(body, &doc); err != nil {
		return nil, err
	}

	byID := make(map[string]xmlProject, len(doc.Projects))
	for _, p := range doc.Projects {
		byID[p.ID] = p
	}

	projects := make([]Project, 0, len(doc.Projects))
	for _, p := range doc.Projects {
		projects = append(projects, Project{
			ID:              p.ID,
			Name:            p.Name,
			ParentProjectID: p.ParentProjectID,
			QualifiedName:   qualifiedProjectName(p, byID),
		})
	}
	return projects, nil
}

// qualifiedProjectName walks up the parents of p. The root project, which has no parent, is left out.
func qualifiedProjectName(p xmlProject, byID map[string]xmlProject) string {
	names := []string{p.Name}
	current := p
	for depth := 0; depth < len(byID); depth++ {
		if current.ParentProjectID == "" {
			break
		}
		parent, ok := byID[current.ParentProjectID]
		if !ok || parent.ParentProjectID == "" {
			break
		}
		names = append([]string{parent.Name}, names...)
		current = parent
	}
	return strings.Join(names, QualifiedNameSeparator)
}

func (c *Client) ListBuildTypes(ctx context.Context) ([]BuildType, error) {
	body, err := c.Get(ctx, "app/rest/buildTypes")
	if err != nil {
		return nil, err
	}
	var doc xmlBuildTypes
	if err := decodeXML(body, &doc); err != nil {
		return nil, err
	}

	buildTypes := make([]BuildType, 0, len(doc.BuildTypes))
	for _, bt := range doc.BuildTypes {
		buildTypes = append(buildTypes, BuildType{
			ID:          bt.ID,
			Name:        bt.Name,
			ProjectID:   bt.ProjectID,
			ProjectName: bt.ProjectName,
		})
	}
	return buildTypes, nil
}

// ListBuildTypeNames returns the names of the build configurations in projectName.
func (c *Client) ListBuildTypeNames(ctx context.Context, projectName string) ([]string, error) {
	buildTypes, err := c.ListBuildTypes(ctx)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, bt := range buildTypes {
		if strings.EqualFold(bt.ProjectName, projectName) {
			names = append(names, bt.Name)
		}
	}
	return names, nil
}

// ListBuildNumbers returns the reserved build numbers followed by the numbers of the
// configuration's builds. An unknown configuration yields just the reserved numbers.
func (c *Client) ListBuildNumbers(ctx context.Context, projectName string, buildConfigurationName string) ([]string, error) {
	numbers := slices.Clone(ReservedBuildNumbers)

	buildTypes, err := c.ListBuildTypes(ctx)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(buildTypes, func(bt BuildType) bool {
		return strings.EqualFold(bt.ProjectName, projectName) && strings.EqualFold(bt.Name, buildConfigurationName)
	})
	if i < 0 {
		return numbers, nil
	}

	body, err := c.Get(ctx, fmt.Sprintf("app/rest/buildTypes/id:%s/builds", url.PathEscape(buildTypes[i].ID)))
	if err != nil {
		return nil, err
	}
	builds, err := decodeBuilds(body)
	if err != nil {
		return nil, err
	}
	for _, b := range builds {
		numbers = append(numbers, b.Number)
	}
	return numbers, nil
}

// GetBuildStatus fetches a build by its handle, a path relative to the api base such as app/rest/builds/id:12.
func (c *Client) GetBuildStatus(ctx context.Context, handle string) (*BuildStatus, error) {
	body, err := c.Get(ctx, handle)
	if err != nil {
		return nil, err
	}
	builds, err := decodeBuilds(body)
	if err != nil {
		return nil, err
	}
	if len(builds) == 0 {
		return nil, fmt.Errorf("no build was returned from %s", c.URL(handle))
	}
	return builds[0].toStatus(), nil
}

// FindRunningBuild returns the newest running build of the configuration, or nil when there is none.
func (c *Client) FindRunningBuild(ctx context.Context, buildTypeID string, branchName string) (*BuildStatus, error) {
	locator := []string{"buildType:" + buildTypeID, "count:1", "running:true"}
	if branchName != "" {
		locator = append(locator, "branch:"+branchName)
	}
	body, err := c.Get(ctx, buildsLocatorURL(locator))
	if err != nil {
		return nil, err
	}
	builds, err := decodeBuilds(body)
	if err != nil {
		return nil, err
	}
	if len(builds) == 0 {
		return nil, nil
	}
	return builds[0].toStatus(), nil
}

// QueueBuild adds a build to the queue through the REST build queue and returns the queued build.
func (c *Client) QueueBuild(ctx context.Context, req QueueRequest) (*BuildStatus, error) {
	if req.BuildTypeID == "" {
		return nil, errors.New("build configuration id must be specified")
	}
	doc := xmlQueueRequest{
		BranchName: req.BranchName,
		BuildType:  xmlBuildTypeID{ID: req.BuildTypeID},
	}
	if len(req.Properties) > 0 {
		names := maps.Keys(req.Properties)
		slices.Sort(names)
		doc.Properties = &xmlPropertyList{}
		for _, name := range names {
			doc.Properties.Properties = append(doc.Properties.Properties, xmlProperty{Name: name, Value: req.Properties[name]})
		}
	}
	payload, err := xml.Marshal(doc)
	if err != nil {
		return nil, err
	}

	body, err := c.PostXML(ctx, "app/rest/buildQueue", string(payload))
	if err != nil {
		return nil, err
	}
	builds, err := decodeBuilds(body)
	if err != nil {
		return nil, err
	}
	if len(builds) == 0 {
		return nil, errors.New("the build queue did not return the queued build")
	}
	return builds[0].toStatus(), nil
}

// TriggerLegacy adds a build to the queue through action.html. additionalParameters is appended to the query string as is.
func (c *Client) TriggerLegacy(ctx context.Context, buildTypeID string, branchName string, additionalParameters string) error {
	rel := "action.html?add2Queue=" + url.QueryEscape(buildTypeID)
	if branchName != "" {
		rel += "&branchName=" + url.QueryEscape(branchName)
	}
	if additionalParameters != "" {
		if !strings.HasPrefix(additionalParameters, "&") {
			rel += "&"
		}
		rel += additionalParameters
	}
	_, err := c.Get(ctx, rel)
	return err
}

func buildsLocatorURL(locator []string) string {
	return "app/rest/builds?locator=" + url.QueryEscape(strings.Join(locator, ","))
}

// buildHandle turns the href of a build into a path relative to the api base.
func buildHandle(build *BuildStatus) string {
	if build.Href != "" {
		href := strings.TrimLeft(build.Href, "/")
		if i := strings.Index(href, "app/rest/"); i >= 0 {
			return href[i:]
		}
		if i := strings.Index(href, "/"); i >= 0 {
			return href[i+1:]
		}
		return href
	}
	if build.ID != "" {
		return "app/rest/builds/id:" + build.ID
	}
	return ""
}
