package teamcity

import "strings"

const (
	LastSuccessful = "lastSuccessful"
	LastPinned     = "lastPinned"
	LastFinished   = "lastFinished"

	// QualifiedNameSeparator joins the levels of a nested project name.
	QualifiedNameSeparator = " :: "
)

// ReservedBuildNumbers are the symbolic build numbers the server resolves at request time.
var ReservedBuildNumbers = []string{LastSuccessful, LastPinned, LastFinished}

// IsReservedBuildNumber reports whether s is one of the symbolic build numbers, ignoring case.
func IsReservedBuildNumber(s string) bool {
	return canonicalBuildNumber(s) != ""
}

func canonicalBuildNumber(s string) string {
	for _, token := range ReservedBuildNumbers {
		if strings.EqualFold(token, s) {
			return token
		}
	}
	return ""
}

// BuildConfigurationRef names a build configuration either by id or by project and configuration name.
type BuildConfigurationRef struct {
	ID                     string
	ProjectName            string
	BuildConfigurationName string
}

func (r BuildConfigurationRef) String() string {
	if r.ID != "" {
		return r.ID
	}
	return r.ProjectName + QualifiedNameSeparator + r.BuildConfigurationName
}

type Project struct {
	ID              string
	Name            string
	ParentProjectID string
	QualifiedName   string
}

type BuildType struct {
	ID          string
	Name        string
	ProjectID   string
	ProjectName string
}

type BuildState string

const (
	StatusQueued  BuildState = "queued"
	StatusRunning BuildState = "running"
	StatusSuccess BuildState = "success"
	StatusFailure BuildState = "failure"
	StatusError   BuildState = "error"
)

// BuildStatus is a snapshot of a build taken from a single status response.
type BuildStatus struct {
	ID              string
	Number          string
	Status          BuildState
	IsRunning       bool
	PercentComplete int
	BuildTypeID     string
	ProjectName     string
	StatusText      string
	BranchName      string
	Href            string
	WebURL          string
}

func (b *BuildStatus) Succeeded() bool {
	return !b.IsRunning && b.Status == StatusSuccess
}

// ApplicationContext identifies where an imported artifact belongs in the artifact store.
type ApplicationContext struct {
	ApplicationID string
	ReleaseNumber string
	BuildNumber   string
	ExecutionID   string
}

// ArtifactRequest describes a single artifact download.
type ArtifactRequest struct {
	BuildConfigurationID   string
	ProjectName            string
	BuildConfigurationName string
	BuildNumber            string
	ArtifactName           string
	BranchName             string
	ExtractToTarget        bool
	TargetDirectory        string
}
