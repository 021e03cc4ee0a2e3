package teamcity

import (
	"errors"
	"fmt"
)

var (
	// ErrCancelled is reported when the caller's context ends while waiting on a build.
	ErrCancelled = errors.New("operation was cancelled")

	// ErrBuildDidNotAppear is reported when a triggered build can't be found among the running builds.
	ErrBuildDidNotAppear = errors.New("triggered build did not appear in the list of running builds")
)

// HintedError is implemented by errors that carry advice on how to fix the underlying problem.
type HintedError interface {
	error
	Hint() string
}

// ConnectionError means the request never produced an HTTP response.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("could not connect to %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func (e *ConnectionError) Hint() string {
	return "Check the server url and that the TeamCity server is reachable from this machine."
}

// HTTPError is any non-success status other than 404.
type HTTPError struct {
	URL        string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("request to %s failed with status %s", e.URL, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *HTTPError) Hint() string {
	switch e.StatusCode {
	case 401, 403:
		return "Check the user name and password, and that the account has access to the requested project."
	}
	return ""
}

// NotFoundError is returned for HTTP 404 responses.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s was not found (404)", e.URL)
}

func (e *NotFoundError) Hint() string {
	return "The branch, build number or build configuration may be invalid."
}

// ArtifactNotFoundError is returned when the artifact download endpoint responds with 404.
type ArtifactNotFoundError struct {
	ConfigurationID string
	BuildNumber     string
	ArtifactName    string
	BranchName      string
	Err             *NotFoundError
}

func (e *ArtifactNotFoundError) Error() string {
	msg := fmt.Sprintf("artifact %q was not found for build %s of configuration %s", e.ArtifactName, e.BuildNumber, e.ConfigurationID)
	if e.BranchName != "" {
		msg += fmt.Sprintf(" on branch %s", e.BranchName)
	}
	return msg
}

func (e *ArtifactNotFoundError) Unwrap() error { return e.Err }

func (e *ArtifactNotFoundError) Hint() string {
	hint := "The server responded with 404, which usually means the branch name, build number or build configuration is invalid"
	if e.Err != nil {
		hint += fmt.Sprintf(" (url: %s)", e.Err.URL)
	}
	return hint + "."
}

// ConfigurationNotFoundError is returned when no build configuration matches a project and configuration name.
type ConfigurationNotFoundError struct {
	ProjectName            string
	BuildConfigurationName string
}

func (e *ConfigurationNotFoundError) Error() string {
	return fmt.Sprintf("build configuration %q was not found in project %q", e.BuildConfigurationName, e.ProjectName)
}

func (e *ConfigurationNotFoundError) Hint() string {
	return "Project names are matched against every level of a nested project path, e.g. \"Parent :: Child\"."
}

// ResolutionError is returned when a reserved build number token could not be turned into a concrete number.
type ResolutionError struct {
	ConfigurationID string
	BuildNumber     string
	BranchName      string
	Err             error
}

func (e *ResolutionError) Error() string {
	msg := fmt.Sprintf("could not resolve build number %s for configuration %s", e.BuildNumber, e.ConfigurationID)
	if e.BranchName != "" {
		msg += fmt.Sprintf(" on branch %s", e.BranchName)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// BuildFailedError describes a build that finished with a status other than success.
type BuildFailedError struct {
	Build *BuildStatus
}

func (e *BuildFailedError) Error() string {
	if e.Build == nil {
		return "build failed"
	}
	msg := fmt.Sprintf("build #%s finished with status %s", e.Build.Number, e.Build.Status)
	if e.Build.StatusText != "" {
		msg += ": " + e.Build.StatusText
	}
	return msg
}

// IsNotFound reports whether err is, or wraps, a 404 from the server.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
