package apiclient

import (
	"fmt"
	"strings"

	version "github.com/inedo/teamcity-cli"
	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/spf13/cobra"
)

// Requester describes who is calling the server; it becomes the User-Agent header.
type Requester interface {
	GetRequester() string
}

type RequesterContext struct {
	cmd *cobra.Command
}

type FakeRequesterContext struct {
}

func NewRequester(c *cobra.Command) *RequesterContext {
	return &RequesterContext{
		cmd: c,
	}
}

func (r *FakeRequesterContext) GetRequester() string { return constants.ExecutableName + "/0.0.0" }

// GetRequester returns "teamcity/<version> (<command path>)", e.g. "teamcity/1.2.0 (build;queue)".
func (r *RequesterContext) GetRequester() string {
	root := constants.ExecutableName
	if versionStr := strings.TrimSpace(version.Version); versionStr != "" {
		root = fmt.Sprintf("%s/%s", constants.ExecutableName, versionStr)
	}
	if r.cmd == nil {
		return root
	}

	var commands []string
	for c := r.cmd; c != nil && c.HasParent(); c = c.Parent() {
		commands = append([]string{c.Name()}, commands...)
	}
	if len(commands) == 0 {
		return root
	}
	return fmt.Sprintf("%s (%s)", root, strings.Join(commands, ";"))
}
