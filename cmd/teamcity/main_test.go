package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/inedo/teamcity-cli/pkg/output"
	"github.com/inedo/teamcity-cli/pkg/teamcity"
	"github.com/inedo/teamcity-cli/pkg/usage"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func newErrorCommand() (*cobra.Command, *bytes.Buffer) {
	output.SetColorEnabled(false)
	stdErr := &bytes.Buffer{}
	cmd := &cobra.Command{Use: "teamcity"}
	cmd.SetErr(stdErr)
	return cmd, stdErr
}

func TestPrintError(t *testing.T) {
	t.Run("prints the hint of a hinted error", func(t *testing.T) {
		cmd, stdErr := newErrorCommand()
		err := &teamcity.ConfigurationNotFoundError{ProjectName: "Widgets", BuildConfigurationName: "Release"}

		printError(cmd, fmt.Errorf("queue failed: %w", err))

		assert.Contains(t, stdErr.String(), "queue failed: "+err.Error()+"\n")
		assert.Contains(t, stdErr.String(), "Hint: "+err.Hint()+"\n")
	})

	t.Run("does not repeat the hint of a missing artifact", func(t *testing.T) {
		cmd, stdErr := newErrorCommand()
		err := &teamcity.ArtifactNotFoundError{
			ConfigurationID: "bt7",
			BuildNumber:     "42",
			ArtifactName:    "out.zip",
			Err:             &teamcity.NotFoundError{URL: "https://teamcity.example.com/httpAuth/repository/download/bt7/42/out.zip"},
		}

		printError(cmd, err)

		assert.Equal(t, err.Error()+"\n", stdErr.String())
		assert.NotContains(t, stdErr.String(), "Hint:")
	})

	t.Run("prints usage for a usage error", func(t *testing.T) {
		cmd, stdErr := newErrorCommand()

		printError(cmd, usage.NewUsageError("--artifact must be specified", cmd))

		lines := strings.SplitN(stdErr.String(), "\n", 2)
		assert.Equal(t, "--artifact must be specified", lines[0])
		assert.Contains(t, stdErr.String(), "Usage:")
	})
}
