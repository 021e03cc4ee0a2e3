package root_test

import (
	"testing"

	"github.com/inedo/teamcity-cli/test/fixtures"
	"github.com/inedo/teamcity-cli/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootHelp_GroupsCommands(t *testing.T) {
	server := testutil.NewFakeTeamCityServer(t)
	rootCmd, stdOut, _ := fixtures.NewCobraRootCommand(testutil.NewMockFactory(server))
	rootCmd.SetArgs([]string{"--help"})

	_, err := rootCmd.ExecuteC()
	require.NoError(t, err)

	help := stdOut.String()
	assert.Contains(t, help, "CORE COMMANDS\n")
	assert.Contains(t, help, " build:       Queue and inspect builds\n")
	assert.Contains(t, help, " artifact:    Import build artifacts\n")
	assert.Contains(t, help, "CONFIGURATION COMMANDS\n config:      Manage CLI config file\n")
	assert.Contains(t, help, "TEAMCITY_SERVER, TEAMCITY_USERNAME and TEAMCITY_PASSWORD override")
	assert.NotContains(t, help, "version:")
	assert.Empty(t, server.Requests())
}

func TestSubcommandHelp_ShowsExamples(t *testing.T) {
	server := testutil.NewFakeTeamCityServer(t)
	rootCmd, stdOut, _ := fixtures.NewCobraRootCommand(testutil.NewMockFactory(server))
	rootCmd.SetArgs([]string{"build", "queue", "--help"})

	_, err := rootCmd.ExecuteC()
	require.NoError(t, err)

	assert.Contains(t, stdOut.String(), "EXAMPLE\n")
	assert.Contains(t, stdOut.String(), "--additional-parameters")
	assert.NotContains(t, stdOut.String(), "--branch-name")
}
