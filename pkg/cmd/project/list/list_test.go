package list_test

import (
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/inedo/teamcity-cli/test/fixtures"
	"github.com/inedo/teamcity-cli/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectsXML = `<projects count="4">
  <project id="_Root" name="Root"/>
  <project id="Widgets" name="Widgets" parentProjectId="_Root"/>
  <project id="Platform" name="Platform" parentProjectId="_Root"/>
  <project id="Platform_Widgets" name="Widgets" parentProjectId="Platform"/>
</projects>`

func TestProjectList(t *testing.T) {
	tests := []struct {
		name string
		args []string
		run  func(t *testing.T, stdout string)
	}{
		{"table", []string{}, func(t *testing.T, stdout string) {
			assert.Equal(t, heredoc.Doc(`
				NAME                 ID
				Root                 _Root
				Widgets              Widgets
				Platform             Platform
				Platform :: Widgets  Platform_Widgets
			`), stdout)
		}},
		{"basic", []string{"-f", "basic"}, func(t *testing.T, stdout string) {
			assert.Equal(t, "Root\nWidgets\nPlatform\nPlatform :: Widgets\n", stdout)
		}},
		{"json", []string{"-f", "json"}, func(t *testing.T, stdout string) {
			assert.JSONEq(t, `[
				{"Id": "_Root", "Name": "Root", "QualifiedName": "Root"},
				{"Id": "Widgets", "Name": "Widgets", "QualifiedName": "Widgets", "ParentProjectId": "_Root"},
				{"Id": "Platform", "Name": "Platform", "QualifiedName": "Platform", "ParentProjectId": "_Root"},
				{"Id": "Platform_Widgets", "Name": "Widgets", "QualifiedName": "Platform :: Widgets", "ParentProjectId": "Platform"}
			]`, stdout)
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := testutil.NewFakeTeamCityServer(t)
			server.RespondWith("GET", "/httpAuth/app/rest/projects", projectsXML)

			rootCmd, stdOut, _ := fixtures.NewCobraRootCommand(testutil.NewMockFactory(server))
			rootCmd.SetArgs(append([]string{"project", "list"}, test.args...))

			_, err := rootCmd.ExecuteC()
			require.NoError(t, err)
			test.run(t, stdOut.String())
		})
	}
}

func TestProjectList_ServerError(t *testing.T) {
	server := testutil.NewFakeTeamCityServer(t)
	server.RespondWithStatus("GET", "/httpAuth/app/rest/projects", 401, "Incorrect username or password.")

	rootCmd, _, _ := fixtures.NewCobraRootCommand(testutil.NewMockFactory(server))
	rootCmd.SetArgs([]string{"project", "list"})

	_, err := rootCmd.ExecuteC()
	assert.ErrorContains(t, err, "failed with status 401 Unauthorized: Incorrect username or password.")
}
