package flag_test

import (
	"testing"

	"github.com/inedo/teamcity-cli/pkg/util/flag"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAutomationCmd(t *testing.T) {
	project := flag.New[string]("project", false)
	project.Value = "Platform :: Widgets"
	buildType := flag.New[string]("build-type", false)
	buildType.Value = "CI"
	branch := flag.New[string]("branch", false)
	wait := flag.New[bool]("wait", false)
	wait.Value = true
	properties := flag.New[map[string]string]("property", false)
	properties.Value = map[string]string{"env.B": "two words", "env.A": "1"}

	got := flag.GenerateAutomationCmd("teamcity build queue", project, buildType, branch, wait, properties)

	assert.Equal(t, `teamcity build queue --no-prompt --project 'Platform :: Widgets' --build-type CI --wait --property env.A=1 --property 'env.B=two words'`, got)
}

func TestGenerateAutomationCmd_MasksSecureFlags(t *testing.T) {
	password := flag.New[string]("password", true)
	password.Value = "hunter2"

	got := flag.GenerateAutomationCmd("teamcity config set", password)

	assert.Contains(t, got, "--password")
	assert.NotContains(t, got, "hunter2")
}

func TestGenerateAutomationCmd_SortsMapEntriesByKey(t *testing.T) {
	properties := flag.New[map[string]string]("property", false)
	properties.Value = map[string]string{"z": "3", "m": "2", "a": "1", "env.TARGET": "staging"}

	got := flag.GenerateAutomationCmd("teamcity build queue", properties)

	assert.Equal(t, "teamcity build queue --no-prompt --property a=1 --property env.TARGET=staging --property m=2 --property z=3", got)
}
