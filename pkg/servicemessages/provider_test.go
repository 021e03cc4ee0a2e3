package servicemessages

import (
	"bytes"
	"testing"

	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestServiceMessage(t *testing.T) {
	tests := []struct {
		name        string
		enabled     bool
		teamCityEnv bool
		messageName string
		value       any
		want        string
		wantErr     string
	}{
		{"disabled writes nothing", false, true, "testMessage", "value1", "", ""},
		{"enabled outside TeamCity is an error", true, false, "testMessage", "value1", "", "service messages are only supported in TeamCity builds\n"},
		{"string value", true, true, "buildNumber", "1.0 [beta]", "##teamcity[buildNumber '1.0 |[beta|]']\n", ""},
		{"map values are written in key order", true, true, "setParameter", map[string]string{"value": "it's", "name": "x"}, "##teamcity[setParameter name='x' value='it|'s']\n", ""},
		{"unsupported value", true, true, "testMessage", []string{"a"}, "", "unsupported service message value type\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupConfig(tt.enabled)
			setupEnvVar(t, tt.teamCityEnv)
			stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

			NewProvider(NewPrinter(stdout, stderr)).ServiceMessage(tt.messageName, tt.value)

			assert.Equal(t, tt.want, stdout.String())
			assert.Equal(t, tt.wantErr, stderr.String())
		})
	}
}

func TestSetParameter(t *testing.T) {
	setupConfig(true)
	setupEnvVar(t, true)
	stdout := &bytes.Buffer{}

	NewProvider(NewPrinter(stdout, &bytes.Buffer{})).SetParameter(constants.BuildNumberVariable, "42")

	assert.Equal(t, "##teamcity[setParameter name='TeamCityBuildNumber' value='42']\n", stdout.String())
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "a||b|n|r|'|[|]", Escape("a|b\n\r'[]"))
}

func setupConfig(enabled bool) {
	viper.Reset()
	viper.Set(constants.ConfigEnableServiceMessages, enabled)
}

func setupEnvVar(t *testing.T, set bool) {
	if set {
		t.Setenv(constants.EnvTeamCityVersion, "2023.11")
	} else {
		t.Setenv(constants.EnvTeamCityVersion, "")
	}
}
