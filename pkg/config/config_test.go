package config_test

import (
	"testing"
	"time"

	"github.com/inedo/teamcity-cli/pkg/config"
	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidKey(t *testing.T) {
	assert.True(t, config.IsValidKey("server"))
	assert.True(t, config.IsValidKey(" DefaultBranch "))
	assert.False(t, config.IsValidKey("ApiKey"))
	assert.True(t, config.IsSecretKey("password"))
	assert.False(t, config.IsSecretKey("UserName"))
}

func TestPollInterval(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 3 * time.Second},
		{"500ms", 500 * time.Millisecond},
		{"soon", 3 * time.Second},
		{"-1s", 3 * time.Second},
	}
	for _, test := range tests {
		t.Run(test.value, func(t *testing.T) {
			viper.Reset()
			viper.Set(constants.ConfigPollInterval, test.value)
			assert.Equal(t, test.want, config.PollInterval(3*time.Second))
		})
	}
}

func TestSetup_BindsEnvironment(t *testing.T) {
	viper.Reset()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AppData", t.TempDir())
	t.Setenv(constants.EnvTeamCityServer, "https://ci.example.com")
	t.Setenv(constants.EnvTeamCityUserName, "builder")
	t.Setenv(constants.EnvCI, "true")

	require.NoError(t, config.Setup())

	assert.Equal(t, "https://ci.example.com", viper.GetString(constants.ConfigServer))
	assert.Equal(t, "builder", viper.GetString(constants.ConfigUserName))
	assert.True(t, viper.GetBool(constants.ConfigNoPrompt))
	assert.Equal(t, constants.OutputFormatTable, viper.GetString(constants.ConfigOutputFormat))
}

func TestFileConfigProvider_Set(t *testing.T) {
	viper.Reset()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AppData", t.TempDir())
	provider := config.New()

	require.NoError(t, provider.Set("DefaultBranch", "main"))
	require.NoError(t, provider.Set("NoPrompt", "true"))
	assert.EqualError(t, provider.Set("NoPrompt", "maybe"), "the provided value maybe is not valid for noprompt, please use true or false")
	assert.EqualError(t, provider.Set("ApiKey", "x"), "the key 'ApiKey' is not valid")

	fileConfig, err := config.LoadConfigFile()
	require.NoError(t, err)
	assert.Equal(t, "main", fileConfig.GetString("defaultbranch"))
	assert.True(t, fileConfig.GetBool("noprompt"))
}
