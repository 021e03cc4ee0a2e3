package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

const configName = "cli_config"
const defaultConfigFileType = "json"
const appData = "AppData"

// Keys lists every supported config key in the order they are offered when prompting.
var Keys = []string{
	constants.ConfigServer,
	constants.ConfigUserName,
	constants.ConfigPassword,
	constants.ConfigDefaultBranch,
	constants.ConfigNoPrompt,
	constants.ConfigOutputFormat,
	constants.ConfigVerbose,
	constants.ConfigPollInterval,
	constants.ConfigArtifactRoot,
	constants.ConfigEnableServiceMessages,
	constants.ConfigIgnoreSslErrors,
}

func SetupConfigFile(v *viper.Viper, configPath string) {
	v.SetConfigName(configName)
	v.SetConfigType(defaultConfigFileType)
	v.AddConfigPath(configPath)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(constants.ConfigServer, "")
	v.SetDefault(constants.ConfigUserName, "")
	v.SetDefault(constants.ConfigPassword, "")
	v.SetDefault(constants.ConfigDefaultBranch, "")
	v.SetDefault(constants.ConfigNoPrompt, false)
	v.SetDefault(constants.ConfigOutputFormat, constants.OutputFormatTable)
	v.SetDefault(constants.ConfigVerbose, false)
	v.SetDefault(constants.ConfigPollInterval, "3s")
	v.SetDefault(constants.ConfigArtifactRoot, "artifacts")
	v.SetDefault(constants.ConfigEnableServiceMessages, false)
	v.SetDefault(constants.ConfigIgnoreSslErrors, false)
}

func Setup() error {
	// the global viper is used everywhere except when writing the config file
	setDefaults(viper.GetViper())

	bindings := map[string][]string{
		constants.ConfigServer:          {constants.EnvTeamCityServer},
		constants.ConfigUserName:        {constants.EnvTeamCityUserName},
		constants.ConfigPassword:        {constants.EnvTeamCityPassword},
		constants.ConfigDefaultBranch:   {constants.EnvTeamCityDefaultBranch},
		constants.ConfigPollInterval:    {constants.EnvTeamCityPollInterval},
		constants.ConfigArtifactRoot:    {constants.EnvTeamCityArtifactRoot},
		constants.ConfigNoPrompt:        {constants.EnvCI},
		constants.ConfigIgnoreSslErrors: {constants.EnvTeamCityIgnoreSsl},
	}
	for key, envVars := range bindings {
		if err := viper.BindEnv(append([]string{key}, envVars...)...); err != nil {
			return err
		}
	}

	configPath, err := getConfigPath()
	if err == nil {
		SetupConfigFile(viper.GetViper(), configPath)

		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				// a broken config file shouldn't stop the CLI; run on defaults
				fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
			}
		}
	}
	// without a config path everything is defaulted
	return nil
}

// EnsureConfigPath works out the config path, then creates the directory to make sure that it exists
func EnsureConfigPath() (string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(configPath, os.ModePerm); err != nil {
		return "", err
	}
	return configPath, nil
}

func getConfigPath() (string, error) {
	if runtime.GOOS == "windows" {
		if appdataPath := os.Getenv(appData); appdataPath != "" {
			return filepath.Join(appdataPath, constants.ExecutableName), nil
		}
		return "", fmt.Errorf("error could not find path to appdata")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error could not find user home directory: %w", err)
	}
	return filepath.Join(home, ".config", constants.ExecutableName), nil
}

func IsValidKey(key string) bool {
	key = strings.TrimSpace(key)
	return slices.IndexFunc(Keys, func(k string) bool { return strings.EqualFold(k, key) }) >= 0
}

// IsSecretKey reports whether the value of key must not be printed.
func IsSecretKey(key string) bool {
	return strings.EqualFold(strings.TrimSpace(key), constants.ConfigPassword)
}

// PollInterval parses the configured poll interval, falling back to def when unset or invalid.
func PollInterval(def time.Duration) time.Duration {
	raw := strings.TrimSpace(viper.GetString(constants.ConfigPollInterval))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
