package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/spf13/viper"
)

type IConfigProvider interface {
	Get(key string) string
	Set(key string, value string) error
}

// FileConfigProvider reads through the global viper and writes to the config file only.
type FileConfigProvider struct{}

func New() IConfigProvider {
	return &FileConfigProvider{}
}

func (p *FileConfigProvider) Get(key string) string {
	return viper.GetString(key)
}

func (p *FileConfigProvider) Set(key string, value string) error {
	if !IsValidKey(key) {
		return fmt.Errorf("the key '%s' is not valid", key)
	}
	localViper, err := LoadConfigFile()
	if err != nil {
		return err
	}

	key = strings.ToLower(strings.TrimSpace(key))
	switch key {
	case strings.ToLower(constants.ConfigNoPrompt), strings.ToLower(constants.ConfigVerbose), strings.ToLower(constants.ConfigEnableServiceMessages),
		strings.ToLower(constants.ConfigIgnoreSslErrors):
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("the provided value %s is not valid for %s, please use true or false", value, key)
		}
		localViper.Set(key, boolValue)
	default:
		localViper.Set(key, value)
	}
	return localViper.WriteConfig()
}

// LoadConfigFile returns a viper holding only the values in the config file, creating the file when missing.
func LoadConfigFile() (*viper.Viper, error) {
	configPath, err := EnsureConfigPath()
	if err != nil {
		return nil, err
	}

	localViper := viper.New()
	SetupConfigFile(localViper, configPath)
	if err := localViper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		if err := localViper.SafeWriteConfig(); err != nil {
			return nil, err
		}
	}
	return localViper, nil
}
