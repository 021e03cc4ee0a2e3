package set

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/inedo/teamcity-cli/pkg/config"
	"github.com/inedo/teamcity-cli/pkg/factory"
	"github.com/inedo/teamcity-cli/pkg/question"
	"github.com/inedo/teamcity-cli/pkg/usage"
	"github.com/inedo/teamcity-cli/pkg/validation"
	"github.com/spf13/cobra"
)

func NewCmdSet(f factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Writes the value for a key to the config file",
		Long:  "Writes the value for a key to the config file. Values from environment variables still take precedence.",
		Args:  usage.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			value := ""
			if len(args) > 0 {
				key = args[0]
				if len(args) > 1 {
					value = args[1]
				}
			}
			return setRun(f.IsPromptEnabled(), f.Ask, config.New(), key, value)
		},
	}
	return cmd
}

func setRun(isPromptEnabled bool, ask question.Asker, provider config.IConfigProvider, key string, value string) error {
	if key != "" && !config.IsValidKey(key) {
		return fmt.Errorf("the key '%s' is not valid", key)
	}
	if len(strings.TrimSpace(value)) == 0 {
		if !isPromptEnabled {
			return fmt.Errorf("a key and value must be specified")
		}
		k, v, err := promptMissing(ask, key)
		if err != nil {
			return err
		}
		key = k
		value = v
	} else if validate := validation.ForConfigKey(key); validate != nil {
		if err := validate(value); err != nil {
			return err
		}
	}
	return provider.Set(key, strings.TrimSpace(value))
}

func promptMissing(ask question.Asker, key string) (string, string, error) {
	if key == "" {
		var k string
		if err := ask(&survey.Select{
			Options: config.Keys,
			Message: "What key would you like to change?",
		}, &k); err != nil {
			return "", "", err
		}
		key = k
	}

	var opts []survey.AskOpt
	if validate := validation.ForConfigKey(key); validate != nil {
		opts = append(opts, survey.WithValidator(validate))
	}

	var prompt survey.Prompt = &survey.Input{
		Message: fmt.Sprintf("Enter the new value for %s", key),
	}
	if config.IsSecretKey(key) {
		prompt = &survey.Password{
			Message: fmt.Sprintf("Enter the new value for %s", key),
		}
	}

	var value string
	if err := ask(prompt, &value, opts...); err != nil {
		return "", "", err
	}
	return key, strings.TrimSpace(value), nil
}
