package get

import (
	"fmt"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/inedo/teamcity-cli/pkg/config"
	"github.com/inedo/teamcity-cli/pkg/factory"
	"github.com/inedo/teamcity-cli/pkg/question"
	"github.com/inedo/teamcity-cli/pkg/usage"
	"github.com/spf13/cobra"
)

func NewCmdGet(f factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Gets the value of a config key",
		Long:  "Gets the effective value of a config key, taking environment variables into account. The password is never shown.",
		Args:  usage.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) > 0 {
				key = args[0]
			}
			return getRun(f.IsPromptEnabled(), f.Ask, config.New(), key, cmd.OutOrStdout())
		},
	}
	return cmd
}

func getRun(isPromptEnabled bool, ask question.Asker, provider config.IConfigProvider, key string, out io.Writer) error {
	if key == "" {
		if !isPromptEnabled {
			return fmt.Errorf("a key must be specified; valid keys are %v", config.Keys)
		}
		k, err := promptMissing(ask)
		if err != nil {
			return err
		}
		key = k
	}
	if !config.IsValidKey(key) {
		return fmt.Errorf("the key '%s' is not valid", key)
	}

	value := provider.Get(key)
	if config.IsSecretKey(key) && value != "" {
		value = "***"
	}
	fmt.Fprintln(out, value)
	return nil
}

func promptMissing(ask question.Asker) (string, error) {
	var selectKey string
	if err := ask(&survey.Select{
		Options: config.Keys,
		Message: "What key would you like to see the value of?",
	}, &selectKey); err != nil {
		return "", err
	}
	return selectKey, nil
}
