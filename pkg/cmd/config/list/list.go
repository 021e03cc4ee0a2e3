package list

import (
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/inedo/teamcity-cli/pkg/config"
	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/inedo/teamcity-cli/pkg/factory"
	"github.com/inedo/teamcity-cli/pkg/output"
	"github.com/spf13/cobra"
)

type ConfigEntry struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

func NewCmdList(_ factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List values from config file",
		Long:  "List the effective value of every config key. The password is masked.",
		Example: heredoc.Docf(`
			$ %[1]s config list
			$ %[1]s config ls -f json
		`, constants.ExecutableName),
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRun(cmd, config.New())
		},
	}

	return cmd
}

func listRun(cmd *cobra.Command, provider config.IConfigProvider) error {
	entries := make([]ConfigEntry, 0, len(config.Keys))
	for _, key := range config.Keys {
		value := provider.Get(key)
		if config.IsSecretKey(key) && value != "" {
			value = "***"
		}
		entries = append(entries, ConfigEntry{Key: key, Value: value})
	}

	return output.PrintArray(entries, cmd, output.Mappers[ConfigEntry]{
		Json: func(e ConfigEntry) any {
			return e
		},
		Table: output.TableDefinition[ConfigEntry]{
			Header: []string{"KEY", "VALUE"},
			Row: func(e ConfigEntry) []string {
				return []string{e.Key, e.Value}
			},
		},
		Basic: func(e ConfigEntry) string {
			return strings.Join([]string{e.Key, e.Value}, "=")
		},
	})
}
