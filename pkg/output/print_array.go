package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type TableDefinition[T any] struct {
	Header []string
	Row    func(item T) []string
}

// Mappers convert items for each output format. A nil mapper means the format isn't supported.
type Mappers[T any] struct {
	Json  func(item T) any
	Table TableDefinition[T]
	Basic func(item T) string
}

// PrintArray writes items in the format chosen by the --output-format flag, falling back to config.
func PrintArray[T any](items []T, cmd *cobra.Command, mappers Mappers[T]) error {
	outputFormat, _ := cmd.Flags().GetString(constants.FlagOutputFormat)
	if outputFormat == "" {
		outputFormat = viper.GetString(constants.ConfigOutputFormat)
	}
	out := cmd.OutOrStdout()

	switch strings.ToLower(outputFormat) {
	case constants.OutputFormatJson:
		if mappers.Json == nil {
			return fmt.Errorf("command does not support output in JSON format")
		}
		results := make([]any, 0, len(items))
		for _, item := range items {
			results = append(results, mappers.Json(item))
		}
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err

	case constants.OutputFormatBasic, "text":
		if mappers.Basic == nil {
			return fmt.Errorf("command does not support output in plain text")
		}
		for _, item := range items {
			if _, err := fmt.Fprintln(out, mappers.Basic(item)); err != nil {
				return err
			}
		}
		return nil

	case constants.OutputFormatTable, "":
		if mappers.Table.Row == nil {
			return fmt.Errorf("command does not support output in table format")
		}
		t := NewTable(out)
		if mappers.Table.Header != nil {
			header := make([]string, 0, len(mappers.Table.Header))
			for _, h := range mappers.Table.Header {
				header = append(header, Bold(h))
			}
			t.AddRow(header...)
		}
		for _, item := range items {
			t.AddRow(mappers.Table.Row(item)...)
		}
		return t.Print()
	}
	return fmt.Errorf("unsupported output format %s. Valid values are 'json', 'table', 'basic'. Defaults to table", outputFormat)
}
