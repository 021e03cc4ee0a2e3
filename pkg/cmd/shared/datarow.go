package shared

import (
	"io"

	"github.com/inedo/teamcity-cli/pkg/output"
)

type DataRow struct {
	Name  string
	Value string
}

func NewDataRow(name string, value string) *DataRow {
	return &DataRow{
		Name:  name,
		Value: value,
	}
}

// PrintDataRows writes name/value pairs as a two column table, skipping rows without a value.
func PrintDataRows(out io.Writer, rows []*DataRow) error {
	t := output.NewTable(out)
	for _, row := range rows {
		if row == nil || row.Value == "" {
			continue
		}
		t.AddRow(output.Bold(row.Name), row.Value)
	}
	return t.Print()
}
