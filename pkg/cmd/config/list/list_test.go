package list

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider map[string]string

func (p fakeProvider) Get(key string) string { return p[key] }

func (p fakeProvider) Set(key string, value string) error {
	p[key] = value
	return nil
}

func newCmd(outputFormat string) (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{Use: "list"}
	cmd.Flags().String(constants.FlagOutputFormat, outputFormat, "")
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	return cmd, out
}

func TestList_Json_MasksPassword(t *testing.T) {
	cmd, out := newCmd(constants.OutputFormatJson)
	err := listRun(cmd, fakeProvider{"Server": "https://teamcity.example.com", "Password": "s3cret"})
	require.NoError(t, err)

	var entries []ConfigEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entries))
	values := map[string]string{}
	for _, e := range entries {
		values[e.Key] = e.Value
	}
	assert.Equal(t, "https://teamcity.example.com", values["Server"])
	assert.Equal(t, "***", values["Password"])
	assert.Equal(t, "", values["UserName"])
	assert.Len(t, entries, 11)
}

func TestList_Basic(t *testing.T) {
	cmd, out := newCmd(constants.OutputFormatBasic)
	err := listRun(cmd, fakeProvider{"DefaultBranch": "main"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "DefaultBranch=main\n")
	assert.Contains(t, out.String(), "Password=\n")
}
