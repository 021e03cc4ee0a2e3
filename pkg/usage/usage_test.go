package usage_test

import (
	"testing"

	"github.com/inedo/teamcity-cli/pkg/usage"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func newCmd(t *testing.T, args ...string) *cobra.Command {
	cmd := &cobra.Command{Use: "queue"}
	cmd.Flags().String("id", "", "")
	cmd.Flags().String("project", "", "")
	cmd.Flags().String("build-type", "", "")
	assert.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestExactArgs(t *testing.T) {
	cmd := &cobra.Command{Use: "view"}
	err := usage.ExactArgs(1)(cmd, []string{})
	var usageErr *usage.UsageError
	assert.ErrorAs(t, err, &usageErr)
	assert.Equal(t, "accepts 1 arg(s), received 0", err.Error())
	assert.Same(t, cmd, usageErr.Command())

	assert.NoError(t, usage.ExactArgs(1)(cmd, []string{"42"}))
}

func TestMaximumNArgs(t *testing.T) {
	cmd := &cobra.Command{Use: "get"}
	assert.NoError(t, usage.MaximumNArgs(1)(cmd, []string{}))
	assert.EqualError(t, usage.MaximumNArgs(1)(cmd, []string{"a", "b"}), "accepts at most 1 arg(s), received 2")
}

func TestMutuallyExclusive(t *testing.T) {
	assert.NoError(t, usage.MutuallyExclusive(newCmd(t, "--id", "bt7"), "id", "project"))

	err := usage.MutuallyExclusive(newCmd(t, "--id", "bt7", "--project", "Widgets"), "id", "project")
	assert.EqualError(t, err, "--id and --project cannot be used together")

	err = usage.MutuallyExclusive(newCmd(t, "--id", "bt7", "--project", "Widgets", "--build-type", "CI"), "id", "project", "build-type")
	assert.EqualError(t, err, "--id, --project and --build-type cannot be used together")
}
