package shared

import (
	"testing"

	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/inedo/teamcity-cli/pkg/teamcity"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestBuildConfigurationFlags_Ref(t *testing.T) {
	flags := NewBuildConfigurationFlags()
	flags.Project.Value = " Widgets "
	flags.BuildType.Value = "CI "

	assert.Equal(t, teamcity.BuildConfigurationRef{ProjectName: "Widgets", BuildConfigurationName: "CI"}, flags.Ref())
}

func TestBuildConfigurationFlags_ApplyDefaultBranch(t *testing.T) {
	viper.Set(constants.ConfigDefaultBranch, "develop")
	t.Cleanup(func() { viper.Set(constants.ConfigDefaultBranch, "") })

	flags := NewBuildConfigurationFlags()
	flags.ApplyDefaultBranch()
	assert.Equal(t, "develop", flags.Branch.Value)

	flags.Branch.Value = "main"
	flags.ApplyDefaultBranch()
	assert.Equal(t, "main", flags.Branch.Value)
}
