package cmd

import (
	"io"

	"github.com/inedo/teamcity-cli/pkg/apiclient"
	"github.com/inedo/teamcity-cli/pkg/constants"
	"github.com/inedo/teamcity-cli/pkg/factory"
	"github.com/inedo/teamcity-cli/pkg/logging"
	"github.com/inedo/teamcity-cli/pkg/question"
	"github.com/inedo/teamcity-cli/pkg/teamcity"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Dependencies carries what a command needs once its flags have been parsed.
type Dependencies struct {
	Out      io.Writer
	Err      io.Writer
	Client   *teamcity.Client
	Host     string
	NoPrompt bool
	Ask      question.Asker
	CmdPath  string
	Log      teamcity.Logger
	Spinner  factory.Spinner
}

func NewDependencies(f factory.Factory, cmd *cobra.Command) (*Dependencies, error) {
	log := NewLogger(cmd)
	client, err := f.GetClient(apiclient.NewRequester(cmd), log)
	if err != nil {
		return nil, err
	}

	return &Dependencies{
		Out:      cmd.OutOrStdout(),
		Err:      cmd.ErrOrStderr(),
		Client:   client,
		Host:     f.GetCurrentHost(),
		NoPrompt: !f.IsPromptEnabled(),
		Ask:      f.Ask,
		CmdPath:  cmd.CommandPath(),
		Log:      log,
		Spinner:  f.Spinner(),
	}, nil
}

// NewLogger writes to the command's streams, with debug output when --verbose is set.
func NewLogger(cmd *cobra.Command) *logging.ConsoleLogger {
	verbose := viper.GetBool(constants.ConfigVerbose)
	if v, err := cmd.Flags().GetBool(constants.FlagVerbose); err == nil && v {
		verbose = true
	}
	return logging.NewConsoleLogger(cmd.OutOrStdout(), cmd.ErrOrStderr(), verbose)
}
