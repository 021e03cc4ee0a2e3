package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/AlecAivazis/survey/v2"
	"github.com/inedo/teamcity-cli/pkg/apiclient"
	"github.com/inedo/teamcity-cli/pkg/cmd/root"
	"github.com/inedo/teamcity-cli/pkg/config"
	"github.com/inedo/teamcity-cli/pkg/factory"
	"github.com/inedo/teamcity-cli/pkg/output"
	"github.com/inedo/teamcity-cli/pkg/question"
	"github.com/inedo/teamcity-cli/pkg/teamcity"
	"github.com/inedo/teamcity-cli/pkg/usage"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	// if there is a missing or invalid .env file anywhere, we don't care, just ignore it
	_ = godotenv.Load()

	if err := config.Setup(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(3)
	}

	askProvider := question.NewAskProvider(survey.AskOne)
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		askProvider.DisableInteractive()
	}

	s := apiclient.NewSpinner()
	clientFactory, err := apiclient.NewClientFactoryFromConfig(askProvider, s)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(3)
	}

	var spin factory.Spinner = &factory.NoSpinner{}
	if askProvider.IsInteractive() && term.IsTerminal(int(os.Stderr.Fd())) {
		spin = factory.NewTerminalSpinner(s)
	}
	f := factory.New(clientFactory, askProvider, spin, "")

	cmd := root.NewCmdRoot(f, askProvider)
	// commands are expected to print their own errors to avoid double-ups
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		printError(cmd, err)
		stop()
		os.Exit(1)
	}
}

func printError(cmd *cobra.Command, err error) {
	cmd.PrintErrln(output.Red(err.Error()))

	// the importer has already logged the hint for a missing artifact
	var artifactNotFound *teamcity.ArtifactNotFoundError
	var hinted teamcity.HintedError
	if !errors.As(err, &artifactNotFound) && errors.As(err, &hinted) && hinted.Hint() != "" {
		cmd.PrintErrln("Hint: " + hinted.Hint())
	}

	var usageError *usage.UsageError
	if errors.As(err, &usageError) {
		// if the code returns a UsageError, print the usage information
		cmd.PrintErrln(usageError.Command().UsageString())
	}
}
