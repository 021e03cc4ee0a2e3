package question

import (
	"github.com/AlecAivazis/survey/v2"
	cliErrors "github.com/inedo/teamcity-cli/pkg/errors"
)

type Asker func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error

// AskProvider holds the single reference to survey so that prompting can be
// switched off once for the whole process when running with --no-prompt or under CI.
type AskProvider interface {
	IsInteractive() bool
	DisableInteractive()
	Ask(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error
}

type askWrapper struct {
	asker Asker
}

func NewAskProvider(asker Asker) AskProvider {
	return &askWrapper{
		asker: asker,
	}
}

func (a *askWrapper) IsInteractive() bool {
	return a.asker != nil
}

func (a *askWrapper) DisableInteractive() {
	a.asker = nil
}

func (a *askWrapper) Ask(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
	if a.asker == nil {
		// commands check IsInteractive before prompting
		return &cliErrors.PromptDisabledError{}
	}
	return a.asker(p, response, opts...)
}
