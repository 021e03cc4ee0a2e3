package factory

import (
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/briandowns/spinner"
	version "github.com/inedo/teamcity-cli"
	"github.com/inedo/teamcity-cli/pkg/apiclient"
	"github.com/inedo/teamcity-cli/pkg/question"
	"github.com/inedo/teamcity-cli/pkg/teamcity"
)

// Spinner is the activity indicator commands show during long running work.
type Spinner interface {
	Start()
	Stop()
	SetMessage(message string)
}

type factory struct {
	client       apiclient.ClientFactory
	asker        question.AskProvider
	spinner      Spinner
	buildVersion string
}

type Factory interface {
	GetClient(requester apiclient.Requester, logger teamcity.Logger) (*teamcity.Client, error)
	GetConnection() (teamcity.ConnectionInfo, error)
	GetCurrentHost() string
	IsPromptEnabled() bool
	Ask(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error
	Spinner() Spinner
	BuildVersion() string
}

func New(clientFactory apiclient.ClientFactory, asker question.AskProvider, s Spinner, buildVersion string) Factory {
	if s == nil {
		s = &NoSpinner{}
	}
	return &factory{
		client:       clientFactory,
		asker:        asker,
		spinner:      s,
		buildVersion: buildVersion,
	}
}

func (f *factory) GetClient(requester apiclient.Requester, logger teamcity.Logger) (*teamcity.Client, error) {
	return f.client.GetClient(requester, logger)
}

func (f *factory) GetConnection() (teamcity.ConnectionInfo, error) {
	return f.client.GetConnection()
}

func (f *factory) GetCurrentHost() string {
	return f.client.GetHostUrl()
}

func (f *factory) IsPromptEnabled() bool {
	return f.asker.IsInteractive()
}

func (f *factory) Ask(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
	return f.asker.Ask(p, response, opts...)
}

func (f *factory) Spinner() Spinner {
	return f.spinner
}

func (f *factory) BuildVersion() string {
	if v := strings.TrimSpace(f.buildVersion); v != "" {
		return v
	}
	if v := strings.TrimSpace(version.Version); v != "" {
		return v
	}
	return "0.0.0-dev"
}

// TerminalSpinner adapts a briandowns spinner. The suffix is swapped under the spinner's
// lock because the spinner redraws it from its own goroutine.
type TerminalSpinner struct {
	inner *spinner.Spinner
}

func NewTerminalSpinner(s *spinner.Spinner) *TerminalSpinner {
	return &TerminalSpinner{inner: s}
}

func (s *TerminalSpinner) Start() { s.inner.Start() }
func (s *TerminalSpinner) Stop()  { s.inner.Stop() }

func (s *TerminalSpinner) SetMessage(message string) {
	s.inner.Lock()
	defer s.inner.Unlock()
	if message == "" {
		s.inner.Suffix = ""
		return
	}
	s.inner.Suffix = " " + message
}

// NoSpinner is used when stderr is not a terminal or prompting is disabled.
type NoSpinner struct{}

func (s *NoSpinner) Start()            {}
func (s *NoSpinner) Stop()             {}
func (s *NoSpinner) SetMessage(string) {}
