package testutil

import (
	"sync"

	"github.com/AlecAivazis/survey/v2"
	"github.com/inedo/teamcity-cli/pkg/apiclient"
	cliErrors "github.com/inedo/teamcity-cli/pkg/errors"
	"github.com/inedo/teamcity-cli/pkg/factory"
	"github.com/inedo/teamcity-cli/pkg/teamcity"
)

// FakeSpinner records the messages it was given.
type FakeSpinner struct {
	mu       sync.Mutex
	Running  bool
	Messages []string
}

func (f *FakeSpinner) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Running = true
}

func (f *FakeSpinner) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Running = false
}

func (f *FakeSpinner) SetMessage(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Messages = append(f.Messages, message)
}

func (f *FakeSpinner) RecordedMessages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Messages...)
}

const (
	FakeUserName = "builder"
	FakePassword = "s3cret"
)

// MockFactory hands out clients bound to a FakeTeamCityServer.
type MockFactory struct {
	server        *FakeTeamCityServer // must not be nil
	UserName      string
	Password      string
	Client        *teamcity.Client // nil; lazily created like with the real factory
	RawSpinner    *FakeSpinner
	PromptEnabled bool
	Asker         func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error
}

func NewMockFactory(server *FakeTeamCityServer) *MockFactory {
	if server == nil {
		panic("server FakeTeamCityServer can't be nil")
	}
	return &MockFactory{
		server:     server,
		UserName:   FakeUserName,
		Password:   FakePassword,
		RawSpinner: &FakeSpinner{},
	}
}

func (f *MockFactory) GetConnection() (teamcity.ConnectionInfo, error) {
	return teamcity.NewConnectionInfo(f.server.URL, f.UserName, f.Password)
}

func (f *MockFactory) GetClient(_ apiclient.Requester, logger teamcity.Logger) (*teamcity.Client, error) {
	if f.Client != nil {
		return f.Client, nil
	}
	conn, err := f.GetConnection()
	if err != nil {
		return nil, err
	}
	client, err := teamcity.NewClient(conn, teamcity.WithHTTPClient(f.server.Client()), teamcity.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	f.Client = client
	return client, nil
}

func (f *MockFactory) GetCurrentHost() string {
	return f.server.URL
}

func (f *MockFactory) Spinner() factory.Spinner {
	return f.RawSpinner
}

func (f *MockFactory) IsPromptEnabled() bool {
	return f.PromptEnabled
}

func (f *MockFactory) Ask(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
	if f.Asker == nil {
		return &cliErrors.PromptDisabledError{}
	}
	return f.Asker(p, response, opts...)
}

func (f *MockFactory) BuildVersion() string {
	return "0.0.0-test"
}
