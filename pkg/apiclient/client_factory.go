package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/inedo/teamcity-cli/pkg/constants"
	cliErrors "github.com/inedo/teamcity-cli/pkg/errors"
	"github.com/inedo/teamcity-cli/pkg/question"
	"github.com/inedo/teamcity-cli/pkg/teamcity"
	"github.com/spf13/viper"
)

type ClientFactory interface {
	// GetClient returns a TeamCity client bound to the configured server.
	// It is created on first use, which is when missing connection settings are reported.
	GetClient(requester Requester, logger teamcity.Logger) (*teamcity.Client, error)

	// GetConnection returns the server and account the client talks to,
	// prompting for a missing password in interactive mode.
	GetConnection() (teamcity.ConnectionInfo, error)

	// GetHostUrl returns the configured server url as a string
	GetHostUrl() string
}

type Client struct {
	// Underlying HTTP Client (settable for mocking in unit tests).
	// If nil, the default HTTP client is used
	HttpClient *http.Client

	// TeamCity api client, lazily created by GetClient
	TeamCityClient *teamcity.Client

	// the server url, from TEAMCITY_SERVER or the config file
	ServerUrl string
	// blank for guest access
	UserName string
	Password string

	Ask question.AskProvider
}

func NewClientFactory(httpClient *http.Client, serverUrl string, userName string, password string, ask question.AskProvider) (ClientFactory, error) {
	// serverUrl may be blank here; it is checked when a client is first needed so that
	// commands such as "config set" work before the CLI has been configured
	if ask == nil {
		return nil, cliErrors.NewArgumentNullOrEmptyError("ask")
	}
	if serverUrl != "" {
		if _, err := parseServerUrl(serverUrl); err != nil {
			return nil, err
		}
	}

	return &Client{
		HttpClient: httpClient,
		ServerUrl:  strings.TrimSpace(serverUrl),
		UserName:   strings.TrimSpace(userName),
		Password:   password,
		Ask:        ask,
	}, nil
}

// NewClientFactoryFromConfig creates a ClientFactory from the viper config.
// s is the spinner shown while requests are in flight in interactive mode; it may be nil.
func NewClientFactoryFromConfig(ask question.AskProvider, s *spinner.Spinner) (ClientFactory, error) {
	serverUrl := viper.GetString(constants.ConfigServer)
	userName := viper.GetString(constants.ConfigUserName)
	password := viper.GetString(constants.ConfigPassword)

	httpClient := &http.Client{}
	if ask.IsInteractive() {
		// spinner round-tripper only needed for interactive mode
		httpClient.Transport = NewSpinnerRoundTripper(s)
	} else {
		httpClient.Transport = http.DefaultTransport.(*http.Transport).Clone()
	}
	if viper.GetBool(constants.ConfigIgnoreSslErrors) {
		ApplySSLIgnoreConfiguration(httpClient)
	}

	return NewClientFactory(httpClient, serverUrl, userName, password, ask)
}

func ValidateMandatoryEnvironment(serverUrl string) error {
	if strings.TrimSpace(serverUrl) == "" {
		return errors.New(heredoc.Docf(`
			To get started with the TeamCity CLI, please populate the %s environment variable
			(and %s and %s unless the server allows guest access).
			Alternatively you can run:
			  %s config set %s
			  %s config set %s
			  %s config set %s
		`, constants.EnvTeamCityServer, constants.EnvTeamCityUserName, constants.EnvTeamCityPassword,
			constants.ExecutableName, constants.ConfigServer,
			constants.ExecutableName, constants.ConfigUserName,
			constants.ExecutableName, constants.ConfigPassword))
	}
	return nil
}

func (c *Client) GetHostUrl() string {
	return c.ServerUrl
}

func (c *Client) GetConnection() (teamcity.ConnectionInfo, error) {
	if err := ValidateMandatoryEnvironment(c.ServerUrl); err != nil {
		return teamcity.ConnectionInfo{}, err
	}
	if c.UserName != "" && c.Password == "" {
		if !c.Ask.IsInteractive() {
			return teamcity.ConnectionInfo{}, fmt.Errorf("a password must be supplied for %s; set %s or run %s config set %s",
				c.UserName, constants.EnvTeamCityPassword, constants.ExecutableName, constants.ConfigPassword)
		}
		var password string
		if err := c.Ask.Ask(&survey.Password{
			Message: fmt.Sprintf("Password for %s on %s", c.UserName, c.ServerUrl),
		}, &password, survey.WithValidator(survey.Required)); err != nil {
			return teamcity.ConnectionInfo{}, err
		}
		c.Password = password
	}
	return teamcity.NewConnectionInfo(c.ServerUrl, c.UserName, c.Password)
}

func (c *Client) GetClient(requester Requester, logger teamcity.Logger) (*teamcity.Client, error) {
	if c.TeamCityClient != nil {
		return c.TeamCityClient, nil
	}

	conn, err := c.GetConnection()
	if err != nil {
		return nil, err
	}

	httpClient := c.HttpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	// copy so the user agent is not stacked onto a shared client
	withUserAgent := *httpClient
	withUserAgent.Transport = &UserAgentRoundTripper{
		Next:      httpClient.Transport,
		Requester: requester,
	}

	client, err := teamcity.NewClient(conn, teamcity.WithHTTPClient(&withUserAgent), teamcity.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	c.TeamCityClient = client
	return client, nil
}

func parseServerUrl(serverUrl string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(serverUrl))
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("the server url '%s' must be absolute, for example https://teamcity.example.com", serverUrl)
	}
	return u, nil
}
