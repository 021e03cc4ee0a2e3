package teamcity

import (
	"errors"
	"strings"
)

const (
	guestAuthSegment = "guestAuth"
	httpAuthSegment  = "httpAuth"
)

// ConnectionInfo identifies a TeamCity server and the account used to talk to it.
// A blank user name selects the guest API.
type ConnectionInfo struct {
	serverURL string
	userName  string
	password  string
}

func NewConnectionInfo(serverURL string, userName string, password string) (ConnectionInfo, error) {
	if strings.TrimSpace(serverURL) == "" {
		return ConnectionInfo{}, errors.New("server url must be specified")
	}
	return ConnectionInfo{
		serverURL: strings.TrimSpace(serverURL),
		userName:  userName,
		password:  password,
	}, nil
}

func (c ConnectionInfo) ServerURL() string { return c.serverURL }
func (c ConnectionInfo) UserName() string  { return c.userName }
func (c ConnectionInfo) Password() string  { return c.password }

// IsGuest reports whether requests are made without credentials.
func (c ConnectionInfo) IsGuest() bool {
	return c.userName == ""
}

// APIBaseURL returns the server url with the auth path segment appended, always ending in a slash.
func (c ConnectionInfo) APIBaseURL() string {
	segment := httpAuthSegment
	if c.IsGuest() {
		segment = guestAuthSegment
	}
	return strings.TrimRight(c.serverURL, "/") + "/" + segment + "/"
}
