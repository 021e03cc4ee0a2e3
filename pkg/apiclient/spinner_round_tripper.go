package apiclient

import (
	"net/http"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// SpinnerRoundTripper shows a spinner on stderr while a request is in flight.
// A spinner that is already running, such as the one showing build progress, is left alone.
type SpinnerRoundTripper struct {
	Next    http.RoundTripper
	Spinner *spinner.Spinner
}

func NewSpinner() *spinner.Spinner {
	return spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithColor("cyan"), spinner.WithWriter(os.Stderr))
}

func NewSpinnerRoundTripper(s *spinner.Spinner) *SpinnerRoundTripper {
	if s == nil {
		s = NewSpinner()
	}
	return &SpinnerRoundTripper{
		Next:    http.DefaultTransport.(*http.Transport).Clone(),
		Spinner: s,
	}
}

func (c *SpinnerRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	if c.Spinner == nil || c.Spinner.Active() {
		return c.Next.RoundTrip(r)
	}
	c.Spinner.Start()
	defer c.Spinner.Stop()
	return c.Next.RoundTrip(r)
}

// UserAgentRoundTripper stamps every request with the requester's user agent.
type UserAgentRoundTripper struct {
	Next      http.RoundTripper
	Requester Requester
}

func (u *UserAgentRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	next := u.Next
	if next == nil {
		next = http.DefaultTransport
	}
	if u.Requester == nil {
		return next.RoundTrip(r)
	}
	r = r.Clone(r.Context())
	r.Header.Set("User-Agent", u.Requester.GetRequester())
	return next.RoundTrip(r)
}
