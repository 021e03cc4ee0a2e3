package teamcity

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

const (
	contentTypeXML  = "application/xml"
	maxErrorBodyLen = 1024
)

// Client executes requests against the TeamCity REST API of a single server.
type Client struct {
	conn       ConnectionInfo
	httpClient *http.Client
	logger     Logger
}

type ClientOption func(c *Client)

// WithHTTPClient makes the client send requests through httpClient. The client is copied, never modified.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger Logger) ClientOption {
	return func(c *Client) {
		c.logger = loggerOrNop(logger)
	}
}

func NewClient(conn ConnectionInfo, opts ...ClientOption) (*Client, error) {
	base, err := url.Parse(conn.APIBaseURL())
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", conn.ServerURL(), err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid server url %q: scheme and host are required", conn.ServerURL())
	}

	c := &Client{
		conn:       conn,
		httpClient: http.DefaultClient,
		logger:     NopLogger,
	}
	for _, opt := range opts {
		opt(c)
	}

	httpClient := *c.httpClient
	if !conn.IsGuest() {
		next := httpClient.Transport
		if next == nil {
			next = http.DefaultTransport
		}
		httpClient.Transport = &basicAuthTransport{
			base:     base,
			userName: conn.UserName(),
			password: conn.Password(),
			next:     next,
		}
	}
	c.httpClient = &httpClient
	return c, nil
}

func (c *Client) Connection() ConnectionInfo {
	return c.conn
}

// URL returns the absolute url for a path relative to the api base.
func (c *Client) URL(relativeURL string) string {
	return c.conn.APIBaseURL() + strings.TrimLeft(relativeURL, "/")
}

func (c *Client) Get(ctx context.Context, relativeURL string) (string, error) {
	resp, err := c.send(ctx, http.MethodGet, relativeURL, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ConnectionError{URL: c.URL(relativeURL), Err: err}
	}
	return string(body), nil
}

// DownloadToFile streams the response body into destinationPath, replacing any existing file.
func (c *Client) DownloadToFile(ctx context.Context, relativeURL string, destinationPath string) error {
	resp, err := c.send(ctx, http.MethodGet, relativeURL, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	file, err := os.Create(destinationPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(file, resp.Body); err != nil {
		_ = file.Close()
		_ = os.Remove(destinationPath)
		return &ConnectionError{URL: c.URL(relativeURL), Err: err}
	}
	return file.Close()
}

func (c *Client) PostXML(ctx context.Context, relativeURL string, body string) (string, error) {
	resp, err := c.send(ctx, http.MethodPost, relativeURL, strings.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ConnectionError{URL: c.URL(relativeURL), Err: err}
	}
	return string(respBody), nil
}

func (c *Client) send(ctx context.Context, method string, relativeURL string, body io.Reader) (*http.Response, error) {
	target := c.URL(relativeURL)
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", target, err)
	}
	req.Header.Set("Accept", contentTypeXML)
	if body != nil {
		req.Header.Set("Content-Type", contentTypeXML)
	}

	c.logger.Debug("%s %s", method, target)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectionError{URL: target, Err: err}
	}
	if err := checkResponse(resp, target); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

func checkResponse(resp *http.Response, target string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusNotFound {
		return &NotFoundError{URL: target}
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
	return &HTTPError{
		URL:        target,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(body)),
	}
}

// basicAuthTransport attaches credentials to every request under the authenticated base url,
// including the hops of a redirect, and to nothing else.
type basicAuthTransport struct {
	base     *url.URL
	userName string
	password string
	next     http.RoundTripper
}

func (t *basicAuthTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if !t.covers(r.URL) {
		return t.next.RoundTrip(r)
	}
	authenticated := r.Clone(r.Context())
	authenticated.SetBasicAuth(t.userName, t.password)
	return t.next.RoundTrip(authenticated)
}

func (t *basicAuthTransport) covers(u *url.URL) bool {
	return strings.EqualFold(u.Scheme, t.base.Scheme) &&
		strings.EqualFold(u.Host, t.base.Host) &&
		strings.HasPrefix(u.Path, t.base.Path)
}
