package testutil

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// RecordedRequest is what FakeTeamCityServer saw of a request.
type RecordedRequest struct {
	Method       string
	PathAndQuery string
	RawQuery     string
	Body         string
	ContentType  string
	UserAgent    string
	UserName     string
	Password     string
	HasAuth      bool
}

type scriptedResponse struct {
	status int
	body   string
}

// FakeTeamCityServer is an httptest server answering from scripted responses.
// Requests are matched on method, path and the unescaped query string. Each key holds a queue of
// responses; the last one is repeated once the queue is drained. Unscripted requests fail the test.
type FakeTeamCityServer struct {
	*httptest.Server

	t         *testing.T
	mu        sync.Mutex
	responses map[string][]scriptedResponse
	requests  []RecordedRequest
}

func NewFakeTeamCityServer(t *testing.T) *FakeTeamCityServer {
	f := &FakeTeamCityServer{
		t:         t,
		responses: map[string][]scriptedResponse{},
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

// RespondWith queues a 200 response carrying body.
func (f *FakeTeamCityServer) RespondWith(method string, pathAndQuery string, body string) *FakeTeamCityServer {
	return f.RespondWithStatus(method, pathAndQuery, http.StatusOK, body)
}

func (f *FakeTeamCityServer) RespondWithStatus(method string, pathAndQuery string, status int, body string) *FakeTeamCityServer {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := method + " " + pathAndQuery
	f.responses[key] = append(f.responses[key], scriptedResponse{status: status, body: body})
	return f
}

// Requests returns a copy of every request received so far.
func (f *FakeTeamCityServer) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

// RequestCount counts the received requests for method and pathAndQuery.
func (f *FakeTeamCityServer) RequestCount(method string, pathAndQuery string) int {
	count := 0
	for _, r := range f.Requests() {
		if r.Method == method && r.PathAndQuery == pathAndQuery {
			count++
		}
	}
	return count
}

func (f *FakeTeamCityServer) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	pathAndQuery := r.URL.Path
	if r.URL.RawQuery != "" {
		query, err := url.QueryUnescape(r.URL.RawQuery)
		if err != nil {
			query = r.URL.RawQuery
		}
		pathAndQuery = fmt.Sprintf("%s?%s", pathAndQuery, query)
	}
	user, password, hasAuth := r.BasicAuth()

	f.mu.Lock()
	f.requests = append(f.requests, RecordedRequest{
		Method:       r.Method,
		PathAndQuery: pathAndQuery,
		RawQuery:     r.URL.RawQuery,
		Body:         string(body),
		ContentType:  r.Header.Get("Content-Type"),
		UserAgent:    r.UserAgent(),
		UserName:     user,
		Password:     password,
		HasAuth:      hasAuth,
	})
	key := r.Method + " " + pathAndQuery
	queue := f.responses[key]
	var response *scriptedResponse
	if len(queue) > 0 {
		response = &queue[0]
		if len(queue) > 1 {
			f.responses[key] = queue[1:]
		}
	}
	f.mu.Unlock()

	if response == nil {
		f.t.Errorf("unexpected request: %s", key)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(response.status)
	_, _ = io.WriteString(w, response.body)
}
