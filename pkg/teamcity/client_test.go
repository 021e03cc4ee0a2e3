package teamcity_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/inedo/teamcity-cli/pkg/teamcity"
	"github.com/inedo/teamcity-cli/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get(t *testing.T) {
	t.Run("sends basic credentials under httpAuth", func(t *testing.T) {
		server := testutil.NewFakeTeamCityServer(t)
		server.RespondWith("GET", "/httpAuth/app/rest/server", `<server version="2023.11"/>`)
		client := newTestClient(t, server)

		body, err := client.Get(context.Background(), "app/rest/server")
		require.NoError(t, err)
		assert.Equal(t, `<server version="2023.11"/>`, body)

		requests := server.Requests()
		require.Len(t, requests, 1)
		assert.True(t, requests[0].HasAuth)
		assert.Equal(t, "builder", requests[0].UserName)
		assert.Equal(t, "s3cret", requests[0].Password)
	})

	t.Run("guest requests carry no credentials", func(t *testing.T) {
		server := testutil.NewFakeTeamCityServer(t)
		server.RespondWith("GET", "/guestAuth/app/rest/server", `<server/>`)
		conn, err := teamcity.NewConnectionInfo(server.URL, "", "")
		require.NoError(t, err)
		client, err := teamcity.NewClient(conn, teamcity.WithHTTPClient(server.Client()))
		require.NoError(t, err)

		_, err = client.Get(context.Background(), "app/rest/server")
		require.NoError(t, err)
		assert.False(t, server.Requests()[0].HasAuth)
	})

	t.Run("404 is a NotFoundError", func(t *testing.T) {
		server := testutil.NewFakeTeamCityServer(t)
		server.RespondWithStatus("GET", "/httpAuth/app/rest/builds/id:99", http.StatusNotFound, "not here")
		client := newTestClient(t, server)

		_, err := client.Get(context.Background(), "app/rest/builds/id:99")
		var notFound *teamcity.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, server.URL+"/httpAuth/app/rest/builds/id:99", notFound.URL)
		assert.True(t, teamcity.IsNotFound(err))
	})

	t.Run("other failures are an HTTPError with the status", func(t *testing.T) {
		server := testutil.NewFakeTeamCityServer(t)
		server.RespondWithStatus("GET", "/httpAuth/app/rest/projects", http.StatusForbidden, "access denied\n")
		client := newTestClient(t, server)

		_, err := client.Get(context.Background(), "app/rest/projects")
		var httpErr *teamcity.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)
		assert.Equal(t, "access denied", httpErr.Body)
		assert.NotEmpty(t, httpErr.Hint())
		assert.False(t, teamcity.IsNotFound(err))
	})

	t.Run("network failures are a ConnectionError", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		serverURL := server.URL
		server.Close()

		conn, err := teamcity.NewConnectionInfo(serverURL, "builder", "s3cret")
		require.NoError(t, err)
		client, err := teamcity.NewClient(conn)
		require.NoError(t, err)

		_, err = client.Get(context.Background(), "app/rest/projects")
		var connErr *teamcity.ConnectionError
		require.ErrorAs(t, err, &connErr)
		assert.Equal(t, serverURL+"/httpAuth/app/rest/projects", connErr.URL)
	})
}

func TestClient_CredentialsFollowRedirectsUnderBaseURLOnly(t *testing.T) {
	var otherAuth, redirectedAuth bool
	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _, otherAuth = r.BasicAuth()
		_, _ = w.Write([]byte("<other/>"))
	}))
	defer other.Close()

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/httpAuth/app/rest/buildQueue/id:5":
			http.Redirect(w, r, server.URL+"/httpAuth/app/rest/builds/id:5", http.StatusFound)
		case "/httpAuth/app/rest/builds/id:5":
			_, _, redirectedAuth = r.BasicAuth()
			_, _ = w.Write([]byte(`<build id="5"/>`))
		case "/httpAuth/app/rest/elsewhere":
			http.Redirect(w, r, other.URL+"/download", http.StatusFound)
		}
	}))
	defer server.Close()

	conn, err := teamcity.NewConnectionInfo(server.URL, "builder", "s3cret")
	require.NoError(t, err)
	client, err := teamcity.NewClient(conn)
	require.NoError(t, err)

	body, err := client.Get(context.Background(), "app/rest/buildQueue/id:5")
	require.NoError(t, err)
	assert.Equal(t, `<build id="5"/>`, body)
	assert.True(t, redirectedAuth)

	_, err = client.Get(context.Background(), "app/rest/elsewhere")
	require.NoError(t, err)
	assert.False(t, otherAuth)
}

func TestClient_PostXML(t *testing.T) {
	server := testutil.NewFakeTeamCityServer(t)
	server.RespondWith("POST", "/httpAuth/app/rest/buildQueue", `<build id="1"/>`)
	client := newTestClient(t, server)

	resp, err := client.PostXML(context.Background(), "app/rest/buildQueue", `<build/>`)
	require.NoError(t, err)
	assert.Equal(t, `<build id="1"/>`, resp)

	request := server.Requests()[0]
	assert.Equal(t, "application/xml", request.ContentType)
	assert.Equal(t, `<build/>`, request.Body)
}

func TestClient_DownloadToFile(t *testing.T) {
	server := testutil.NewFakeTeamCityServer(t)
	server.RespondWith("GET", "/httpAuth/repository/download/bt7/42/out.txt", "artifact contents")
	server.RespondWithStatus("GET", "/httpAuth/repository/download/bt7/43/out.txt", http.StatusNotFound, "")
	client := newTestClient(t, server)

	dest := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, client.DownloadToFile(context.Background(), "repository/download/bt7/42/out.txt", dest))
	contents, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "artifact contents", string(contents))

	missing := filepath.Join(t.TempDir(), "missing.txt")
	err = client.DownloadToFile(context.Background(), "repository/download/bt7/43/out.txt", missing)
	assert.True(t, teamcity.IsNotFound(err))
	_, statErr := os.Stat(missing)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}
