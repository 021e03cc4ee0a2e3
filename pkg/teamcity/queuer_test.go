package teamcity_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/inedo/teamcity-cli/pkg/teamcity"
	"github.com/inedo/teamcity-cli/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const queuedBuildXML = `<build id="101" buildTypeId="bt7" state="queued" href="/httpAuth/app/rest/buildQueue/id:101"/>`

func newTestQueuer(t *testing.T, server *testutil.FakeTeamCityServer, logger teamcity.Logger) *teamcity.BuildQueuer {
	queuer := teamcity.NewBuildQueuer(newTestClient(t, server), logger)
	queuer.Configuration = teamcity.BuildConfigurationRef{ID: "bt7"}
	queuer.PollInterval = time.Millisecond
	queuer.AppearDelay = time.Millisecond
	return queuer
}

func TestBuildQueuer_PollsUntilFinished(t *testing.T) {
	server := testutil.NewFakeTeamCityServer(t)
	server.RespondWith("POST", "/httpAuth/app/rest/buildQueue", queuedBuildXML)
	server.
		RespondWith("GET", "/httpAuth/app/rest/buildQueue/id:101", `<build id="101" number="42" running="true"><running-info percentageComplete="10"/><buildType projectName="Widgets"/></build>`).
		RespondWith("GET", "/httpAuth/app/rest/buildQueue/id:101", `<build id="101" number="42" running="true"><running-info percentageComplete="55"/><buildType projectName="Widgets"/></build>`).
		RespondWith("GET", "/httpAuth/app/rest/buildQueue/id:101", `<build id="101" number="42" status="SUCCESS" running="false"><statusText>Tests passed: 12</statusText><buildType projectName="Widgets"/></build>`)

	queuer := newTestQueuer(t, server, nil)
	var mu sync.Mutex
	var seen []teamcity.Progress
	queuer.OnProgress = func(p teamcity.Progress) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, p)
	}

	outcome := queuer.Queue(context.Background())

	require.Equal(t, teamcity.ResultSucceeded, outcome.Result, "%v", outcome.Err)
	assert.NoError(t, outcome.Err)
	assert.Equal(t, "Tests passed: 12", outcome.Build.StatusText)
	assert.Equal(t, 100, outcome.Build.PercentComplete)

	var percents []int
	for _, p := range seen {
		percents = append(percents, p.Percent)
	}
	assert.Equal(t, []int{10, 55, 100}, percents)
	assert.Equal(t, "Building Widgets Build #42 (55% Complete)", seen[1].Message)
	assert.Equal(t, 100, queuer.Progress().Percent)
}

func TestBuildQueuer_SendsBranchAndProperties(t *testing.T) {
	server := testutil.NewFakeTeamCityServer(t)
	server.RespondWith("POST", "/httpAuth/app/rest/buildQueue", queuedBuildXML)

	queuer := newTestQueuer(t, server, nil)
	queuer.BranchName = "release/1.0"
	queuer.Properties = map[string]string{"env.TARGET": "prod"}
	queuer.WaitForCompletion = false

	outcome := queuer.Queue(context.Background())

	assert.Equal(t, teamcity.ResultTriggered, outcome.Result)
	assert.True(t, outcome.Succeeded())
	requests := server.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, `<build branchName="release/1.0"><buildType id="bt7"></buildType><properties><property name="env.TARGET" value="prod"></property></properties></build>`, requests[0].Body)
}

func TestBuildQueuer_Cancellation(t *testing.T) {
	t.Run("cancelling between polls stops without another status request", func(t *testing.T) {
		server := testutil.NewFakeTeamCityServer(t)
		server.RespondWith("POST", "/httpAuth/app/rest/buildQueue", queuedBuildXML)
		server.RespondWith("GET", "/httpAuth/app/rest/buildQueue/id:101", `<build id="101" number="42" running="true"><running-info percentageComplete="10"/></build>`)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		logger := &recordingLogger{}
		queuer := newTestQueuer(t, server, logger)
		queuer.PollInterval = time.Hour
		queuer.OnProgress = func(teamcity.Progress) { cancel() }

		outcome := queuer.Queue(ctx)

		assert.Equal(t, teamcity.ResultCancelled, outcome.Result)
		assert.ErrorIs(t, outcome.Err, teamcity.ErrCancelled)
		assert.Equal(t, "42", outcome.Build.Number)
		assert.Equal(t, 1, server.RequestCount("GET", "/httpAuth/app/rest/buildQueue/id:101"))
		assert.True(t, logger.Contains("warn", "Cancelled"))
	})

	t.Run("a cancelled context never polls", func(t *testing.T) {
		server := testutil.NewFakeTeamCityServer(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		outcome := newTestQueuer(t, server, nil).Queue(ctx)

		assert.Equal(t, teamcity.ResultCancelled, outcome.Result)
		assert.Zero(t, server.RequestCount("GET", "/httpAuth/app/rest/buildQueue/id:101"))
	})
}

func TestBuildQueuer_LegacyTrigger(t *testing.T) {
	const runningLocator = "/httpAuth/app/rest/builds?locator=buildType:bt7,count:1,running:true,branch:release/1.0"

	t.Run("finds the running build and reports a remote failure", func(t *testing.T) {
		server := testutil.NewFakeTeamCityServer(t)
		server.RespondWith("GET", "/httpAuth/action.html?add2Queue=bt7&branchName=release/1.0&name=x", "")
		server.RespondWith("GET", runningLocator, `<builds count="1"><build id="55" number="43" running="true" href="/httpAuth/app/rest/builds/id:55"/></builds>`)
		server.RespondWith("GET", "/httpAuth/app/rest/builds/id:55", `<build id="55" number="43" status="FAILURE" running="false"><statusText>Compilation failed</statusText></build>`)

		queuer := newTestQueuer(t, server, nil)
		queuer.Strategy = teamcity.TriggerLegacyAction
		queuer.BranchName = "release/1.0"
		queuer.AdditionalParameters = "&name=x"

		outcome := queuer.Queue(context.Background())

		assert.Equal(t, teamcity.ResultFailed, outcome.Result)
		var failed *teamcity.BuildFailedError
		require.ErrorAs(t, outcome.Err, &failed)
		assert.Equal(t, "Compilation failed", failed.Build.StatusText)
		assert.EqualError(t, outcome.Err, "build #43 finished with status failure: Compilation failed")
		assert.Equal(t, "add2Queue=bt7&branchName=release%2F1.0&name=x", server.Requests()[0].RawQuery)
	})

	t.Run("a build that never appears fails without polling", func(t *testing.T) {
		server := testutil.NewFakeTeamCityServer(t)
		server.RespondWith("GET", "/httpAuth/action.html?add2Queue=bt7&branchName=release/1.0", "")
		server.RespondWith("GET", runningLocator, `<builds count="0"/>`)

		logger := &recordingLogger{}
		queuer := newTestQueuer(t, server, logger)
		queuer.Strategy = teamcity.TriggerLegacyAction
		queuer.BranchName = "release/1.0"

		outcome := queuer.Queue(context.Background())

		assert.Equal(t, teamcity.ResultFailed, outcome.Result)
		assert.ErrorIs(t, outcome.Err, teamcity.ErrBuildDidNotAppear)
		assert.Len(t, server.Requests(), 2)
		assert.True(t, logger.Contains("error", "no running build could be found"))
	})

	t.Run("without waiting the build is not looked up", func(t *testing.T) {
		server := testutil.NewFakeTeamCityServer(t)
		server.RespondWith("GET", "/httpAuth/action.html?add2Queue=bt7&branchName=release/1.0", "")
		server.RespondWith("GET", runningLocator, `<builds count="0"/>`)

		queuer := newTestQueuer(t, server, nil)
		queuer.Strategy = teamcity.TriggerLegacyAction
		queuer.BranchName = "release/1.0"
		queuer.WaitForCompletion = false

		outcome := queuer.Queue(context.Background())

		assert.Equal(t, teamcity.ResultTriggered, outcome.Result)
		assert.NoError(t, outcome.Err)
		assert.Nil(t, outcome.Build)
		assert.Len(t, server.Requests(), 1)
		assert.Zero(t, server.RequestCount("GET", runningLocator))
	})
}

func TestBuildQueuer_UnknownConfigurationFails(t *testing.T) {
	server := testutil.NewFakeTeamCityServer(t)
	server.RespondWith("GET", "/httpAuth/app/rest/buildTypes", buildTypesXML)

	queuer := newTestQueuer(t, server, nil)
	queuer.Configuration = teamcity.BuildConfigurationRef{ProjectName: "Widgets", BuildConfigurationName: "Release"}

	outcome := queuer.Queue(context.Background())

	assert.Equal(t, teamcity.ResultFailed, outcome.Result)
	var notFound *teamcity.ConfigurationNotFoundError
	assert.ErrorAs(t, outcome.Err, &notFound)
	assert.Len(t, server.Requests(), 1)
}
