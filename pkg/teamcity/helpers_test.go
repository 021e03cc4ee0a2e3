package teamcity_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/inedo/teamcity-cli/pkg/teamcity"
	"github.com/inedo/teamcity-cli/test/testutil"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordingLogger) record(level string, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, level+": "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Debug(format string, args ...any) { l.record("debug", format, args...) }
func (l *recordingLogger) Info(format string, args ...any)  { l.record("info", format, args...) }
func (l *recordingLogger) Warn(format string, args ...any)  { l.record("warn", format, args...) }
func (l *recordingLogger) Error(format string, args ...any) { l.record("error", format, args...) }

func (l *recordingLogger) Contains(level string, substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, entry := range l.entries {
		if strings.HasPrefix(entry, level+": ") && strings.Contains(entry, substr) {
			return true
		}
	}
	return false
}

func newTestClient(t *testing.T, server *testutil.FakeTeamCityServer) *teamcity.Client {
	conn, err := teamcity.NewConnectionInfo(server.URL, "builder", "s3cret")
	require.NoError(t, err)
	client, err := teamcity.NewClient(conn, teamcity.WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return client
}

const buildTypesXML = `<buildTypes count="4">
  <buildType id="bt7" name="CI" projectName="Widgets" projectId="Widgets"/>
  <buildType id="bt8" name="Nightly" projectName="Widgets" projectId="Widgets"/>
  <buildType id="bt20" name="CI" projectName="Platform :: Widgets" projectId="Platform_Widgets"/>
  <buildType id="bt30" name="Deploy" projectName="Gadgets :: Tools" projectId="Gadgets_Tools"/>
</buildTypes>`
