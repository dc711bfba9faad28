package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticFixture struct {
	conn string
}

func (f staticFixture) Setup(ctx context.Context) error      { return nil }
func (f staticFixture) Teardown(ctx context.Context) bool    { return true }
func (f staticFixture) AwaitReady(ctx context.Context) error { return nil }
func (f staticFixture) Name() string                         { return "rs0" }
func (f staticFixture) ConnectionString() string             { return f.conn }
func (f staticFixture) InitialSyncNode() (Node, error)       { return nil, ErrNoInitialSyncNode }

type silentLogger struct{}

func (silentLogger) Criticalf(string, ...any) {}
func (silentLogger) Debugf(string, ...any)    {}
func (silentLogger) Errorf(string, ...any)    {}
func (silentLogger) Noticef(string, ...any)   {}
func (silentLogger) Warningf(string, ...any)  {}

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "check.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+content+"\n"), 0o755))
	return path
}

func newConfiguredCase(t *testing.T, script string) *ShellTestCase {
	t.Helper()
	tc := NewShellTestCase(silentLogger{}, script, "")
	tc.Shell = "/bin/sh"
	require.NoError(t, tc.Configure(staticFixture{conn: "localhost:20017"}))
	return tc
}

func TestShellTestCaseRunSuccess(t *testing.T) {
	t.Parallel()

	tc := newConfiguredCase(t, writeScript(t, "echo all good"))
	require.NoError(t, tc.Run(context.Background()))
	assert.Zero(t, tc.ReturnCode())
	assert.Contains(t, tc.LastExecution().Stdout(), "all good")
	assert.False(t, tc.LastExecution().Failed)
}

func TestShellTestCaseRunFailureCapturesDetail(t *testing.T) {
	t.Parallel()

	tc := newConfiguredCase(t, writeScript(t, `echo "index out of order" >&2; exit 3`))
	err := tc.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, 3, tc.ReturnCode())
	assert.Contains(t, err.Error(), "index out of order")
	assert.True(t, tc.LastExecution().Failed)
}

func TestShellTestCasePassesConnectionString(t *testing.T) {
	t.Parallel()

	tc := newConfiguredCase(t, writeScript(t, `echo "$`+ConnectionStringEnv+`"`))
	require.NoError(t, tc.Run(context.Background()))
	assert.Contains(t, tc.LastExecution().Stdout(), "localhost:20017")
}

func TestShellTestCaseShellOptions(t *testing.T) {
	t.Parallel()

	// without -e the script would exit 0 despite the failing command
	script := writeScript(t, "false\necho reached")
	tc := NewShellTestCase(silentLogger{}, script, "-e")
	tc.Shell = "/bin/sh"
	require.NoError(t, tc.Configure(staticFixture{conn: "localhost:20017"}))

	err := tc.Run(context.Background())
	require.Error(t, err)
	assert.NotContains(t, tc.LastExecution().Stdout(), "reached")
}

func TestShellTestCaseRequiresConfiguration(t *testing.T) {
	t.Parallel()

	tc := NewShellTestCase(silentLogger{}, writeScript(t, "exit 0"), "")
	tc.Shell = "/bin/sh"
	err := tc.Run(context.Background())
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestShellTestCaseRejectsFixtureWithoutEndpoint(t *testing.T) {
	t.Parallel()

	tc := NewShellTestCase(silentLogger{}, "check.js", "")
	require.Error(t, tc.Configure(staticFixture{}))
}

func TestShellTestCaseNaming(t *testing.T) {
	t.Parallel()

	tc := NewShellTestCase(silentLogger{}, "jstests/hooks/run_check_repl_dbhash.js", "")
	assert.Equal(t, "run_check_repl_dbhash", tc.TestName())

	tc.SetName("jsCore:CheckReplDBHash")
	assert.Equal(t, "jsCore:CheckReplDBHash", tc.TestName())
	assert.Equal(t, "jsCore:CheckReplDBHash", tc.ShortName())
}

func TestExecutionLifecycle(t *testing.T) {
	t.Parallel()

	e, err := NewExecution()
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)

	e.Start()
	assert.True(t, e.IsRunning)
	e.Stop(errors.New("boom"))
	assert.False(t, e.IsRunning)
	assert.True(t, e.Failed)

	e2, err := NewExecution()
	require.NoError(t, err)
	assert.NotEqual(t, e.ID, e2.ID)
}
