package hooks

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/RicoHuang/mongo/core"
)

// fakeFixture counts lifecycle calls so tests can assert restart behavior.
type fakeFixture struct {
	name            string
	uncleanTeardown bool
	setups          int
	teardowns       int
	awaits          int
	connAsks        int
	syncNode        *fakeNode
}

func (f *fakeFixture) Setup(ctx context.Context) error { f.setups++; return nil }
func (f *fakeFixture) Teardown(ctx context.Context) bool {
	f.teardowns++
	return !f.uncleanTeardown
}
func (f *fakeFixture) AwaitReady(ctx context.Context) error { f.awaits++; return nil }
func (f *fakeFixture) Name() string                         { return f.name }
func (f *fakeFixture) ConnectionString() string {
	f.connAsks++
	return "localhost:20017"
}
func (f *fakeFixture) InitialSyncNode() (core.Node, error) {
	if f.syncNode == nil {
		return nil, core.ErrNoInitialSyncNode
	}
	return f.syncNode, nil
}

type fakeNode struct {
	name            string
	addr            string
	uncleanTeardown bool
	setups          int
	teardowns       int
	awaits          int
}

func (n *fakeNode) Setup(ctx context.Context) error { n.setups++; return nil }
func (n *fakeNode) Teardown(ctx context.Context) bool {
	n.teardowns++
	return !n.uncleanTeardown
}
func (n *fakeNode) AwaitReady(ctx context.Context) error { n.awaits++; return nil }
func (n *fakeNode) Name() string                         { return n.name }
func (n *fakeNode) Addr() string                         { return n.addr }

// fakeAdmin records the administrative commands a hook issues.
type fakeAdmin struct {
	resyncs     int
	waits       int
	closes      int
	lastState   int
	lastTimeout time.Duration
	resyncErr   error
	waitErr     error
}

func (a *fakeAdmin) Resync(ctx context.Context) error {
	a.resyncs++
	return a.resyncErr
}

func (a *fakeAdmin) AwaitMemberState(ctx context.Context, state int, timeout time.Duration) error {
	a.waits++
	a.lastState = state
	a.lastTimeout = timeout
	return a.waitErr
}

func (a *fakeAdmin) Close(ctx context.Context) error {
	a.closes++
	return nil
}

// staticTest is a minimal core.TestCase standing in for an executed test.
type staticTest struct {
	name string
}

func (s staticTest) TestName() string  { return s.name }
func (s staticTest) ShortName() string { return s.name }

// writeScript drops an executable shell script into a temp dir and returns
// its path.
func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+content+"\n"), 0o755))
	return path
}
