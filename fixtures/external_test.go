package fixtures

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RicoHuang/mongo/core"
	"github.com/RicoHuang/mongo/test"
)

func writeScript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+content+"\n"), 0o755))
	return path
}

func TestExternalSetupRunsCommand(t *testing.T) {
	t.Parallel()

	marker := filepath.Join(t.TempDir(), "started")
	f := NewExternal(test.NewLogger(), Config{
		Name:             "rs0",
		ConnectionString: "localhost:20017",
		Setup:            "touch " + marker,
		Teardown:         "true",
		Ready:            "true",
	})

	ctx := context.Background()
	require.NoError(t, f.Setup(ctx))
	_, err := os.Stat(marker)
	assert.NoError(t, err)

	require.NoError(t, f.AwaitReady(ctx))
	assert.True(t, f.Teardown(ctx))
	assert.Equal(t, "localhost:20017", f.ConnectionString())
	assert.Equal(t, "rs0", f.Name())
}

func TestExternalSetupFailure(t *testing.T) {
	t.Parallel()

	logger := test.NewLogger()
	f := NewExternal(logger, Config{
		Name:  "rs0",
		Setup: writeScript(t, "setup.sh", `echo "port already in use" >&2; exit 1`),
	})

	err := f.Setup(context.Background())
	require.Error(t, err)
	assert.True(t, logger.HasError("port already in use"))
}

func TestExternalUncleanTeardown(t *testing.T) {
	t.Parallel()

	logger := test.NewLogger()
	f := NewExternal(logger, Config{Name: "rs0", Teardown: "false"})

	assert.False(t, f.Teardown(context.Background()))
	assert.True(t, logger.HasMessage("was not clean"))
}

func TestExternalAwaitReadyPollsUntilSuccess(t *testing.T) {
	t.Parallel()

	counter := filepath.Join(t.TempDir(), "attempts")
	ready := writeScript(t, "ready.sh",
		`echo x >> `+counter+`
[ "$(wc -l < `+counter+`)" -ge 3 ]`)

	f := NewExternal(test.NewLogger(), Config{
		Name:          "rs0",
		Ready:         ready,
		ReadyInterval: Duration(10 * time.Millisecond),
		ReadyTimeout:  Duration(5 * time.Second),
	})

	require.NoError(t, f.AwaitReady(context.Background()))
	data, err := os.ReadFile(counter)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(data), 6) // at least three probes ran
}

func TestExternalAwaitReadyTimesOut(t *testing.T) {
	t.Parallel()

	f := NewExternal(test.NewLogger(), Config{
		Name:          "rs0",
		Ready:         "false",
		ReadyInterval: Duration(10 * time.Millisecond),
		ReadyTimeout:  Duration(100 * time.Millisecond),
	})

	err := f.AwaitReady(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not become ready")
}

func TestExternalInitialSyncNode(t *testing.T) {
	t.Parallel()

	bare := NewExternal(test.NewLogger(), Config{Name: "rs0"})
	_, err := bare.InitialSyncNode()
	require.ErrorIs(t, err, core.ErrNoInitialSyncNode)

	f := NewExternal(test.NewLogger(), Config{
		Name: "rs0",
		InitialSyncNode: &NodeConfig{
			Name:     "rs0:node2",
			Addr:     "localhost:20019",
			Setup:    "true",
			Teardown: "true",
			Ready:    "true",
		},
	})
	node, err := f.InitialSyncNode()
	require.NoError(t, err)
	assert.Equal(t, "rs0:node2", node.Name())
	assert.Equal(t, "localhost:20019", node.Addr())

	ctx := context.Background()
	require.NoError(t, node.Setup(ctx))
	assert.True(t, node.Teardown(ctx))
	require.NoError(t, node.AwaitReady(ctx))
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	full := Config{Name: "rs0", Setup: "true", Teardown: "true", Ready: "true"}
	require.NoError(t, full.Validate())

	missing := full
	missing.Teardown = "   "
	err := missing.Validate()
	require.ErrorIs(t, err, ErrMissingCommand)
	assert.Contains(t, err.Error(), "rs0: teardown")

	withNode := full
	withNode.InitialSyncNode = &NodeConfig{Addr: "localhost:20018", Setup: "true", Ready: "true"}
	err = withNode.Validate()
	require.ErrorIs(t, err, ErrMissingCommand)
	assert.Contains(t, err.Error(), "localhost:20018: teardown")
}
