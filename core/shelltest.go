package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gobs/args"
)

// DefaultShell is the binary used to execute verification scripts.
const DefaultShell = "mongosh"

// ConnectionStringEnv is the environment variable through which a script
// receives the address of the fixture it should connect to.
const ConnectionStringEnv = "MONGO_CONNECTION_STRING"

// ShellTestCase executes one script through the shell and tracks the result
// under a mutable test name. A hook owns exactly one instance and reuses it
// for every invocation within a suite, renaming it before each run.
type ShellTestCase struct {
	logger       Logger
	script       string
	shellOptions string

	// Shell is the binary the script is handed to. Overridable so tests
	// can run plain shell scripts.
	Shell string

	name          string
	returnCode    int
	connStr       string
	configured    bool
	lastExecution *Execution
}

// NewShellTestCase builds a test case bound to the given script. The name
// defaults to the script's base name and is expected to be overwritten by
// SetName before each run.
func NewShellTestCase(logger Logger, script, shellOptions string) *ShellTestCase {
	return &ShellTestCase{
		logger:       logger,
		script:       script,
		shellOptions: shellOptions,
		Shell:        DefaultShell,
		name:         shortNameOf(script),
	}
}

func (tc *ShellTestCase) TestName() string { return tc.name }

// ShortName returns the name without directory or extension.
func (tc *ShellTestCase) ShortName() string { return shortNameOf(tc.name) }

// SetName renames the test case. Hooks call this before every run so the
// report entry identifies both the triggering test and the hook.
func (tc *ShellTestCase) SetName(name string) { tc.name = name }

func (tc *ShellTestCase) ReturnCode() int      { return tc.returnCode }
func (tc *ShellTestCase) SetReturnCode(rc int) { tc.returnCode = rc }

// Script returns the path of the bound verification script.
func (tc *ShellTestCase) Script() string { return tc.script }

// Configure binds the test case to a live fixture. Must run after the
// fixture is up, since the connection string may only exist by then.
func (tc *ShellTestCase) Configure(f Fixture) error {
	cs := f.ConnectionString()
	if cs == "" {
		return fmt.Errorf("configure %q: fixture %s has no connection string", tc.name, f.Name())
	}
	tc.connStr = cs
	tc.configured = true
	return nil
}

// LastExecution returns the capture record of the most recent Run.
func (tc *ShellTestCase) LastExecution() *Execution { return tc.lastExecution }

// Run executes the script once. On failure the returned error carries the
// captured error detail and the exit code is stored as the return code.
func (tc *ShellTestCase) Run(ctx context.Context) error {
	if !tc.configured {
		return fmt.Errorf("run %q: %w", tc.name, ErrNotConfigured)
	}

	execution, err := NewExecution()
	if err != nil {
		return err
	}
	cmd, err := tc.buildCommand(ctx, execution)
	if err != nil {
		return err
	}

	tc.logger.Debugf("running %q (%s)", tc.name, tc.script)
	execution.Start()
	runErr := cmd.Run()
	execution.Stop(runErr)
	tc.lastExecution = execution

	if runErr == nil {
		tc.returnCode = 0
		return nil
	}

	tc.returnCode = 1
	if exitErr, ok := errors.AsType[*exec.ExitError](runErr); ok {
		tc.returnCode = exitErr.ExitCode()
	}

	if detail := strings.TrimSpace(execution.Stderr()); detail != "" {
		return fmt.Errorf("%s: %s", filepath.Base(tc.script), detail)
	}
	return fmt.Errorf("%s: %w", filepath.Base(tc.script), runErr)
}

func (tc *ShellTestCase) buildCommand(ctx context.Context, execution *Execution) (*exec.Cmd, error) {
	cmdArgs := args.GetArgs(strings.TrimSpace(tc.Shell + " " + tc.shellOptions))
	if len(cmdArgs) == 0 {
		return nil, ErrEmptyShellCommand
	}
	cmdArgs = append(cmdArgs, tc.script)

	bin, err := exec.LookPath(cmdArgs[0])
	if err != nil {
		return nil, fmt.Errorf("look path %q: %w", cmdArgs[0], err)
	}

	cmd := exec.CommandContext(ctx, bin, cmdArgs[1:]...)
	cmd.Stdout = execution.OutputStream
	cmd.Stderr = execution.ErrorStream
	// keep the environment, the script only needs the endpoint added
	cmd.Env = append(os.Environ(), ConnectionStringEnv+"="+tc.connStr)
	return cmd, nil
}

func shortNameOf(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
