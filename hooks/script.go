package hooks

import (
	"context"
	"fmt"

	"github.com/RicoHuang/mongo/core"
)

// scriptRunner owns the one dynamic test case a script-driven hook reuses
// across the whole suite. It guarantees the report sees exactly one
// start/stop pair per invocation, whatever the script does in between.
type scriptRunner struct {
	logger      core.Logger
	hookName    string
	description string
	testCase    *core.ShellTestCase
	configured  bool
}

func newScriptRunner(logger core.Logger, hookName, description string, tc *core.ShellTestCase) *scriptRunner {
	return &scriptRunner{
		logger:      logger,
		hookName:    hookName,
		description: description,
		testCase:    tc,
	}
}

// configure binds the dynamic test case to the live fixture. Idempotent:
// repeated calls configure at most once per suite.
func (r *scriptRunner) configure(fixture core.Fixture) error {
	if r.configured {
		return nil
	}
	if err := r.testCase.Configure(fixture); err != nil {
		return core.NewFixtureFailure(fixture.Name(), "%s", err)
	}
	r.configured = true
	return nil
}

// runAfterTest renames, runs and reports the dynamic test case for one
// triggering test. StopTest is deferred so it runs on every path.
func (r *scriptRunner) runAfterTest(ctx context.Context, test core.TestCase, report core.Report) error {
	description := fmt.Sprintf("%s after running %q", r.description, test.ShortName())

	r.testCase.SetName(test.ShortName() + ":" + r.hookName)
	report.StartTest(r.testCase, true)
	defer report.StopTest(r.testCase)

	if err := r.testCase.Run(ctx); err != nil {
		r.logger.Errorf("%s failed: %s", description, err)
		report.AddFailure(r.testCase, err.Error())
		return &core.TestFailure{Message: err.Error()}
	}

	r.testCase.SetReturnCode(0)
	report.AddSuccess(r.testCase)
	return nil
}

// scriptHook is a hook whose whole job is running one verification script
// after each test. ValidateCollections and CheckReplDBHash are plain
// instances of it.
type scriptHook struct {
	Base
	runner *scriptRunner
}

func newScriptHook(p Params, name, description, script, shellOptions string) *scriptHook {
	tc := core.NewShellTestCase(p.Logger, script, shellOptions)
	return &scriptHook{
		Base:   newBase(name, description, p.Logger, p.Fixture),
		runner: newScriptRunner(p.Logger, name, description, tc),
	}
}

// BeforeSuite configures the dynamic test case once the fixture is live;
// the connection details may not exist earlier.
func (h *scriptHook) BeforeSuite(ctx context.Context, report core.Report) error {
	return h.runner.configure(h.Fixture())
}

func (h *scriptHook) AfterTest(ctx context.Context, test core.TestCase, report core.Report) error {
	return h.runner.runAfterTest(ctx, test, report)
}

// scriptOptions are the options every fixed script hook accepts.
type scriptOptions struct {
	ShellOptions string `mapstructure:"shell_options"`
}

const (
	validateCollectionsScript = "jstests/hooks/run_validate_collections.js"
	checkReplDBHashScript     = "jstests/hooks/run_check_repl_dbhash.js"
	initialSyncScript         = "jstests/hooks/run_initial_sync_node_validation.js"
)

// newValidateCollections runs full validation on all collections in all
// databases after every test.
func newValidateCollections(p Params, options map[string]any) (Hook, error) {
	var cfg scriptOptions
	if err := decodeOptions(options, &cfg); err != nil {
		return nil, err
	}
	return newScriptHook(p, "ValidateCollections", "Full collection validation",
		validateCollectionsScript, cfg.ShellOptions), nil
}

// newCheckReplDBHash checks that the dbhashes of all non-local databases
// match across the replica set members after every test.
func newCheckReplDBHash(p Params, options map[string]any) (Hook, error) {
	var cfg scriptOptions
	if err := decodeOptions(options, &cfg); err != nil {
		return nil, err
	}
	return newScriptHook(p, "CheckReplDBHash", "Check dbhashes of all replica set members",
		checkReplDBHashScript, cfg.ShellOptions), nil
}
