package cli

import (
	"context"
	"fmt"

	"github.com/RicoHuang/mongo/core"
	"github.com/RicoHuang/mongo/fixtures"
	"github.com/RicoHuang/mongo/hooks"
)

// Runner drives one suite: it brings the fixture up, raises the lifecycle
// events the hooks react to around every test script, and records everything
// in the shared report.
type Runner struct {
	logger  core.Logger
	config  *SuiteConfig
	fixture core.Fixture
	hooks   []hooks.Hook
	report  *core.SuiteReport
}

// NewRunner assembles a runner from a loaded suite configuration.
func NewRunner(logger core.Logger, cfg *SuiteConfig) (*Runner, error) {
	fixture := fixtures.NewExternal(logger, cfg.Fixture)
	params := hooks.Params{
		Logger:              logger,
		Fixture:             fixture,
		ForceCleanEveryTest: LeakDetectionActive(),
	}
	built, err := BuildHooks(cfg, params)
	if err != nil {
		return nil, err
	}
	return &Runner{
		logger:  logger,
		config:  cfg,
		fixture: fixture,
		hooks:   built,
		report:  core.NewSuiteReport(),
	}, nil
}

// Report returns the suite report the runner appends to.
func (r *Runner) Report() *core.SuiteReport { return r.report }

// Run executes the whole suite. Test-level failures abort the run unless
// continue_on_failure is set; fixture-level failures always abort.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Noticef("Starting fixture %s...", r.fixture.Name())
	if err := r.fixture.Setup(ctx); err != nil {
		return err
	}
	if err := r.fixture.AwaitReady(ctx); err != nil {
		return err
	}

	for _, h := range r.hooks {
		if err := h.BeforeSuite(ctx, r.report); err != nil {
			return fmt.Errorf("hook %s: %w", h.Name(), err)
		}
	}

	for _, path := range r.config.Tests {
		err := r.runTest(ctx, path)
		if err == nil {
			continue
		}
		if r.config.ContinueOnFailure && core.IsTestFailure(err) && !core.IsFixtureFailure(err) {
			r.logger.Warningf("%s failed, continuing: %s", path, err)
			continue
		}
		return err
	}

	for _, h := range r.hooks {
		if err := h.AfterSuite(ctx, r.report); err != nil {
			return fmt.Errorf("hook %s: %w", h.Name(), err)
		}
	}

	if clean := r.fixture.Teardown(ctx); !clean {
		return core.UncleanExit(r.fixture.Name())
	}
	return nil
}

func (r *Runner) runTest(ctx context.Context, path string) error {
	tc := core.NewShellTestCase(r.logger, path, "")
	if r.config.Shell != "" {
		tc.Shell = r.config.Shell
	}
	if err := tc.Configure(r.fixture); err != nil {
		return core.NewFixtureFailure(r.fixture.Name(), "%s", err)
	}

	for _, h := range r.hooks {
		if err := h.BeforeTest(ctx, tc, r.report); err != nil {
			return fmt.Errorf("hook %s: %w", h.Name(), err)
		}
	}

	r.report.StartTest(tc, false)
	runErr := tc.Run(ctx)
	if runErr != nil {
		r.report.AddFailure(tc, runErr.Error())
	} else {
		r.report.AddSuccess(tc)
	}
	r.report.StopTest(tc)

	// Hooks run whether the test passed or not; a failing test still
	// counts toward their policies.
	var hookErr error
	for _, h := range r.hooks {
		if err := h.AfterTest(ctx, tc, r.report); err != nil {
			hookErr = fmt.Errorf("hook %s: %w", h.Name(), err)
			break
		}
	}

	if runErr != nil {
		// A fixture a hook left broken outranks the test's own failure:
		// the run must not continue against it. Any other hook error
		// loses precedence but is logged rather than dropped.
		if core.IsFixtureFailure(hookErr) {
			r.logger.Errorf("%s failed and so did a hook: %s", tc.ShortName(), hookErr)
			return hookErr
		}
		if hookErr != nil {
			r.logger.Warningf("hook error after failing test %s: %s", tc.ShortName(), hookErr)
		}
		return core.NewTestFailure("%s failed: %s", tc.ShortName(), runErr)
	}
	return hookErr
}
