package cli

import (
	"context"
	"strings"

	"github.com/RicoHuang/mongo/core"
	"github.com/RicoHuang/mongo/hooks"
)

// RunCommand executes a suite configuration end to end.
type RunCommand struct {
	ConfigFile string `long:"config" short:"c" description:"suite configuration file" required:"true"`
	LogLevel   string `long:"log-level" description:"Set log level (debug, notice, info, warning, error, critical)"`

	Logger core.Logger `no-flag:"true"`
}

func (c *RunCommand) Execute(args []string) error {
	ApplyLogLevel(c.LogLevel)

	cfg, err := LoadSuite(c.ConfigFile)
	if err != nil {
		return err
	}

	runner, err := NewRunner(c.Logger, cfg)
	if err != nil {
		return err
	}

	runErr := runner.Run(context.Background())

	report := runner.Report()
	c.Logger.Noticef("Suite %s finished: %d started, %d succeeded, %d failed",
		cfg.Suite,
		report.Count(core.EventStart),
		report.Count(core.EventSuccess),
		report.Count(core.EventFailure))
	for _, f := range report.Failures() {
		c.Logger.Errorf("  failed: %s: %s", f.Test, f.Detail)
	}
	return runErr
}

// ValidateCommand loads a suite configuration and constructs its hooks
// without running anything, so misconfigurations fail fast.
type ValidateCommand struct {
	ConfigFile string `long:"config" short:"c" description:"suite configuration file" required:"true"`

	Logger core.Logger `no-flag:"true"`
}

func (c *ValidateCommand) Execute(args []string) error {
	cfg, err := LoadSuite(c.ConfigFile)
	if err != nil {
		return err
	}

	// Construction only; the fixture is never touched here.
	built, err := BuildHooks(cfg, hooks.Params{
		Logger:              c.Logger,
		ForceCleanEveryTest: LeakDetectionActive(),
	})
	if err != nil {
		return err
	}

	names := make([]string, 0, len(built))
	for _, h := range built {
		names = append(names, h.Name())
	}
	c.Logger.Noticef("Suite %s is valid: %d tests, hooks: %s",
		cfg.Suite, len(cfg.Tests), strings.Join(names, ", "))
	return nil
}
