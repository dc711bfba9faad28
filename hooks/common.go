// Package hooks customizes the behavior of a suite run by executing
// maintenance and verification actions before or after each test, and before
// or after the whole suite.
package hooks

import (
	"context"

	"github.com/RicoHuang/mongo/core"
)

// Hook is the interface every lifecycle hook implements. The test driver
// calls the four lifecycle methods synchronously: BeforeSuite exactly once
// before any test, AfterSuite exactly once after all tests, BeforeTest and
// AfterTest once per test around its execution.
//
// A lifecycle method may only fail with a *core.TestFailure or a
// *core.FixtureFailure; no other error kind escapes a hook.
type Hook interface {
	// Name is the registry name of the hook, used as its log tag and in
	// dynamic test names.
	Name() string
	// Description is a human-readable summary of what the hook does.
	Description() string

	BeforeSuite(ctx context.Context, report core.Report) error
	AfterSuite(ctx context.Context, report core.Report) error
	BeforeTest(ctx context.Context, test core.TestCase, report core.Report) error
	AfterTest(ctx context.Context, test core.TestCase, report core.Report) error
}

// Base carries the state every hook shares and provides no-op lifecycle
// methods, so concrete hooks only override what they need. The fixture and
// logger are borrowed, never owned.
type Base struct {
	name        string
	description string
	logger      core.Logger
	fixture     core.Fixture
}

func newBase(name, description string, logger core.Logger, fixture core.Fixture) Base {
	return Base{name: name, description: description, logger: logger, fixture: fixture}
}

func (b *Base) Name() string        { return b.name }
func (b *Base) Description() string { return b.description }

// Logger returns the hook's borrowed logger.
func (b *Base) Logger() core.Logger { return b.logger }

// Fixture returns the shared fixture the hook operates on.
func (b *Base) Fixture() core.Fixture { return b.fixture }

func (b *Base) BeforeSuite(ctx context.Context, report core.Report) error { return nil }
func (b *Base) AfterSuite(ctx context.Context, report core.Report) error  { return nil }

func (b *Base) BeforeTest(ctx context.Context, test core.TestCase, report core.Report) error {
	return nil
}

func (b *Base) AfterTest(ctx context.Context, test core.TestCase, report core.Report) error {
	return nil
}
