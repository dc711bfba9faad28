package core

import "context"

// Logger is the logging interface shared by the harness, the hooks and the
// fixture adapters. It is satisfied by LogrusAdapter and by the capturing
// logger in the test package.
type Logger interface {
	Criticalf(format string, args ...any)
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
	Noticef(format string, args ...any)
	Warningf(format string, args ...any)
}

// Lifecycle is the part of the fixture contract shared by a whole fixture and
// by a single node: it can be brought up, torn down and waited on. The
// process supervision behind these calls lives outside this module.
type Lifecycle interface {
	// Setup starts (or restarts) the underlying processes.
	Setup(ctx context.Context) error
	// Teardown stops the underlying processes and reports whether they
	// exited cleanly. An unclean exit does not make the fixture unusable;
	// callers are expected to Setup again and surface the result
	// separately.
	Teardown(ctx context.Context) bool
	// AwaitReady blocks until the underlying processes answer requests.
	AwaitReady(ctx context.Context) error
	// Name identifies the fixture or node in log and failure messages.
	Name() string
}

// Fixture is the externally supervised service a suite runs against. Its
// lifetime spans the whole suite; hooks may tear it down and rebuild it any
// number of times.
type Fixture interface {
	Lifecycle

	// ConnectionString returns the address test scripts connect to.
	ConnectionString() string

	// InitialSyncNode returns the node designated for initial sync, when
	// the fixture was started with one.
	InitialSyncNode() (Node, error)
}

// Node is one member of a fixture, with its own lifecycle and endpoint.
type Node interface {
	Lifecycle

	// Addr returns the host:port the node listens on.
	Addr() string
}

// TestCase is the identity the report tracks. Both ordinary tests and the
// dynamic cases injected by hooks implement it.
type TestCase interface {
	TestName() string
	ShortName() string
}

// Report is the shared test report. This module only appends to it: every
// StartTest is paired with exactly one StopTest, with AddSuccess or
// AddFailure in between.
type Report interface {
	StartTest(tc TestCase, dynamic bool)
	AddSuccess(tc TestCase)
	AddFailure(tc TestCase, detail string)
	StopTest(tc TestCase)
}
