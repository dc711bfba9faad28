package core

import (
	"errors"
	"fmt"
)

// Common errors used across the package
var (
	ErrNoInitialSyncNode = errors.New("fixture has no initial sync node")
	ErrEmptyShellCommand = errors.New("shell command cannot be empty")
	ErrNotConfigured     = errors.New("test case has not been configured")
)

// TestFailure marks a check or administrative command that reported failure.
// It is recoverable at the suite level: a continue-on-failure policy may keep
// the run going. The message is sourced from the failing script or command.
type TestFailure struct {
	Message string
}

func (e *TestFailure) Error() string {
	return e.Message
}

// NewTestFailure builds a TestFailure with a formatted message.
func NewTestFailure(format string, args ...any) *TestFailure {
	return &TestFailure{Message: fmt.Sprintf(format, args...)}
}

// FixtureFailure marks a fixture or node whose trustworthiness is
// compromised, typically an unclean process exit. It surfaces to callers as a
// TestFailure naming the fixture (FixtureFailure unwraps to one), and is only
// raised after the fixture has been restored to a usable state.
type FixtureFailure struct {
	Subject string
	Message string
}

func (e *FixtureFailure) Error() string {
	return e.Message
}

func (e *FixtureFailure) Unwrap() error {
	return &TestFailure{Message: e.Message}
}

// NewFixtureFailure builds a FixtureFailure for the named fixture or node.
func NewFixtureFailure(subject, format string, args ...any) *FixtureFailure {
	return &FixtureFailure{Subject: subject, Message: fmt.Sprintf(format, args...)}
}

// UncleanExit is the standard failure for a fixture or node whose teardown
// was not clean.
func UncleanExit(subject string) *FixtureFailure {
	return NewFixtureFailure(subject, "%s did not exit cleanly", subject)
}

// IsTestFailure reports whether err is recoverable at the suite level.
// Fixture failures count: they surface as test failures.
func IsTestFailure(err error) bool {
	_, ok := errors.AsType[*TestFailure](err)
	return ok
}

// IsFixtureFailure reports whether err indicates a compromised fixture.
func IsFixtureFailure(err error) bool {
	_, ok := errors.AsType[*FixtureFailure](err)
	return ok
}
