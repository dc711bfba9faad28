package hooks

import (
	"context"
	"fmt"

	"github.com/RicoHuang/mongo/core"
)

type intermediateInitialSyncConfig struct {
	UseResync bool `mapstructure:"useResync"`
	N         int  `mapstructure:"n" default:"20" validate:"gte=1"`
}

// IntermediateInitialSync periodically drives the fixture's designated
// initial-sync node through a full resynchronization, waits for it to become
// a secondary, and then validates its data with the shared script machinery.
//
// The mode is fixed at construction: resync issues the administrative resync
// command and never touches the node's processes, restart tears the node
// down and brings it back up. The fixture must have been started with an
// initial sync node.
type IntermediateInitialSync struct {
	Base
	runner    *scriptRunner
	counter   countdown
	useResync bool
	dial      DialFunc
}

func newIntermediateInitialSync(p Params, options map[string]any) (Hook, error) {
	var cfg intermediateInitialSyncConfig
	if err := decodeOptions(options, &cfg); err != nil {
		return nil, err
	}

	const name = "IntermediateInitialSync"
	const description = "Intermediate Initial Sync"
	tc := core.NewShellTestCase(p.Logger, initialSyncScript, "")
	return &IntermediateInitialSync{
		Base:      newBase(name, description, p.Logger, p.Fixture),
		runner:    newScriptRunner(p.Logger, name, description, tc),
		counter:   countdown{n: cfg.N},
		useResync: cfg.UseResync,
		dial:      p.Dial,
	}, nil
}

func (h *IntermediateInitialSync) BeforeSuite(ctx context.Context, report core.Report) error {
	return h.runner.configure(h.Fixture())
}

func (h *IntermediateInitialSync) AfterSuite(ctx context.Context, report core.Report) error {
	h.counter.reset()
	return nil
}

func (h *IntermediateInitialSync) AfterTest(ctx context.Context, test core.TestCase, report core.Report) error {
	if !h.counter.tick() {
		return nil
	}

	node, err := h.Fixture().InitialSyncNode()
	if err != nil {
		return core.NewFixtureFailure(h.Fixture().Name(), "%s: %s", h.Fixture().Name(), err)
	}
	client, err := h.dial(ctx, node.Addr())
	if err != nil {
		return core.NewFixtureFailure(node.Name(), "connect to %s: %s", node.Name(), err)
	}
	defer func() { _ = client.Close(ctx) }()

	description := fmt.Sprintf("%s after running %q", h.Description(), test.ShortName())

	// In resync mode no restart happens, so teardown is considered clean.
	clean := true
	if h.useResync {
		h.Logger().Noticef("Calling resync on initial sync node...")
		if err := client.Resync(ctx); err != nil {
			h.Logger().Errorf("%s failed: %s", description, err)
			h.reportCommandFailure(report, test, err)
			return &core.TestFailure{Message: err.Error()}
		}
	} else {
		clean, err = restart(ctx, h.Logger(), node)
		if err != nil {
			return err
		}
	}

	h.Logger().Noticef("Waiting for initial sync node to go into SECONDARY state")
	if err := client.AwaitMemberState(ctx, memberStateSecondary, memberStateTimeout); err != nil {
		h.Logger().Errorf("%s failed: %s", description, err)
		h.reportCommandFailure(report, test, err)
		return &core.TestFailure{Message: err.Error()}
	}

	// Data validation and dbhash checking.
	if err := h.runner.runAfterTest(ctx, test, report); err != nil {
		return err
	}

	// Raised last so a dirty teardown never masks a validation result.
	if !clean {
		return core.UncleanExit(node.Name())
	}
	return nil
}

// reportCommandFailure records a failed administrative command as a complete
// dynamic-test entry, so the report stays start/stop balanced even though no
// script ran.
func (h *IntermediateInitialSync) reportCommandFailure(report core.Report, test core.TestCase, err error) {
	tc := h.runner.testCase
	tc.SetName(test.ShortName() + ":" + h.Name())
	report.StartTest(tc, true)
	report.AddFailure(tc, err.Error())
	report.StopTest(tc)
}
