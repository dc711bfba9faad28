package hooks

import (
	"context"

	"github.com/RicoHuang/mongo/core"
)

// defaultN is how many tests run between periodic hook actions.
const defaultN = 20

type cleanEveryNConfig struct {
	N int `mapstructure:"n" default:"20" validate:"gte=1"`
}

// CleanEveryN restarts the whole fixture after every n tests. On mongod
// fixtures the restart clears the dbpath.
type CleanEveryN struct {
	Base
	counter countdown
}

func newCleanEveryN(p Params, options map[string]any) (Hook, error) {
	var cfg cleanEveryNConfig
	if err := decodeOptions(options, &cfg); err != nil {
		return nil, err
	}

	h := &CleanEveryN{
		Base: newBase("CleanEveryN", "CleanEveryN (restarts the fixture after running `n` tests)",
			p.Logger, p.Fixture),
	}

	n := cfg.N
	if p.ForceCleanEveryTest {
		p.Logger.Noticef("Leak detection is active, so restarting the fixture after each test"+
			" instead of after every %d.", n)
		n = 1
	}
	h.counter = countdown{n: n}
	return h, nil
}

func (h *CleanEveryN) AfterTest(ctx context.Context, test core.TestCase, report core.Report) error {
	if !h.counter.tick() {
		return nil
	}

	h.Logger().Noticef("%d tests have been run against the fixture, stopping it...", h.counter.n)
	clean, err := restart(ctx, h.Logger(), h.Fixture())
	if err != nil {
		return err
	}

	// Surfaced only now, after the fixture is usable again, so a
	// continue-on-failure run can keep going.
	if !clean {
		return core.UncleanExit(h.Fixture().Name())
	}
	return nil
}

// AfterSuite resets the counter so the hook can serve another suite.
func (h *CleanEveryN) AfterSuite(ctx context.Context, report core.Report) error {
	h.counter.reset()
	return nil
}
