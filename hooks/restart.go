package hooks

import (
	"context"

	"github.com/RicoHuang/mongo/core"
)

// restart tears the fixture or node down, brings it back up and waits until
// it is ready. The teardown's cleanliness is captured and returned rather
// than acted on, so the caller can decide when (and whether) to surface it.
func restart(ctx context.Context, logger core.Logger, lc core.Lifecycle) (clean bool, err error) {
	clean = lc.Teardown(ctx)

	logger.Noticef("Starting %s back up again...", lc.Name())
	if err := lc.Setup(ctx); err != nil {
		return clean, core.NewFixtureFailure(lc.Name(), "setup %s: %s", lc.Name(), err)
	}
	if err := lc.AwaitReady(ctx); err != nil {
		return clean, core.NewFixtureFailure(lc.Name(), "await ready %s: %s", lc.Name(), err)
	}
	return clean, nil
}
