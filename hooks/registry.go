package hooks

import (
	"fmt"
	"maps"
	"slices"

	"github.com/RicoHuang/mongo/core"
)

// Params carries the collaborators shared by all hooks of a suite.
type Params struct {
	Logger  core.Logger
	Fixture core.Fixture

	// ForceCleanEveryTest forces counting hooks to fire after every test,
	// isolating which test triggers a leak. The caller decides when to set
	// it (typically from its leak-detection environment); hooks never read
	// the process environment themselves.
	ForceCleanEveryTest bool

	// Dial opens an admin-command client to a node. Defaults to the real
	// mongoutil client when nil.
	Dial DialFunc
}

type constructor func(Params, map[string]any) (Hook, error)

var registry = map[string]constructor{
	"CleanEveryN":             newCleanEveryN,
	"CheckReplDBHash":         newCheckReplDBHash,
	"ValidateCollections":     newValidateCollections,
	"IntermediateInitialSync": newIntermediateInitialSync,
}

// New builds the named hook from its raw option map. Unknown names fail with
// ErrUnknownHook before any state is created.
func New(name string, p Params, options map[string]any) (Hook, error) {
	c, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownHook, name)
	}
	if p.Dial == nil {
		p.Dial = defaultDial
	}
	return c(p, options)
}

// Names returns the recognized hook names, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}
