package hooks

import (
	"context"
	"time"

	"github.com/RicoHuang/mongo/mongoutil"
)

// replica-set member state "secondary", as reported by the server
const memberStateSecondary = 2

// upper bound for the server-side wait on a membership state change
const memberStateTimeout = 20 * time.Minute

// AdminClient is the narrow slice of a server connection the hooks need:
// issuing administrative commands against a single node. Errors carry the
// server-supplied message.
type AdminClient interface {
	// Resync instructs the node to discard its data set and re-acquire it
	// from its peers.
	Resync(ctx context.Context) error
	// AwaitMemberState blocks server-side until the node's replication
	// role reaches the given state or the timeout elapses.
	AwaitMemberState(ctx context.Context, state int, timeout time.Duration) error
	Close(ctx context.Context) error
}

// DialFunc opens a fresh AdminClient to the node at addr.
type DialFunc func(ctx context.Context, addr string) (AdminClient, error)

func defaultDial(ctx context.Context, addr string) (AdminClient, error) {
	return mongoutil.Dial(ctx, addr)
}
