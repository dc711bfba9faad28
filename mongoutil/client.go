// Package mongoutil wraps the official driver behind the small
// admin-command surface the hooks need.
package mongoutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ServerError carries the server-supplied message of a failed command. Its
// Error string is the message alone, so callers can surface it verbatim.
type ServerError struct {
	Code    int32
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

// Client issues administrative commands against a single node.
type Client struct {
	mc *mongo.Client
}

// Dial opens a direct connection to the node at addr (host:port).
func Dial(ctx context.Context, addr string) (*Client, error) {
	opts := options.Client().ApplyURI("mongodb://" + addr).SetDirect(true)
	mc, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}
	return &Client{mc: mc}, nil
}

// Resync instructs the node to discard its data set and re-acquire it from
// its peers.
func (c *Client) Resync(ctx context.Context) error {
	return c.runAdmin(ctx, bson.D{{Key: "resync", Value: 1}})
}

// AwaitMemberState asks the server to block until the node's replication
// role reaches the given state, or the timeout elapses server-side.
func (c *Client) AwaitMemberState(ctx context.Context, state int, timeout time.Duration) error {
	return c.runAdmin(ctx, bson.D{
		{Key: "replSetTest", Value: 1},
		{Key: "waitForMemberState", Value: state},
		{Key: "timeoutMillis", Value: timeout.Milliseconds()},
	})
}

func (c *Client) Close(ctx context.Context) error {
	return c.mc.Disconnect(ctx)
}

func (c *Client) runAdmin(ctx context.Context, cmd bson.D) error {
	err := c.mc.Database("admin").RunCommand(ctx, cmd).Err()
	if err == nil {
		return nil
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return &ServerError{Code: cmdErr.Code, Message: cmdErr.Message}
	}
	return err
}
