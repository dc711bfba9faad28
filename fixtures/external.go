// Package fixtures adapts externally supervised service processes to the
// core fixture contract. The adapter does not spawn or supervise anything
// itself: every lifecycle transition shells out to an operator-supplied
// control command.
package fixtures

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/gobs/args"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/RicoHuang/mongo/core"
)

const (
	defaultReadyInterval = time.Second
	defaultReadyTimeout  = 5 * time.Minute
)

// Duration is a time.Duration that unmarshals from YAML strings like "30s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// NodeConfig describes one fixture member.
type NodeConfig struct {
	Name     string `yaml:"name"`
	Addr     string `yaml:"addr"`
	Setup    string `yaml:"setup"`
	Teardown string `yaml:"teardown"`
	Ready    string `yaml:"ready"`
}

// Config describes an externally supervised fixture: its endpoint, the
// control commands for each lifecycle transition, and optionally a member
// designated for initial sync.
type Config struct {
	Name             string      `yaml:"name"`
	ConnectionString string      `yaml:"connection_string"`
	Setup            string      `yaml:"setup"`
	Teardown         string      `yaml:"teardown"`
	Ready            string      `yaml:"ready"`
	ReadyInterval    Duration    `yaml:"ready_interval"`
	ReadyTimeout     Duration    `yaml:"ready_timeout"`
	InitialSyncNode  *NodeConfig `yaml:"initial_sync_node"`
}

// ErrMissingCommand marks a lifecycle transition with no control command. An
// omitted command would otherwise only surface mid-run, as an unclean
// teardown or a readiness wait that can never succeed.
var ErrMissingCommand = errors.New("missing control command")

// Validate checks that every lifecycle transition has a control command,
// including those of the initial sync node when one is configured.
func (c Config) Validate() error {
	name := c.Name
	if name == "" {
		name = "fixture"
	}
	if err := validateCommands(name, c.Setup, c.Teardown, c.Ready); err != nil {
		return err
	}
	if n := c.InitialSyncNode; n != nil {
		nodeName := n.Name
		if nodeName == "" {
			nodeName = n.Addr
		}
		return validateCommands(nodeName, n.Setup, n.Teardown, n.Ready)
	}
	return nil
}

func validateCommands(name, setup, teardown, ready string) error {
	for _, c := range []struct{ kind, command string }{
		{"setup", setup},
		{"teardown", teardown},
		{"ready", ready},
	} {
		if strings.TrimSpace(c.command) == "" {
			return fmt.Errorf("%s: %s: %w", name, c.kind, ErrMissingCommand)
		}
	}
	return nil
}

// commandSet implements the lifecycle contract by running the configured
// control commands.
type commandSet struct {
	name          string
	logger        core.Logger
	setup         string
	teardown      string
	ready         string
	readyInterval time.Duration
	readyTimeout  time.Duration
}

func (s *commandSet) Name() string { return s.name }

func (s *commandSet) Setup(ctx context.Context) error {
	if out, err := runCommand(ctx, s.setup); err != nil {
		s.logger.Errorf("setup of %s failed: %s%s", s.name, err, logTail(out))
		return fmt.Errorf("setup %s: %w", s.name, err)
	}
	return nil
}

func (s *commandSet) Teardown(ctx context.Context) bool {
	out, err := runCommand(ctx, s.teardown)
	if err != nil {
		s.logger.Warningf("teardown of %s was not clean: %s%s", s.name, err, logTail(out))
		return false
	}
	return true
}

// AwaitReady polls the ready command until it succeeds, pacing the probes
// with a rate limiter and bounding the whole wait.
func (s *commandSet) AwaitReady(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.readyTimeout)
	defer cancel()

	limiter := rate.NewLimiter(rate.Every(s.readyInterval), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s did not become ready: %w", s.name, err)
		}
		out, err := runCommand(ctx, s.ready)
		if err == nil {
			return nil
		}
		s.logger.Debugf("%s not ready yet: %s%s", s.name, err, logTail(out))
	}
}

// External is a whole fixture driven by control commands.
type External struct {
	commandSet
	connStr  string
	syncNode *Node
}

var _ core.Fixture = (*External)(nil)

// NewExternal builds a fixture adapter from its configuration.
func NewExternal(logger core.Logger, cfg Config) *External {
	if cfg.ReadyInterval <= 0 {
		cfg.ReadyInterval = Duration(defaultReadyInterval)
	}
	if cfg.ReadyTimeout <= 0 {
		cfg.ReadyTimeout = Duration(defaultReadyTimeout)
	}
	name := cfg.Name
	if name == "" {
		name = "fixture"
	}

	f := &External{
		commandSet: commandSet{
			name:          name,
			logger:        logger,
			setup:         cfg.Setup,
			teardown:      cfg.Teardown,
			ready:         cfg.Ready,
			readyInterval: time.Duration(cfg.ReadyInterval),
			readyTimeout:  time.Duration(cfg.ReadyTimeout),
		},
		connStr: cfg.ConnectionString,
	}
	if nc := cfg.InitialSyncNode; nc != nil {
		f.syncNode = newNode(logger, *nc,
			time.Duration(cfg.ReadyInterval), time.Duration(cfg.ReadyTimeout))
	}
	return f
}

func (f *External) ConnectionString() string { return f.connStr }

func (f *External) InitialSyncNode() (core.Node, error) {
	if f.syncNode == nil {
		return nil, core.ErrNoInitialSyncNode
	}
	return f.syncNode, nil
}

// Node is one fixture member driven by its own control commands.
type Node struct {
	commandSet
	addr string
}

var _ core.Node = (*Node)(nil)

func newNode(logger core.Logger, cfg NodeConfig, interval, timeout time.Duration) *Node {
	name := cfg.Name
	if name == "" {
		name = cfg.Addr
	}
	return &Node{
		commandSet: commandSet{
			name:          name,
			logger:        logger,
			setup:         cfg.Setup,
			teardown:      cfg.Teardown,
			ready:         cfg.Ready,
			readyInterval: interval,
			readyTimeout:  timeout,
		},
		addr: cfg.Addr,
	}
}

func (n *Node) Addr() string { return n.addr }

// runCommand executes one control command, returning its combined captured
// output for logging.
func runCommand(ctx context.Context, command string) (string, error) {
	argv := args.GetArgs(command)
	if len(argv) == 0 {
		return "", core.ErrEmptyShellCommand
	}
	bin, err := exec.LookPath(argv[0])
	if err != nil {
		return "", fmt.Errorf("look path %q: %w", argv[0], err)
	}

	execution, err := core.NewExecution()
	if err != nil {
		return "", err
	}
	cmd := exec.CommandContext(ctx, bin, argv[1:]...)
	cmd.Stdout = execution.OutputStream
	cmd.Stderr = execution.ErrorStream

	execution.Start()
	runErr := cmd.Run()
	execution.Stop(runErr)

	out := strings.TrimSpace(execution.Stderr())
	if out == "" {
		out = strings.TrimSpace(execution.Stdout())
	}
	if runErr != nil {
		return out, fmt.Errorf("run %q: %w", command, runErr)
	}
	return out, nil
}

func logTail(out string) string {
	if out == "" {
		return ""
	}
	return "\n" + out
}
