package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/RicoHuang/mongo/fixtures"
	"github.com/RicoHuang/mongo/hooks"
)

var (
	ErrNoTests     = errors.New("suite configuration lists no tests")
	ErrNoHookClass = errors.New("hook entry is missing a class")
)

// HookConfig is one entry of the suite's hook list: the registry name plus
// whatever options that hook understands.
type HookConfig struct {
	Class   string         `yaml:"class"`
	Options map[string]any `yaml:",inline"`
}

// SuiteConfig describes a suite run: the fixture to run against, the hooks
// to interleave, and the ordered test scripts to execute.
type SuiteConfig struct {
	Suite             string          `yaml:"suite"`
	ContinueOnFailure bool            `yaml:"continue_on_failure"`
	Shell             string          `yaml:"shell"`
	Fixture           fixtures.Config `yaml:"fixture"`
	Hooks             []HookConfig    `yaml:"hooks"`
	Tests             []string        `yaml:"tests"`
}

// LoadSuite reads and validates a suite configuration file. Unknown top-level
// keys are rejected.
func LoadSuite(path string) (*SuiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite config: %w", err)
	}

	var cfg SuiteConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse suite config %s: %w", path, err)
	}

	if len(cfg.Tests) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoTests)
	}
	for i, hc := range cfg.Hooks {
		if hc.Class == "" {
			return nil, fmt.Errorf("%s: hook #%d: %w", path, i+1, ErrNoHookClass)
		}
	}
	if err := cfg.Fixture.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// BuildHooks constructs every configured hook through the registry. Fails on
// the first unknown name or bad option set, returning no hooks.
func BuildHooks(cfg *SuiteConfig, p hooks.Params) ([]hooks.Hook, error) {
	built := make([]hooks.Hook, 0, len(cfg.Hooks))
	for _, hc := range cfg.Hooks {
		h, err := hooks.New(hc.Class, p, hc.Options)
		if err != nil {
			return nil, err
		}
		built = append(built, h)
	}
	return built, nil
}

// LeakDetectionActive reports whether the sanitizer environment asks for
// leak detection. Read here, at the edge, and handed to the hooks as an
// explicit parameter.
func LeakDetectionActive() bool {
	return strings.Contains(os.Getenv("ASAN_OPTIONS"), "detect_leaks=1")
}
