package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
	ini "gopkg.in/ini.v1"

	"github.com/RicoHuang/mongo/cli"
	"github.com/RicoHuang/mongo/core"
)

var version string
var build string

func buildLogger(level string) core.Logger {
	logrus.SetOutput(os.Stdout)
	logrus.SetReportCaller(true)
	forceColors := false
	if term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("TERM") != "dumb" && os.Getenv("NO_COLOR") == "" {
		forceColors = true
	}
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		ForceColors:     forceColors,
		DisableQuote:    true,
		TimestampFormat: "2006-01-02 15:04:05",
		CallerPrettyfier: func(frame *runtime.Frame) (string, string) {
			return "", fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
		},
	})
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
	return &core.LogrusAdapter{Logger: logrus.StandardLogger()}
}

func main() {
	// Pre-parse log-level flag to configure logger early
	var pre struct {
		LogLevel   string `long:"log-level"`
		ConfigFile string `long:"config" short:"c"`
	}
	osArgs := os.Args[1:]
	preParser := flags.NewParser(&pre, flags.IgnoreUnknown)
	_, _ = preParser.ParseArgs(osArgs)

	if pre.LogLevel == "" {
		cfg, err := ini.LoadSources(ini.LoadOptions{AllowShadows: true, InsensitiveKeys: true},
			"/etc/resmoke/config.ini")
		if err == nil {
			if sec, err := cfg.GetSection("global"); err == nil {
				pre.LogLevel = sec.Key("log-level").String()
			}
		}
	}

	logger := buildLogger(pre.LogLevel)
	logger.Debugf("resmoke version %s, build %s", version, build)

	parser := flags.NewNamedParser("resmoke", flags.Default)
	if _, err := parser.AddCommand(
		"run",
		"Runs a suite",
		"Runs the tests of a suite configuration with its fixture and hooks.",
		&cli.RunCommand{Logger: logger},
	); err != nil {
		logger.Criticalf("add run command: %s", err)
		os.Exit(1)
	}
	if _, err := parser.AddCommand(
		"validate",
		"Validates a suite configuration",
		"Loads a suite configuration and constructs its hooks without running anything.",
		&cli.ValidateCommand{Logger: logger},
	); err != nil {
		logger.Criticalf("add validate command: %s", err)
		os.Exit(1)
	}

	if _, err := parser.ParseArgs(osArgs); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}
}
