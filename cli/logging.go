package cli

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// ApplyLogLevel sets the global logging level. Besides the levels logrus
// knows, the names the logger interface speaks are accepted: "notice" and
// "critical". Empty or unrecognized levels leave the current level alone.
func ApplyLogLevel(level string) {
	switch strings.ToLower(level) {
	case "":
		return
	case "notice":
		logrus.SetLevel(logrus.InfoLevel)
	case "critical":
		logrus.SetLevel(logrus.FatalLevel)
	default:
		lvl, err := logrus.ParseLevel(strings.ToLower(level))
		if err != nil {
			return
		}
		logrus.SetLevel(lvl)
	}
}
