// Package logging configures the process-wide logger. Setup is called once
// from main; nothing here runs at package init.
package logging

import (
	"os"

	"github.com/phuslu/log"
)

// Setup configures the default logger. Debug traces (JQL being run, issues
// being validated) are enabled with WORKLOGGER_DEBUG=1.
func Setup() {
	level := log.InfoLevel
	if os.Getenv("WORKLOGGER_DEBUG") == "1" {
		level = log.DebugLevel
	}
	log.DefaultLogger = log.Logger{
		Level: level,
		Writer: &log.ConsoleWriter{
			ColorOutput: true,
			Writer:      os.Stderr,
		},
	}
}
