// Package monitoring holds the process-wide diagnostic logger and the
// frame meter used to report pipeline throughput.
package monitoring

import "log"

// Logf is the package-level diagnostic logger used by the CLI and the
// gesture engine for one-off notices. It defaults to log.Printf.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
