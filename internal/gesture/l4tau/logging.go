package l4tau

import "github.com/banshee-data/tau.report/internal/monitoring"

var logs = monitoring.NewStreams("[l4tau] ")

// SetLogWriters configures the l4tau streams. Readings that arrive out of
// order are reported on the diag stream.
func SetLogWriters(w monitoring.LogWriters) { logs.Set(w) }
