package l3euler

import "github.com/banshee-data/tau.report/internal/monitoring"

var logs = monitoring.NewStreams("[l3euler] ")

// SetLogWriters configures the l3euler streams. Degenerate triangles are
// reported on the trace stream.
func SetLogWriters(w monitoring.LogWriters) { logs.Set(w) }
