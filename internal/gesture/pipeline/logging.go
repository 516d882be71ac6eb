package pipeline

import (
	"github.com/banshee-data/tau.report/internal/gesture/l3euler"
	"github.com/banshee-data/tau.report/internal/gesture/l4tau"
	"github.com/banshee-data/tau.report/internal/monitoring"
)

var logs = monitoring.NewStreams("[pipeline] ")

// SetLogWriters configures the streams of every gesture layer the engine
// drives: the pipeline itself, l3euler and l4tau. Pass a zero LogWriters to
// silence them all.
func SetLogWriters(w monitoring.LogWriters) {
	logs.Set(w)
	l3euler.SetLogWriters(w)
	l4tau.SetLogWriters(w)
}
