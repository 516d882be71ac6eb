package monitoring

import (
	"io"
	"log"
	"sync"
)

// LogWriters names the destination of each logging stream. A nil writer
// disables its stream.
type LogWriters struct {
	// Ops carries rejected frames and invalid input.
	Ops io.Writer
	// Diag carries session lifecycle, gate counts and ignored readings.
	Diag io.Writer
	// Trace carries per-frame and per-triangle telemetry.
	Trace io.Writer
}

// Streams is one gesture layer's ops, diag and trace loggers, all sharing
// the layer's prefix. The zero value is not usable; call NewStreams.
type Streams struct {
	prefix string

	mu    sync.RWMutex
	ops   *log.Logger
	diag  *log.Logger
	trace *log.Logger
}

// NewStreams returns disabled streams that will log under prefix.
func NewStreams(prefix string) *Streams {
	return &Streams{prefix: prefix}
}

// Prefix returns the layer tag written at the start of every line.
func (s *Streams) Prefix() string { return s.prefix }

// Set replaces all three writers at once.
func (s *Streams) Set(w LogWriters) {
	ops, diag, trace := s.logger(w.Ops), s.logger(w.Diag), s.logger(w.Trace)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops, s.diag, s.trace = ops, diag, trace
}

func (s *Streams) logger(w io.Writer) *log.Logger {
	if w == nil {
		return nil
	}
	return log.New(w, s.prefix, log.LstdFlags|log.Lmicroseconds)
}

// Opsf logs to the ops stream.
func (s *Streams) Opsf(format string, args ...interface{}) {
	printf(s.get(&s.ops), format, args)
}

// Diagf logs to the diag stream.
func (s *Streams) Diagf(format string, args ...interface{}) {
	printf(s.get(&s.diag), format, args)
}

// Tracef logs to the trace stream.
func (s *Streams) Tracef(format string, args ...interface{}) {
	printf(s.get(&s.trace), format, args)
}

// Tracing reports whether the trace stream is enabled, so hot loops can
// skip building arguments nobody will read.
func (s *Streams) Tracing() bool { return s.get(&s.trace) != nil }

func (s *Streams) get(l **log.Logger) *log.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *l
}

func printf(l *log.Logger, format string, args []interface{}) {
	if l != nil {
		l.Printf(format, args...)
	}
}
